// Package pipeline runs the shared analysis sequence both shells call:
// resolve the username, collect content, synthesize the profile, save
// the report. Strictly sequential, one attempt per external call.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/qepting91/persona-lens/internal/domain"
	"github.com/qepting91/persona-lens/internal/ingest"
)

// Synthesizer turns collected content into profile text.
type Synthesizer interface {
	Generate(ctx context.Context, content domain.UserContent) (string, error)
	Model() domain.Model
}

// Store persists the finished profile.
type Store interface {
	SaveProfile(username, persona string) (string, error)
	SaveExport(export domain.Export) (string, error)
}

// Result is what a completed run hands back to the presentation shell.
type Result struct {
	Username        string
	Persona         string
	ReportPath      string
	ExportPath      string
	TotalPosts      int
	TotalComments   int
	Model           domain.Model
	SubredditCounts map[string]int
	GeneratedAt     time.Time
}

// Pipeline wires the three stages together behind one Run call.
type Pipeline struct {
	Collector domain.Collector
	Gen       Synthesizer
	Store     Store
	Log       *slog.Logger

	// Progress, when set, receives one human-readable line per stage.
	Progress func(line string)

	Now func() time.Time
}

func New(c domain.Collector, g Synthesizer, s Store, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{Collector: c, Gen: g, Store: s, Log: log, Now: time.Now}
}

// Run executes one full analysis for the given profile URL.
func (p *Pipeline) Run(ctx context.Context, url string, depth int) (*Result, error) {
	if depth < 1 {
		depth = 1
	}

	p.progress("Extracting user identity...")
	username, err := ingest.ExtractUsername(url)
	if err != nil {
		return nil, err
	}
	p.progress("Target identified: u/" + username)

	p.progress("Collecting digital footprint...")
	content, err := p.Collect(ctx, username, depth)
	if err != nil {
		return nil, err
	}

	p.progress("Performing AI analysis with " + string(p.Gen.Model()) + "...")
	persona, err := p.Gen.Generate(ctx, content)
	if err != nil {
		return nil, err
	}

	p.progress("Generating profile report...")
	now := p.Now()
	reportPath, err := p.Store.SaveProfile(username, persona)
	if err != nil {
		return nil, err
	}
	exportPath, err := p.Store.SaveExport(domain.Export{
		Username:     username,
		AnalysisDate: now.Format(time.RFC3339),
		Persona:      persona,
		Stats: domain.ExportStats{
			PostsAnalyzed:    content.TotalPosts,
			CommentsAnalyzed: content.TotalComments,
			ModelUsed:        string(p.Gen.Model()),
		},
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Username:        username,
		Persona:         persona,
		ReportPath:      reportPath,
		ExportPath:      exportPath,
		TotalPosts:      content.TotalPosts,
		TotalComments:   content.TotalComments,
		Model:           p.Gen.Model(),
		SubredditCounts: subredditCounts(content),
		GeneratedAt:     now,
	}, nil
}

// Collect fetches up to depth posts and depth comments for the user. The
// account must resolve; either category may fail on its own, in which
// case it degrades to empty with a warning and the run continues.
func (p *Pipeline) Collect(ctx context.Context, username string, depth int) (domain.UserContent, error) {
	if err := p.Collector.ResolveUser(ctx, username); err != nil {
		return domain.UserContent{}, err
	}

	posts, err := p.Collector.UserPosts(ctx, username, depth)
	if err != nil {
		p.Log.Warn("post collection failed", "user", username, "err", err)
		posts = nil
	}

	comments, err := p.Collector.UserComments(ctx, username, depth)
	if err != nil {
		p.Log.Warn("comment collection failed", "user", username, "err", err)
		comments = nil
	}

	return domain.UserContent{
		Username:      username,
		Posts:         posts,
		Comments:      comments,
		TotalPosts:    len(posts),
		TotalComments: len(comments),
	}, nil
}

func subredditCounts(content domain.UserContent) map[string]int {
	counts := make(map[string]int)
	for _, p := range content.Posts {
		counts[p.Subreddit]++
	}
	for _, c := range content.Comments {
		counts[c.Subreddit]++
	}
	return counts
}

func (p *Pipeline) progress(line string) {
	if p.Progress != nil {
		p.Progress(line)
	}
}
