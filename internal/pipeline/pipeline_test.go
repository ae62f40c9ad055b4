package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/qepting91/persona-lens/internal/domain"
)

type fakeCollector struct {
	resolveErr  error
	posts       []domain.Post
	postsErr    error
	comments    []domain.Comment
	commentsErr error
	calls       []string
}

func (f *fakeCollector) ResolveUser(ctx context.Context, username string) error {
	f.calls = append(f.calls, "resolve")
	return f.resolveErr
}

func (f *fakeCollector) UserPosts(ctx context.Context, username string, limit int) ([]domain.Post, error) {
	f.calls = append(f.calls, "posts")
	return f.posts, f.postsErr
}

func (f *fakeCollector) UserComments(ctx context.Context, username string, limit int) ([]domain.Comment, error) {
	f.calls = append(f.calls, "comments")
	return f.comments, f.commentsErr
}

type fakeGen struct {
	persona string
	err     error
	got     domain.UserContent
	called  bool
}

func (f *fakeGen) Generate(ctx context.Context, content domain.UserContent) (string, error) {
	f.called = true
	f.got = content
	return f.persona, f.err
}

func (f *fakeGen) Model() domain.Model { return domain.ModelLlama70B }

type fakeStore struct {
	profiles map[string]string
	exports  map[string]domain.Export
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: make(map[string]string), exports: make(map[string]domain.Export)}
}

func (f *fakeStore) SaveProfile(username, persona string) (string, error) {
	f.profiles[username] = persona
	return "output/" + username + "_digital_profile.txt", nil
}

func (f *fakeStore) SaveExport(export domain.Export) (string, error) {
	f.exports[export.Username] = export
	return "output/" + export.Username + "_profile_data.json", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_FullSequence(t *testing.T) {
	col := &fakeCollector{
		posts:    []domain.Post{{ID: "p1", Subreddit: "golang"}, {ID: "p2", Subreddit: "golang"}},
		comments: []domain.Comment{{ID: "c1", Subreddit: "homelab"}},
	}
	gen := &fakeGen{persona: "profile text"}
	store := newFakeStore()

	p := New(col, gen, store, testLogger())
	p.Now = func() time.Time { return time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC) }

	result, err := p.Run(context.Background(), "https://reddit.com/user/alice", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Username != "alice" {
		t.Fatalf("username = %q, want alice", result.Username)
	}
	if result.TotalPosts != 2 || result.TotalComments != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", result.TotalPosts, result.TotalComments)
	}
	if result.Persona != "profile text" {
		t.Fatalf("persona = %q", result.Persona)
	}
	if store.profiles["alice"] != "profile text" {
		t.Fatal("profile not saved")
	}
	exp := store.exports["alice"]
	if exp.Stats.PostsAnalyzed != 2 || exp.Stats.CommentsAnalyzed != 1 {
		t.Fatalf("export stats = %+v", exp.Stats)
	}
	if exp.Stats.ModelUsed != string(domain.ModelLlama70B) {
		t.Fatalf("export model = %q", exp.Stats.ModelUsed)
	}
	if exp.AnalysisDate != "2026-08-23T12:00:00Z" {
		t.Fatalf("analysis date = %q", exp.AnalysisDate)
	}
	if result.SubredditCounts["golang"] != 2 || result.SubredditCounts["homelab"] != 1 {
		t.Fatalf("subreddit counts = %v", result.SubredditCounts)
	}
}

func TestRun_InvalidURLStopsBeforeCollector(t *testing.T) {
	col := &fakeCollector{}
	gen := &fakeGen{}
	p := New(col, gen, newFakeStore(), testLogger())

	_, err := p.Run(context.Background(), "https://example.com/nope", 100)
	if err == nil {
		t.Fatal("expected error")
	}
	if domain.KindOf(err) != domain.KindInvalidURL {
		t.Fatalf("kind = %v, want KindInvalidURL", domain.KindOf(err))
	}
	if len(col.calls) != 0 {
		t.Fatalf("collector called for invalid URL: %v", col.calls)
	}
	if gen.called {
		t.Fatal("generator called for invalid URL")
	}
}

func TestRun_UserNotFoundIsFatal(t *testing.T) {
	col := &fakeCollector{
		resolveErr: domain.E(domain.KindUserNotFound, "collector.ResolveUser", errors.New("gone")),
	}
	gen := &fakeGen{}
	p := New(col, gen, newFakeStore(), testLogger())

	_, err := p.Run(context.Background(), "https://reddit.com/u/ghost", 100)
	if domain.KindOf(err) != domain.KindUserNotFound {
		t.Fatalf("kind = %v, want KindUserNotFound", domain.KindOf(err))
	}
	if gen.called {
		t.Fatal("generator must not run when the user cannot be resolved")
	}
}

func TestRun_CommentFailureDegradesToEmpty(t *testing.T) {
	col := &fakeCollector{
		posts:       []domain.Post{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
		commentsErr: errors.New("transient upstream error"),
	}
	gen := &fakeGen{persona: "still works"}
	store := newFakeStore()
	p := New(col, gen, store, testLogger())

	result, err := p.Run(context.Background(), "https://reddit.com/user/alice", 100)
	if err != nil {
		t.Fatalf("comment failure must be non-fatal, got: %v", err)
	}
	if result.TotalPosts != 3 || result.TotalComments != 0 {
		t.Fatalf("counts = %d/%d, want 3/0", result.TotalPosts, result.TotalComments)
	}
	if !gen.called {
		t.Fatal("pipeline must still reach the synthesizer")
	}
	if len(gen.got.Comments) != 0 {
		t.Fatal("synthesizer should see an empty comment sequence")
	}
}

func TestRun_BothCategoriesFailStillRuns(t *testing.T) {
	col := &fakeCollector{
		postsErr:    errors.New("posts down"),
		commentsErr: errors.New("comments down"),
	}
	gen := &fakeGen{persona: "sparse profile"}
	p := New(col, gen, newFakeStore(), testLogger())

	result, err := p.Run(context.Background(), "https://reddit.com/user/alice", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalPosts != 0 || result.TotalComments != 0 {
		t.Fatalf("counts = %d/%d, want 0/0", result.TotalPosts, result.TotalComments)
	}
}

func TestRun_GeneratorErrorPropagates(t *testing.T) {
	col := &fakeCollector{posts: []domain.Post{{ID: "p1"}}}
	gen := &fakeGen{err: domain.E(domain.KindAuth, "persona.Complete", errors.New("401"))}
	store := newFakeStore()
	p := New(col, gen, store, testLogger())

	_, err := p.Run(context.Background(), "https://reddit.com/user/alice", 100)
	if domain.KindOf(err) != domain.KindAuth {
		t.Fatalf("kind = %v, want KindAuth", domain.KindOf(err))
	}
	if len(store.profiles) != 0 {
		t.Fatal("nothing should be written when generation fails")
	}
}

func TestRun_ProgressLines(t *testing.T) {
	col := &fakeCollector{}
	gen := &fakeGen{persona: "p"}
	p := New(col, gen, newFakeStore(), testLogger())

	var lines []string
	p.Progress = func(line string) { lines = append(lines, line) }

	if _, err := p.Run(context.Background(), "https://reddit.com/user/alice", 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Target identified: u/alice") {
		t.Fatalf("missing identity line in progress output:\n%s", joined)
	}
}

func TestCollect_DepthClampedToOne(t *testing.T) {
	col := &fakeCollector{}
	gen := &fakeGen{persona: "p"}
	p := New(col, gen, newFakeStore(), testLogger())

	if _, err := p.Run(context.Background(), "https://reddit.com/user/alice", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
