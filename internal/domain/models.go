package domain

import "context"

// Post is a single submission authored by the analyzed user.
type Post struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Body       string  `json:"selftext"`
	Subreddit  string  `json:"subreddit"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"url"`
}

// Comment is a single comment authored by the analyzed user.
type Comment struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	Subreddit  string  `json:"subreddit"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"url"`
}

// UserContent is everything collected for one user in one run.
// Posts and Comments keep the API's newest-first order.
type UserContent struct {
	Username      string    `json:"username"`
	Posts         []Post    `json:"posts"`
	Comments      []Comment `json:"comments"`
	TotalPosts    int       `json:"total_posts"`
	TotalComments int       `json:"total_comments"`
}

// Collector defines the interface for fetching a user's public content.
type Collector interface {
	// ResolveUser verifies the account exists and is accessible.
	ResolveUser(ctx context.Context, username string) error
	UserPosts(ctx context.Context, username string, limit int) ([]Post, error)
	UserComments(ctx context.Context, username string, limit int) ([]Comment, error)
}

// Export is the structured form of a finished analysis, persisted as
// JSON next to the plain-text report.
type Export struct {
	Username     string      `json:"username"`
	AnalysisDate string      `json:"analysis_date"`
	Persona      string      `json:"persona"`
	Stats        ExportStats `json:"stats"`
}

type ExportStats struct {
	PostsAnalyzed    int    `json:"posts_analyzed"`
	CommentsAnalyzed int    `json:"comments_analyzed"`
	ModelUsed        string `json:"model_used"`
}

// Model names the Groq-hosted models the synthesizer may use.
type Model string

const (
	ModelLlama70B Model = "llama3-70b-8192"
	ModelLlama8B  Model = "llama3-8b-8192"
	ModelMixtral  Model = "mixtral-8x7b-32768"
)

// DefaultModel is the largest model, matching the CLI default.
const DefaultModel = ModelLlama70B

// Models lists every selectable model, default first.
func Models() []Model {
	return []Model{ModelLlama70B, ModelLlama8B, ModelMixtral}
}

// ValidModel reports whether name is one of the selectable models.
func ValidModel(name string) bool {
	for _, m := range Models() {
		if string(m) == name {
			return true
		}
	}
	return false
}
