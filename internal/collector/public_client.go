package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/qepting91/persona-lens/internal/domain"
	"golang.org/x/time/rate"
)

// PublicClient fetches user content from Reddit's unauthenticated .json
// endpoints. No OAuth app needed, but the rate limit is stricter.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	baseURL    string
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID         string  `json:"id"`
				Title      string  `json:"title"`
				Selftext   string  `json:"selftext"`
				Body       string  `json:"body"`
				Subreddit  string  `json:"subreddit"`
				Score      int     `json:"score"`
				CreatedUTC float64 `json:"created_utc"`
				Permalink  string  `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func NewPublicClient(userAgent string) (*PublicClient, error) {
	return &PublicClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Public JSON Limit: 1 req / 2 seconds (Stricter)
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		userAgent: userAgent,
		baseURL:   "https://www.reddit.com",
	}, nil
}

func (pc *PublicClient) ResolveUser(ctx context.Context, username string) error {
	resp, err := pc.get(ctx, fmt.Sprintf("%s/user/%s/about.json", pc.baseURL, username))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound, http.StatusForbidden:
		return domain.E(domain.KindUserNotFound, "collector.ResolveUser",
			fmt.Errorf("user %q not found or suspended", username))
	case http.StatusTooManyRequests:
		return domain.E(domain.KindRateLimit, "collector.ResolveUser",
			fmt.Errorf("reddit public access status: %d", resp.StatusCode))
	default:
		return domain.E(domain.KindUnknown, "collector.ResolveUser",
			fmt.Errorf("reddit public access status: %d", resp.StatusCode))
	}
}

func (pc *PublicClient) UserPosts(ctx context.Context, username string, limit int) ([]domain.Post, error) {
	listing, err := pc.fetchListing(ctx,
		fmt.Sprintf("%s/user/%s/submitted.json?limit=%d&sort=new", pc.baseURL, username, limit))
	if err != nil {
		return nil, err
	}

	var posts []domain.Post
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, domain.Post{
			ID:         d.ID,
			Title:      d.Title,
			Body:       d.Selftext,
			Subreddit:  d.Subreddit,
			Score:      d.Score,
			CreatedUTC: d.CreatedUTC,
			Permalink:  "https://reddit.com" + d.Permalink,
		})
	}
	return posts, nil
}

func (pc *PublicClient) UserComments(ctx context.Context, username string, limit int) ([]domain.Comment, error) {
	listing, err := pc.fetchListing(ctx,
		fmt.Sprintf("%s/user/%s/comments.json?limit=%d&sort=new", pc.baseURL, username, limit))
	if err != nil {
		return nil, err
	}

	var comments []domain.Comment
	for _, child := range listing.Data.Children {
		d := child.Data
		comments = append(comments, domain.Comment{
			ID:         d.ID,
			Body:       d.Body,
			Subreddit:  d.Subreddit,
			Score:      d.Score,
			CreatedUTC: d.CreatedUTC,
			Permalink:  "https://reddit.com" + d.Permalink,
		})
	}
	return comments, nil
}

func (pc *PublicClient) fetchListing(ctx context.Context, url string) (*redditListing, error) {
	resp, err := pc.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit public access status: %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (pc *PublicClient) get(ctx context.Context, url string) (*http.Response, error) {
	if err := pc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, "GET", url, nil)
	req.Header.Set("User-Agent", pc.userAgent)

	return pc.httpClient.Do(req)
}
