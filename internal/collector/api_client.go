package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"
	"github.com/qepting91/persona-lens/internal/domain"
	"golang.org/x/time/rate"
)

type APIClient struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

func NewAPIClient(id, secret, user, pass, userAgent string) (*APIClient, error) {
	creds := reddit.Credentials{ID: id, Secret: secret, Username: user, Password: pass}

	client, err := reddit.NewClient(creds, reddit.WithUserAgent(userAgent))
	if err != nil {
		return nil, err
	}

	// API Rate Limit: ~60 reqs/min (safe buffer)
	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)

	return &APIClient{client: client, limiter: limiter}, nil
}

func (ac *APIClient) ResolveUser(ctx context.Context, username string) error {
	if err := ac.limiter.Wait(ctx); err != nil {
		return err
	}

	_, _, err := ac.client.User.Get(ctx, username)
	if err != nil {
		return classifyAPIError("collector.ResolveUser", username, err)
	}
	return nil
}

func (ac *APIClient) UserPosts(ctx context.Context, username string, limit int) ([]domain.Post, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	posts, _, err := ac.client.User.PostsOf(ctx, username, &reddit.ListUserOverviewOptions{
		ListOptions: reddit.ListOptions{Limit: limit},
		Sort:        "new",
	})
	if err != nil {
		return nil, fmt.Errorf("authenticated api error: %w", err)
	}

	var result []domain.Post
	for _, p := range posts {
		result = append(result, domain.Post{
			ID:         p.ID,
			Title:      p.Title,
			Body:       p.Body,
			Subreddit:  p.SubredditName,
			Score:      p.Score,
			CreatedUTC: float64(p.Created.Time.Unix()),
			Permalink:  "https://reddit.com" + p.Permalink,
		})
	}
	return result, nil
}

func (ac *APIClient) UserComments(ctx context.Context, username string, limit int) ([]domain.Comment, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	comments, _, err := ac.client.User.CommentsOf(ctx, username, &reddit.ListUserOverviewOptions{
		ListOptions: reddit.ListOptions{Limit: limit},
		Sort:        "new",
	})
	if err != nil {
		return nil, fmt.Errorf("authenticated api error: %w", err)
	}

	var result []domain.Comment
	for _, c := range comments {
		result = append(result, domain.Comment{
			ID:         c.ID,
			Body:       c.Body,
			Subreddit:  c.SubredditName,
			Score:      c.Score,
			CreatedUTC: float64(c.Created.Time.Unix()),
			Permalink:  "https://reddit.com" + c.Permalink,
		})
	}
	return result, nil
}

// classifyAPIError maps go-reddit failures onto domain kinds. Suspended
// accounts come back as 403, deleted ones as 404; both read as "gone"
// to the caller.
func classifyAPIError(op, username string, err error) error {
	var rerr *reddit.ErrorResponse
	if errors.As(err, &rerr) && rerr.Response != nil {
		switch rerr.Response.StatusCode {
		case http.StatusNotFound, http.StatusForbidden:
			return domain.E(domain.KindUserNotFound, op,
				fmt.Errorf("user %q not found or suspended", username))
		case http.StatusTooManyRequests:
			return domain.E(domain.KindRateLimit, op, err)
		case http.StatusUnauthorized:
			return domain.E(domain.KindAuth, op, err)
		}
	}
	return domain.E(domain.KindUnknown, op, err)
}
