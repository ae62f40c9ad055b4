package collector

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/qepting91/persona-lens/internal/domain"
)

// MockClient implements domain.Collector but returns fake data
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (mc *MockClient) ResolveUser(ctx context.Context, username string) error {
	return nil
}

func (mc *MockClient) UserPosts(ctx context.Context, username string, limit int) ([]domain.Post, error) {
	// Simulate network latency
	time.Sleep(200 * time.Millisecond)

	var posts []domain.Post
	for i := 0; i < limit; i++ {
		posts = append(posts, domain.Post{
			ID:         fmt.Sprintf("mockpost%d", i),
			Title:      fmt.Sprintf("Simulated post #%d by %s", i, username),
			Body:       "I spend most weekends tinkering with home automation and it finally paid off this week.",
			Subreddit:  "homeautomation",
			Score:      rand.Intn(500),
			CreatedUTC: float64(time.Now().Unix()),
			Permalink:  fmt.Sprintf("https://reddit.com/r/homeautomation/comments/mockpost%d/", i),
		})
	}
	return posts, nil
}

func (mc *MockClient) UserComments(ctx context.Context, username string, limit int) ([]domain.Comment, error) {
	time.Sleep(200 * time.Millisecond)

	var comments []domain.Comment
	for i := 0; i < limit; i++ {
		comments = append(comments, domain.Comment{
			ID:         fmt.Sprintf("mockcomment%d", i),
			Body:       "Honestly the docs cover this, but the short answer is to check your firmware version first.",
			Subreddit:  "homeautomation",
			Score:      rand.Intn(50),
			CreatedUTC: float64(time.Now().Unix()),
			Permalink:  fmt.Sprintf("https://reddit.com/r/homeautomation/comments/x/mockcomment%d/", i),
		})
	}
	return comments, nil
}
