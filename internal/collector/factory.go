package collector

import (
	"fmt"

	"github.com/qepting91/persona-lens/internal/config"
	"github.com/qepting91/persona-lens/internal/domain"
)

// New selects the correct implementation based on the configured mode.
func New(cfg config.Config) (domain.Collector, error) {
	switch cfg.CollectorMode {
	case "api":
		return NewAPIClient(
			cfg.RedditClientID,
			cfg.RedditClientSecret,
			cfg.RedditUsername,
			cfg.RedditPassword,
			cfg.RedditUserAgent,
		)
	case "public":
		return NewPublicClient(cfg.RedditUserAgent)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", cfg.CollectorMode)
	}
}
