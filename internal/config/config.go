package config

import (
	"errors"
	"os"

	"github.com/qepting91/persona-lens/internal/domain"
)

// Config carries every credential and knob the tool reads from the
// environment. Built once at startup and passed into constructors, so
// missing-credential behavior is testable without env mutation.
type Config struct {
	RedditClientID     string
	RedditClientSecret string
	RedditUsername     string
	RedditPassword     string
	RedditUserAgent    string

	GroqAPIKey string

	CollectorMode string // "api", "public", or "mock"
	Port          string
}

// FromEnv reads the process environment. Call godotenv.Load first if a
// .env file should be honored.
func FromEnv() Config {
	return Config{
		RedditClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		RedditClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		RedditUsername:     os.Getenv("REDDIT_USERNAME"),
		RedditPassword:     os.Getenv("REDDIT_PASSWORD"),
		RedditUserAgent:    getenv("REDDIT_USER_AGENT", "PersonaLens/1.0"),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		CollectorMode:      getenv("COLLECTOR_MODE", "api"),
		Port:               getenv("PORT", "8080"),
	}
}

// Validate checks credentials before any network call is made. The LLM
// key is checked first: a run that cannot be summarized must fail before
// it touches the content API.
func (c Config) Validate() error {
	if c.GroqAPIKey == "" {
		return domain.E(domain.KindConfig, "config.Validate",
			errors.New("GROQ_API_KEY is not set"))
	}
	switch c.CollectorMode {
	case "api":
		if c.RedditClientID == "" || c.RedditClientSecret == "" {
			return domain.E(domain.KindConfig, "config.Validate",
				errors.New("REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET are required for api mode"))
		}
		if c.RedditUserAgent == "" {
			return domain.E(domain.KindConfig, "config.Validate",
				errors.New("REDDIT_USER_AGENT is required for api mode"))
		}
	case "public":
		if c.RedditUserAgent == "" {
			return domain.E(domain.KindConfig, "config.Validate",
				errors.New("REDDIT_USER_AGENT is required for public mode"))
		}
	case "mock":
	default:
		return domain.E(domain.KindConfig, "config.Validate",
			errors.New("unknown COLLECTOR_MODE: "+c.CollectorMode+" (use 'api', 'public', or 'mock')"))
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
