package config

import (
	"strings"
	"testing"

	"github.com/qepting91/persona-lens/internal/domain"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("REDDIT_USER_AGENT", "")
	t.Setenv("COLLECTOR_MODE", "")
	t.Setenv("PORT", "")

	cfg := FromEnv()
	if cfg.CollectorMode != "api" {
		t.Fatalf("default mode = %q, want api", cfg.CollectorMode)
	}
	if cfg.Port != "8080" {
		t.Fatalf("default port = %q, want 8080", cfg.Port)
	}
	if cfg.RedditUserAgent == "" {
		t.Fatal("expected a default user agent")
	}
}

func TestValidate_GroqKeyCheckedFirst(t *testing.T) {
	// Everything missing: the LLM key must be the first failure so a
	// run without it never reaches the content API.
	cfg := Config{CollectorMode: "api"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if domain.KindOf(err) != domain.KindConfig {
		t.Fatalf("kind = %v, want KindConfig", domain.KindOf(err))
	}
	if !strings.Contains(err.Error(), "GROQ_API_KEY") {
		t.Fatalf("expected GROQ_API_KEY failure first, got: %v", err)
	}
}

func TestValidate_RedditCredsForAPIMode(t *testing.T) {
	cfg := Config{GroqAPIKey: "gsk_test", CollectorMode: "api", RedditUserAgent: "ua"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing reddit credentials")
	}
	if !strings.Contains(err.Error(), "REDDIT_CLIENT_ID") {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.RedditClientID = "id"
	cfg.RedditClientSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MockModeNeedsOnlyGroq(t *testing.T) {
	cfg := Config{GroqAPIKey: "gsk_test", CollectorMode: "mock"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownMode(t *testing.T) {
	cfg := Config{GroqAPIKey: "gsk_test", CollectorMode: "carrier-pigeon"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
