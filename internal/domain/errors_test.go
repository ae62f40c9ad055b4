package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf_WalksWrapChain(t *testing.T) {
	base := E(KindUserNotFound, "collector.ResolveUser", errors.New("gone"))
	wrapped := fmt.Errorf("run failed: %w", base)

	if got := KindOf(wrapped); got != KindUserNotFound {
		t.Fatalf("kind = %v, want KindUserNotFound", got)
	}
}

func TestKindOf_PlainErrorIsUnknown(t *testing.T) {
	if got := KindOf(errors.New("something else")); got != KindUnknown {
		t.Fatalf("kind = %v, want KindUnknown", got)
	}
	if got := KindOf(nil); got != KindUnknown {
		t.Fatalf("kind of nil = %v, want KindUnknown", got)
	}
}

func TestHint(t *testing.T) {
	if Hint(KindAuth) == "" || Hint(KindRateLimit) == "" || Hint(KindUserNotFound) == "" {
		t.Fatal("external-service kinds need operator hints")
	}
	if Hint(KindUnknown) != "" {
		t.Fatal("unknown failures stay generic, no hint")
	}
}

func TestErrorString(t *testing.T) {
	err := E(KindConfig, "config.Validate", errors.New("GROQ_API_KEY is not set"))
	if err.Error() != "config.Validate: GROQ_API_KEY is not set" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if errors.Unwrap(err) == nil {
		t.Fatal("expected wrapped cause")
	}
}
