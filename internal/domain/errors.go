package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure so callers can switch on the
// category instead of matching substrings in error text.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidURL
	KindConfig
	KindUserNotFound
	KindAuth
	KindRateLimit
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindConfig:
		return "config"
	case KindUserNotFound:
		return "user_not_found"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	default:
		return "unknown"
	}
}

// Error wraps a failure with its kind and the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a classified error.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the kind from err, walking the wrap chain.
// Unclassified errors report KindUnknown.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// Hint returns operator guidance for a failure kind. Empty for kinds
// that need none.
func Hint(kind Kind) string {
	switch kind {
	case KindAuth:
		return "Invalid Groq API credentials. Please verify your configuration."
	case KindRateLimit:
		return "Rate limit exceeded. Please wait before retrying."
	case KindUserNotFound:
		return "Reddit user not found or profile is private/suspended."
	default:
		return ""
	}
}
