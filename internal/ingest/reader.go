package ingest

import (
	"fmt"
	"regexp"

	"github.com/qepting91/persona-lens/internal/domain"
)

// Ordered URL shapes for a Reddit profile. First match wins.
var profilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`reddit\.com/u/([^/?#]+)`),
	regexp.MustCompile(`reddit\.com/user/([^/?#]+)`),
	regexp.MustCompile(`reddit\.com/users/([^/?#]+)`),
}

// Regex for valid Reddit usernames
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)

// ExtractUsername pulls the username out of a profile URL.
func ExtractUsername(url string) (string, error) {
	for _, p := range profilePatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", domain.E(domain.KindInvalidURL, "ingest.ExtractUsername",
		fmt.Errorf("invalid Reddit URL format: %s", url))
}

// ValidUsername reports whether name looks like a real Reddit account name.
func ValidUsername(name string) bool {
	return usernameRegex.MatchString(name)
}
