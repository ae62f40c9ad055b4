package persona

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/qepting91/persona-lens/internal/domain"
)

// Excerpt bounds keep the prompt inside the model's context window.
const (
	maxExcerptItems = 50  // per category
	maxBodyChars    = 500 // per item body
	minCommentChars = 10  // comments at or below this are noise
)

const systemPrompt = "You are an expert digital behavioral analyst specializing in creating comprehensive user personas from social media data. You analyze communication patterns, interests, and behavioral indicators to build accurate psychological profiles."

// BuildExcerpt flattens collected content into the bounded text block the
// model analyzes: the first 50 posts and first 50 comments in collector
// order, bodies truncated to 500 characters, short comments dropped.
func BuildExcerpt(content domain.UserContent) string {
	var lines []string

	posts := content.Posts
	if len(posts) > maxExcerptItems {
		posts = posts[:maxExcerptItems]
	}
	for _, p := range posts {
		switch {
		case p.Title != "" && p.Body != "":
			lines = append(lines, fmt.Sprintf("POST [%s]: %s - %s", p.ID, p.Title, truncate(p.Body, maxBodyChars)))
		case p.Title != "":
			lines = append(lines, fmt.Sprintf("POST [%s]: %s", p.ID, p.Title))
		}
	}

	comments := content.Comments
	if len(comments) > maxExcerptItems {
		comments = comments[:maxExcerptItems]
	}
	for _, c := range comments {
		if utf8.RuneCountInString(c.Body) > minCommentChars {
			lines = append(lines, fmt.Sprintf("COMMENT [%s]: %s", c.ID, truncate(c.Body, maxBodyChars)))
		}
	}

	return strings.Join(lines, "\n\n")
}

// BuildUserPrompt embeds the excerpt into the fixed profile template.
func BuildUserPrompt(content domain.UserContent) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Analyze the following Reddit user data and create a comprehensive digital personality profile.\n\n")
	fmt.Fprintf(&sb, "User: %s\n", content.Username)
	fmt.Fprintf(&sb, "Total Posts: %d\n", content.TotalPosts)
	fmt.Fprintf(&sb, "Total Comments: %d\n\n", content.TotalComments)
	fmt.Fprintf(&sb, "Content to analyze:\n%s\n\n", BuildExcerpt(content))

	sb.WriteString("Please create a detailed profile with the following structure:\n\n")
	fmt.Fprintf(&sb, "Reddit Username: %s\n", content.Username)
	sb.WriteString("==========================================\n\n")

	sb.WriteString("Core Interests & Passions:\n")
	sb.WriteString("- List specific interests with supporting evidence\n")
	sb.WriteString("- Format: Interest (Evidence: \"exact quote\" - Source: Post/Comment ID)\n\n")

	sb.WriteString("Personality Insights:\n")
	sb.WriteString("- Identify key personality traits with behavioral evidence\n")
	sb.WriteString("- Format: Trait (Evidence: \"exact quote\" - Source: Post/Comment ID)\n\n")

	sb.WriteString("Communication Style:\n")
	sb.WriteString("- Analyze writing patterns and tone\n")
	sb.WriteString("- Format: Style element (Evidence: \"exact quote\" - Source: Post/Comment ID)\n\n")

	sb.WriteString("Core Values & Perspectives:\n")
	sb.WriteString("- Identify fundamental beliefs and viewpoints\n")
	sb.WriteString("- Format: Value/Belief (Evidence: \"exact quote\" - Source: Post/Comment ID)\n\n")

	sb.WriteString("Digital Behavior Patterns:\n")
	sb.WriteString("- Examine Reddit engagement and interaction style\n")
	sb.WriteString("- Format: Behavior (Evidence: \"exact quote\" - Source: Post/Comment ID)\n\n")

	sb.WriteString("Guidelines:\n")
	sb.WriteString("- Use direct quotes from the analyzed content\n")
	sb.WriteString("- Include specific post/comment IDs for verification\n")
	sb.WriteString("- Keep quotes meaningful but concise\n")
	sb.WriteString("- Provide concrete evidence for each insight\n")
	sb.WriteString("- Maintain objectivity and professionalism\n")

	return sb.String()
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
