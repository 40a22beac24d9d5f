package stringutils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlPattern          = regexp.MustCompile(`(?i)(https?://|ftp://|www\.)[^\s]+`)
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
	multiSpacePattern   = regexp.MustCompile(`\s+`)
)

// SanitizeTitle strips URLs, markdown links, wrapping quotes and stray symbols
// from model-generated conversation titles.
func SanitizeTitle(title string) string {
	title = urlPattern.ReplaceAllString(title, "")
	title = markdownLinkPattern.ReplaceAllString(title, "$1")
	title = strings.Trim(title, `"'`)

	var result strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) ||
			r == '.' || r == ',' || r == '!' || r == '?' || r == '-' || r == '\'' {
			result.WriteRune(r)
		}
	}
	title = multiSpacePattern.ReplaceAllString(result.String(), " ")

	title = strings.TrimSpace(title)
	return strings.TrimRight(title, " .,!?-'")
}

// TruncateTitle truncates a title to a maximum length, breaking at word boundaries.
func TruncateTitle(title string, maxLen int) string {
	if len(title) <= maxLen {
		return title
	}

	ellipsis := "..."
	contentLimit := maxLen - len(ellipsis)
	if contentLimit < 0 {
		contentLimit = 0
	}

	truncated := title[:contentLimit]
	minLen := contentLimit / 2

	// Prefer to cut on a word boundary when possible
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > minLen {
		truncated = strings.TrimRight(truncated[:lastSpace], " ")
	}

	return truncated + ellipsis
}

// ConversationTitle produces a clean, bounded title from raw model output,
// falling back to the provided default when nothing usable remains.
func ConversationTitle(raw string, maxLen int, fallback string) string {
	title := SanitizeTitle(raw)
	if title == "" {
		return fallback
	}
	return TruncateTitle(title, maxLen)
}
