package file

import (
	"regexp"
	"strings"
)

const (
	// maxSlugLength caps the slug derived from a title.
	maxSlugLength = 90

	// maxStemLength caps "{slug}-{event_id}".
	maxStemLength = 100

	// fallbackSlug is used when a title has no alphanumeric characters.
	fallbackSlug = "update"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	unsafeIDChars   = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// Slug lowercases title, collapses every run of non-alphanumeric characters
// into one hyphen, strips edge hyphens and truncates to 90 characters.
// Titles with nothing left become "update".
func Slug(title string) string {
	s := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
	}
	if s == "" {
		return fallbackSlug
	}
	return s
}

// Stem returns the file name stem for an article, without extension.
// Separators and dots in the event id become hyphens so the name never
// leaves the day directory.
func Stem(title, eventID string) string {
	id := strings.Trim(unsafeIDChars.ReplaceAllString(eventID, "-"), "-")
	return truncate(Slug(title)+"-"+id, maxStemLength)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
