// Package slug derives URL-safe identifiers from task titles and
// disambiguates them against the set of slugs already in use.
package slug

import (
	"strconv"
	"strings"

	"github.com/gosimple/unidecode"
)

// fallback is used when a title normalizes to nothing (e.g. "!!!").
const fallback = "task"

// Slugify normalizes a title into a URL-safe token: non-ASCII letters are
// transliterated ("Café" becomes "cafe"), then lowercased, with runs of
// non-alphanumeric characters collapsed to a single hyphen and leading and
// trailing hyphens trimmed. An empty result falls back to "task".
func Slugify(title string) string {
	ascii := strings.ToLower(unidecode.Unidecode(title))

	var b strings.Builder
	b.Grow(len(ascii))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return fallback
	}
	return s
}

// Generate returns a slug for title that is not present in taken.
// If the normalized base is free it is returned as-is; otherwise the first
// free integer-suffixed candidate wins: base-2, base-3, and so on.
// Pure function of its inputs; always terminates with a unique value.
func Generate(title string, taken map[string]struct{}) string {
	base := Slugify(title)
	if _, exists := taken[base]; !exists {
		return base
	}

	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
	}
}
