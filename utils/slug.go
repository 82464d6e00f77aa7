package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cyrillicToLatin transliterates Russian and Uzbek Cyrillic letters to Latin
// so titles in either script produce readable slugs.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
	// Uzbek-specific letters
	'ў': "o", 'қ': "q", 'ғ': "g", 'ҳ': "h",
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces       = regexp.MustCompile(`\s+`)
	slugDashes       = regexp.MustCompile(`-+`)
)

// GenerateSlug builds a URL-safe slug from a title: lowercase, Cyrillic
// transliterated, accents stripped, everything outside [a-z0-9-] removed.
func GenerateSlug(title string) string {
	if title == "" {
		return ""
	}

	slug := strings.ToLower(title)
	slug = transliterate(slug)

	// Strip combining marks after NFD decomposition
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, slug); err == nil {
		slug = stripped
	}

	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	return slug
}

func transliterate(text string) string {
	var b strings.Builder
	for _, r := range text {
		if replacement, ok := cyrillicToLatin[r]; ok {
			b.WriteString(replacement)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidSlug reports whether s already satisfies the slug charset
// (lowercase letters, digits, hyphens; no leading/trailing hyphen).
func ValidSlug(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
