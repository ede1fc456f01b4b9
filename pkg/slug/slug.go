// Package slug turns arbitrary text into URL-safe, lowercase, hyphen-separated
// identifiers. It is used for article IDs, tag IDs and tag tokens.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the words of a slug.
const Separator = '-'

// validPattern matches a well-formed slug.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var validPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// letters that have no canonical decomposition and need an explicit
// ASCII replacement.
//
//nolint:gochecknoglobals // Read-only lookup table.
var transliterations = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'đ': "d",
	'ð': "d",
	'ł': "l",
	'ı': "i",
	'ħ': "h",
	'þ': "th",
	'ŋ': "ng",
}

// Make returns the slug for s.
//
// Non-ASCII letters are folded to their closest ASCII form, the result is
// lowercased, and every run of characters other than [a-z0-9] becomes a
// single hyphen. Leading and trailing hyphens are dropped. The result may be
// empty when s contains no letters or digits.
func Make(s string) string {
	folded := strings.ToLower(fold(s))

	var builder strings.Builder
	builder.Grow(len(folded))

	pending := false
	for _, r := range folded {
		if isSlugRune(r) {
			if pending && builder.Len() > 0 {
				builder.WriteRune(Separator)
			}
			pending = false
			builder.WriteRune(r)
			continue
		}
		pending = true
	}

	return builder.String()
}

// Valid reports whether s is already a slug, i.e. Make(s) == s and s is not empty.
func Valid(s string) bool {
	return validPattern.MatchString(s)
}

// fold maps s to ASCII where a reasonable equivalent exists. Compatibility
// decomposition runs first so styled letters (ℍ, 𝐁, Ⓐ) keep their base
// letter; unidecode then transliterates scripts with no decomposition.
func fold(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))
	for _, r := range s {
		if repl, ok := transliterations[unicode.ToLower(r)]; ok {
			builder.WriteString(repl)
			continue
		}
		builder.WriteRune(r)
	}

	// The chain is stateful, build a fresh one per call.
	chain := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(chain, builder.String())
	if err != nil {
		out = builder.String()
	}
	return unidecode.Unidecode(out)
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
