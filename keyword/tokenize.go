package keyword

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonTokenChars = regexp.MustCompile(`[^\pL\pN\s]+`)
	nonSlugChars  = regexp.MustCompile(`[^\pL\pN]+`)
)

// Splits free-form text in to tokens, including lower-case, unicode
// normalization, and some unicode folding.
//
// The intent is for this to work similarly to an NLP tokenizer, as might be
// used in a fulltext search engine, and enable fast matching of comment text
// against a list of known terms. Accent-folded, so censor-dodging variants
// like "vïagra" still land on the plain term.
func TokenizeText(text string) []string {
	// the transform chain needs to be re-created on every call to prevent a race condition
	normFunc := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	bare := strings.ToLower(nonTokenChars.ReplaceAllString(text, " "))
	folded, _, err := transform.String(normFunc, bare)
	if err != nil {
		slog.Warn("unicode normalization error", "err", err)
		folded = bare
	}
	return strings.Fields(folded)
}

// Takes an arbitrary string (eg, a blocklist term) and returns a version with
// all non-letter, non-digit characters removed, and all lower-case
func Slugify(orig string) string {
	return strings.ToLower(nonSlugChars.ReplaceAllString(orig, ""))
}
