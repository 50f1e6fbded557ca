// Local keyword-based spam checking, with no external service dependency.
//
// Comment text is tokenized with unicode folding and matched against a
// blocklist of slugified terms. Useful on its own for small sites, and as a
// cheap pre-filter in front of a remote checker.
package keyword

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/commentmod/commentmod"
)

// https://en.wikipedia.org/wiki/GTUBE
var gtubeString = "XJS*C4JDBQADN1.NSBN3*2IDNEN*GTUBE-STANDARD-ANTI-UBE-TEST-EMAIL*C.34X"

// SpamChecker which flags comments whose body or submitter name contains a
// blocklisted term. The GTUBE test string is always flagged, as an
// end-to-end canary independent of the blocklist.
//
// Not safe for concurrent mutation: load terms before wiring the checker in
// to an engine.
type Checker struct {
	Terms map[string]bool
}

var _ commentmod.SpamChecker = (*Checker)(nil)

func NewChecker(terms ...string) *Checker {
	c := &Checker{
		Terms: make(map[string]bool),
	}
	c.AddTerms(terms...)
	return c
}

// Adds blocklist entries. Terms are slugified to match the tokenizer's
// folding; multi-word terms collapse to a single token and will not match.
func (c *Checker) AddTerms(terms ...string) {
	for _, t := range terms {
		slug := Slugify(t)
		if slug != "" {
			c.Terms[slug] = true
		}
	}
}

// Loads blocklist entries from a JSON file containing an array of strings.
func (c *Checker) LoadFromFileJSON(p string) error {

	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	var terms []string
	if err := json.Unmarshal(raw, &terms); err != nil {
		return err
	}

	c.AddTerms(terms...)
	return nil
}

func (c *Checker) IsSpam(ctx context.Context, cmt *commentmod.Comment, target commentmod.Target) (bool, error) {
	if strings.Contains(cmt.Body, gtubeString) {
		return true, nil
	}
	for _, tok := range TokenizeText(cmt.Body) {
		if c.Terms[tok] {
			return true, nil
		}
	}
	for _, tok := range TokenizeText(cmt.Submitter.Name) {
		if c.Terms[tok] {
			return true, nil
		}
	}
	return false, nil
}
