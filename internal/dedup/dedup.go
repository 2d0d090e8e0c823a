package dedup

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText lower-cases and strips diacritics so cosmetic re-renders of the
// same post hash identically across scroll advances.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Fingerprint hashes a normalized field tuple into the post's dedup identity.
func Fingerprint(fields []string) string {
	h := sha1.New()
	for _, f := range fields {
		h.Write([]byte(foldText(f)))
		h.Write([]byte{0}) //field separator, keeps ("ab","c") != ("a","bc")
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Seen tracks the fingerprints already collected during a run.
type Seen struct {
	set mapset.Set[string]
}

func NewSeen() *Seen {
	return &Seen{set: mapset.NewSet[string]()}
}

// MarkSeen records fp and reports whether it was new.
func (s *Seen) MarkSeen(fp string) bool {
	return s.set.Add(fp)
}

func (s *Seen) Len() int {
	return s.set.Cardinality()
}
