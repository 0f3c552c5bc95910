package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ProfanityList holds the flagged words and their folded match forms.
type ProfanityList struct {
	words  []string
	folded []string
}

// Hit is the number of occurrences of one flagged word in a text.
type Hit struct {
	Word  string
	Count int
}

// NewProfanityList builds a list from raw words. Blank and duplicate entries
// (after folding) are dropped.
func NewProfanityList(words []string) *ProfanityList {
	list := &ProfanityList{}
	seen := make(map[string]bool)

	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		folded := Fold(word)
		if folded == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		list.words = append(list.words, word)
		list.folded = append(list.folded, folded)
	}

	return list
}

// LoadProfanityList reads every field of a comma-separated file.
func LoadProfanityList(path string) (*ProfanityList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profanity list: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return ReadProfanityList(f)
}

// ReadProfanityList reads a profanity list in CSV form.
func ReadProfanityList(r io.Reader) (*ProfanityList, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var words []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read profanity list: %w", err)
		}
		words = append(words, record...)
	}

	return NewProfanityList(words), nil
}

// Words returns the flagged words in file order.
func (l *ProfanityList) Words() []string {
	return append([]string(nil), l.words...)
}

// Len returns the number of flagged words.
func (l *ProfanityList) Len() int {
	return len(l.words)
}

// Match counts the non-overlapping occurrences of every flagged word in text.
// Matching ignores case and accents. Words with no occurrence are omitted.
func (l *ProfanityList) Match(text string) []Hit {
	if l == nil || len(l.words) == 0 {
		return nil
	}

	folded := Fold(text)
	var hits []Hit
	for i, word := range l.folded {
		if n := strings.Count(folded, word); n > 0 {
			hits = append(hits, Hit{Word: l.words[i], Count: n})
		}
	}
	return hits
}

// Fold lowercases s and strips diacritics, so "Énorme" and "enorme" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(result)
}
