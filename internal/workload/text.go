package workload

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Document is one input text with a stable id.
type Document struct {
	ID   int
	Name string
	Text string
}

// Tokenize splits text into words: runs of letters and digits, NFKC normalized
// and case folded, so "Straße", "STRASSE" and "strasse" are the same word.
func Tokenize(text string) []string {
	// A Caser is stateful; one per call keeps Tokenize safe across workers.
	folded := cases.Fold().String(norm.NFKC.String(text))
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Counts maps each word to its number of occurrences.
type Counts map[string]int

// CountWords counts the words of a single document.
func CountWords(doc Document) Counts {
	c := make(Counts)
	for _, w := range Tokenize(doc.Text) {
		c[w]++
	}
	return c
}

// MergeCounts adds two word counts together.
func MergeCounts(a, b Counts) Counts {
	out := make(Counts, max(len(a), len(b)))
	for w, n := range a {
		out[w] += n
	}
	for w, n := range b {
		out[w] += n
	}
	return out
}

// WordCount is one entry of a ranked word count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Top ranks the words by count, most frequent first, ties broken by word.
// n <= 0 returns every word.
func (c Counts) Top(n int) []WordCount {
	out := make([]WordCount, 0, len(c))
	for w, k := range c {
		out = append(out, WordCount{Word: w, Count: k})
	}
	slices.SortFunc(out, func(a, b WordCount) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
