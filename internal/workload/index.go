package workload

import (
	"crypto/sha256"
	"maps"
	"slices"
	"strings"
)

// DocSet is the set of document ids a word occurs in.
type DocSet map[int]struct{}

// InvertedIndex maps each word to the documents containing it.
type InvertedIndex map[string]DocSet

// Posting is one word of an index with its sorted document ids.
type Posting struct {
	Word string `json:"word"`
	Docs []int  `json:"docs"`
}

const syntheticAlphabet = "abcdefg"

// SyntheticWord derives a deterministic three-letter word from a document id
// and a seed: the first three bytes of the SHA-256 digest of id*k zero bytes,
// each mapped onto the letters a-g.
func SyntheticWord(id, k int) string {
	sum := sha256.Sum256(make([]byte, max(0, id*k)))

	var b strings.Builder
	for _, c := range sum[:3] {
		b.WriteByte(syntheticAlphabet[int(c)%len(syntheticAlphabet)])
	}
	return b.String()
}

// SyntheticIndex builds the index of a synthetic document: the distinct words
// SyntheticWord(id, k) for k in [0, 25), all pointing at id.
func SyntheticIndex(id int) InvertedIndex {
	idx := make(InvertedIndex)
	for k := range 25 {
		idx[SyntheticWord(id, k)] = DocSet{id: {}}
	}
	return idx
}

// IndexDocument builds the index of a single document.
func IndexDocument(doc Document) InvertedIndex {
	idx := make(InvertedIndex)
	for _, w := range Tokenize(doc.Text) {
		idx[w] = DocSet{doc.ID: {}}
	}
	return idx
}

// Merge returns the union of two indexes.
func Merge(a, b InvertedIndex) InvertedIndex {
	out := make(InvertedIndex, max(len(a), len(b)))
	for _, src := range []InvertedIndex{a, b} {
		for w, docs := range src {
			dst, ok := out[w]
			if !ok {
				dst = make(DocSet, len(docs))
				out[w] = dst
			}
			maps.Copy(dst, docs)
		}
	}
	return out
}

// Postings lists the index sorted by word, each with sorted document ids.
func (idx InvertedIndex) Postings() []Posting {
	out := make([]Posting, 0, len(idx))
	for _, w := range slices.Sorted(maps.Keys(idx)) {
		out = append(out, Posting{
			Word: w,
			Docs: slices.Sorted(maps.Keys(idx[w])),
		})
	}
	return out
}
