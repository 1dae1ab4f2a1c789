package retriever

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

const (
	ChunkSize    = 800
	ChunkOverlap = 120
)

//go:embed policy/*.md
var defaultPolicies embed.FS

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "am": {}, "the": {}, "is": {}, "of": {}, "to": {},
	"in": {}, "for": {}, "on": {}, "my": {}, "me": {}, "i": {}, "what": {}, "whats": {},
	"how": {}, "who": {}, "do": {}, "does": {}, "with": {}, "it": {}, "be": {}, "s": {},
}

type chunk struct {
	text  string
	terms map[string]struct{}
}

// KeywordIndex is an in-process stand-in for the similarity index. It ranks
// chunks by how many distinct query terms they contain.
type KeywordIndex struct {
	chunks []chunk
}

// NewKeywordIndex chunks docs and indexes every chunk.
func NewKeywordIndex(docs ...string) *KeywordIndex {
	idx := &KeywordIndex{}
	for _, doc := range docs {
		for _, c := range Split(doc, ChunkSize, ChunkOverlap) {
			idx.chunks = append(idx.chunks, chunk{text: c, terms: termSet(c)})
		}
	}
	return idx
}

// LoadDocuments reads every .md and .txt file under dir. An empty dir selects
// the built-in policy documents.
func LoadDocuments(dir string) ([]string, error) {
	var fsys fs.FS = defaultPolicies
	root := "policy"
	if dir != "" {
		fsys = os.DirFS(dir)
		root = "."
	}

	var docs []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".txt":
		default:
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		docs = append(docs, string(data))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("LoadDocuments(): %w", err)
	}
	return docs, nil
}

func (idx *KeywordIndex) Search(ctx context.Context, query string, k int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return []string{}, nil
	}

	type hit struct {
		pos   int
		score int
	}
	q := termSet(query)
	var hits []hit
	for i, c := range idx.chunks {
		score := 0
		for term := range q {
			if _, ok := c.terms[term]; ok {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, hit{pos: i, score: score})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })

	out := make([]string, 0, k)
	for _, h := range hits {
		if len(out) == k {
			break
		}
		out = append(out, idx.chunks[h.pos].text)
	}
	return out, nil
}

// Split cuts text into windows of at most size runes that overlap by overlap
// runes. Short text is returned as a single chunk.
func Split(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}
	if overlap >= size {
		overlap = 0
	}

	var out []string
	for start := 0; start < len(runes); start += size - overlap {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}

func termSet(text string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, stop := stopwords[w]; stop {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
