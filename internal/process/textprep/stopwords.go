package textprep

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const tokenSeparator = " "

// Bundled English lists: the general-purpose stop-words list and the NLTK corpus.
var (
	//go:embed lists/stop_words_en.txt
	generalEnglishList []byte

	//go:embed lists/nltk_english.txt
	nltkEnglishList []byte
)

// Stopwords is an immutable filter set. Matching is exact and case-sensitive.
type Stopwords struct {
	words map[string]struct{}
}

// DefaultStopwords returns the union of the two bundled English lists.
func DefaultStopwords() *Stopwords {
	sw := &Stopwords{words: make(map[string]struct{})}

	// The bundled lists are compiled in; a read error here is a build defect.
	if err := sw.merge(bytes.NewReader(generalEnglishList)); err != nil {
		panic(fmt.Sprintf("textprep: general stopword list: %v", err))
	}

	if err := sw.merge(bytes.NewReader(nltkEnglishList)); err != nil {
		panic(fmt.Sprintf("textprep: nltk stopword list: %v", err))
	}

	return sw
}

// LoadStopwords returns the bundled lists merged with an optional extra list
// file holding one word per line. Blank lines and lines starting with # are skipped.
func LoadStopwords(extraPath string) (*Stopwords, error) {
	sw := DefaultStopwords()

	if extraPath == "" {
		return sw, nil
	}

	f, err := os.Open(extraPath)
	if err != nil {
		return nil, fmt.Errorf("open stopword list %s: %w", extraPath, err)
	}
	defer f.Close()

	if err := sw.merge(f); err != nil {
		return nil, fmt.Errorf("read stopword list %s: %w", extraPath, err)
	}

	return sw, nil
}

// NewStopwords builds a filter set from the given words.
func NewStopwords(words ...string) *Stopwords {
	sw := &Stopwords{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		sw.words[w] = struct{}{}
	}

	return sw
}

func (s *Stopwords) merge(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}

		s.words[word] = struct{}{}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan words: %w", err)
	}

	return nil
}

// Contains reports whether word is in the set.
func (s *Stopwords) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of distinct words in the set.
func (s *Stopwords) Len() int {
	return len(s.words)
}

// Words returns the set in sorted order.
func (s *Stopwords) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}

	sort.Strings(out)

	return out
}

// Remove splits text on single spaces, drops stopwords and the empty tokens
// left by repeated or trailing spaces, and rejoins the rest with single spaces.
func (s *Stopwords) Remove(text string) string {
	tokens := strings.Split(text, tokenSeparator)
	kept := tokens[:0]

	for _, tok := range tokens {
		if tok == "" || s.Contains(tok) {
			continue
		}

		kept = append(kept, tok)
	}

	return strings.Join(kept, tokenSeparator)
}
