package classify

import (
	"fmt"
	"regexp"
	"strings"

	coreerrors "github.com/lueurxax/tweet-classifier/internal/core/errors"
)

// tokenPattern matches runs of two or more word characters, the default
// count-vectorizer token pattern extended to Unicode letters and digits.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// SparseVector maps a feature column to its count.
type SparseVector map[int]float64

// vectorizerArtifact is the JSON export of a fitted count vectorizer.
type vectorizerArtifact struct {
	Vocabulary map[string]int `json:"vocabulary"`
	Lowercase  *bool          `json:"lowercase"`
	NgramRange []int          `json:"ngram_range"`
	StopWords  []string       `json:"stop_words"`
}

// Vectorizer turns text into token-count feature vectors over a fixed vocabulary.
type Vectorizer struct {
	vocabulary map[string]int
	lowercase  bool
	minN, maxN int
	stopWords  map[string]struct{}
	dimension  int
}

func newVectorizer(a vectorizerArtifact) (*Vectorizer, error) {
	if len(a.Vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", coreerrors.ErrModelNotLoaded)
	}

	v := &Vectorizer{
		vocabulary: a.Vocabulary,
		lowercase:  true,
		minN:       1,
		maxN:       1,
		stopWords:  make(map[string]struct{}, len(a.StopWords)),
	}

	if a.Lowercase != nil {
		v.lowercase = *a.Lowercase
	}

	if len(a.NgramRange) != 0 {
		if len(a.NgramRange) != 2 || a.NgramRange[0] < 1 || a.NgramRange[0] > a.NgramRange[1] {
			return nil, fmt.Errorf("%w: ngram_range %v", coreerrors.ErrUnsupportedModel, a.NgramRange)
		}

		v.minN, v.maxN = a.NgramRange[0], a.NgramRange[1]
	}

	for _, w := range a.StopWords {
		v.stopWords[w] = struct{}{}
	}

	for term, col := range a.Vocabulary {
		if col < 0 {
			return nil, fmt.Errorf("%w: negative column for %q", coreerrors.ErrUnsupportedModel, term)
		}

		if col+1 > v.dimension {
			v.dimension = col + 1
		}
	}

	return v, nil
}

// Dimension is the width of the feature space.
func (v *Vectorizer) Dimension() int {
	return v.dimension
}

// Tokenize applies case folding, token extraction and stopword filtering.
func (v *Vectorizer) Tokenize(text string) []string {
	if v.lowercase {
		text = strings.ToLower(text)
	}

	raw := tokenPattern.FindAllString(text, -1)
	tokens := raw[:0]

	for _, tok := range raw {
		if _, stop := v.stopWords[tok]; stop {
			continue
		}

		tokens = append(tokens, tok)
	}

	return tokens
}

// Transform counts the in-vocabulary n-grams of text.
func (v *Vectorizer) Transform(text string) SparseVector {
	tokens := v.Tokenize(text)
	vec := make(SparseVector)

	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := strings.Join(tokens[i:i+n], " ")
			if col, ok := v.vocabulary[term]; ok {
				vec[col]++
			}
		}
	}

	return vec
}
