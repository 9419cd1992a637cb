// Package classify evaluates the relevance model exported from training:
// a fitted count vectorizer and a fitted linear or naive Bayes classifier,
// both stored as JSON artifacts.
//
// A Model is loaded once at startup and is safe for concurrent use; nothing
// mutates it after Load returns.
package classify

import (
	"encoding/json"
	"fmt"
	"os"

	coreerrors "github.com/lueurxax/tweet-classifier/internal/core/errors"
)

// Model pairs a vectorizer with the classifier trained on its output.
type Model struct {
	vectorizer *Vectorizer
	classifier Classifier
}

// Load reads both artifacts and checks that their feature spaces agree.
func Load(classifierPath, vectorizerPath string) (*Model, error) {
	var va vectorizerArtifact
	if err := readArtifact(vectorizerPath, &va); err != nil {
		return nil, fmt.Errorf("load vectorizer: %w", err)
	}

	var ca classifierArtifact
	if err := readArtifact(classifierPath, &ca); err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}

	vec, err := newVectorizer(va)
	if err != nil {
		return nil, fmt.Errorf("build vectorizer: %w", err)
	}

	clf, err := newClassifier(ca)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	return New(vec, clf)
}

// New pairs an already built vectorizer and classifier.
func New(vec *Vectorizer, clf Classifier) (*Model, error) {
	if vec == nil || clf == nil {
		return nil, coreerrors.ErrModelNotLoaded
	}

	if vec.Dimension() != clf.Dimension() {
		return nil, fmt.Errorf("%w: vectorizer has %d features, classifier expects %d",
			coreerrors.ErrModelMismatch, vec.Dimension(), clf.Dimension())
	}

	return &Model{vectorizer: vec, classifier: clf}, nil
}

func readArtifact(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}

// Classify vectorizes text and returns the predicted label.
func (m *Model) Classify(text string) (int, error) {
	if m == nil {
		return 0, coreerrors.ErrModelNotLoaded
	}

	return m.classifier.Predict(m.vectorizer.Transform(text)), nil
}

// Vectorizer exposes the fitted vectorizer.
func (m *Model) Vectorizer() *Vectorizer {
	return m.vectorizer
}

// Classes lists the labels the classifier can emit.
func (m *Model) Classes() []int {
	return m.classifier.Classes()
}
