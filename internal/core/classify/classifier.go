package classify

import (
	"fmt"
	"math"

	coreerrors "github.com/lueurxax/tweet-classifier/internal/core/errors"
)

// Supported classifier kinds.
const (
	KindMultinomialNB = "multinomial_nb"
	KindLinear        = "linear"
)

// classifierArtifact is the JSON export of a fitted classifier.
type classifierArtifact struct {
	Type    string `json:"type"`
	Classes []int  `json:"classes"`

	// multinomial_nb
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`

	// linear
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// Classifier predicts a single class label from a feature vector.
type Classifier interface {
	Predict(vec SparseVector) int
	Dimension() int
	Classes() []int
}

func newClassifier(a classifierArtifact) (Classifier, error) {
	if len(a.Classes) < 2 {
		return nil, fmt.Errorf("%w: need at least two classes, got %d", coreerrors.ErrUnsupportedModel, len(a.Classes))
	}

	switch a.Type {
	case KindMultinomialNB:
		return newNaiveBayes(a)
	case KindLinear:
		return newLinear(a)
	default:
		return nil, fmt.Errorf("%w: %q", coreerrors.ErrUnsupportedModel, a.Type)
	}
}

type naiveBayes struct {
	classes        []int
	classLogPrior  []float64
	featureLogProb [][]float64
	dim            int
}

func newNaiveBayes(a classifierArtifact) (*naiveBayes, error) {
	if len(a.ClassLogPrior) != len(a.Classes) || len(a.FeatureLogProb) != len(a.Classes) {
		return nil, fmt.Errorf("%w: %d classes, %d priors, %d feature rows",
			coreerrors.ErrModelMismatch, len(a.Classes), len(a.ClassLogPrior), len(a.FeatureLogProb))
	}

	dim, err := uniformWidth(a.FeatureLogProb)
	if err != nil {
		return nil, err
	}

	return &naiveBayes{
		classes:        a.Classes,
		classLogPrior:  a.ClassLogPrior,
		featureLogProb: a.FeatureLogProb,
		dim:            dim,
	}, nil
}

func (nb *naiveBayes) Predict(vec SparseVector) int {
	best, bestScore := 0, math.Inf(-1)

	for c := range nb.classes {
		score := nb.classLogPrior[c]
		for col, count := range vec {
			score += count * nb.featureLogProb[c][col]
		}

		if score > bestScore {
			best, bestScore = c, score
		}
	}

	return nb.classes[best]
}

func (nb *naiveBayes) Dimension() int { return nb.dim }
func (nb *naiveBayes) Classes() []int { return nb.classes }

type linear struct {
	classes   []int
	coef      [][]float64
	intercept []float64
	dim       int
}

func newLinear(a classifierArtifact) (*linear, error) {
	rows := len(a.Classes)
	if rows == 2 {
		rows = 1
	}

	if len(a.Coef) != rows || len(a.Intercept) != rows {
		return nil, fmt.Errorf("%w: %d classes need %d coef rows, got %d coef and %d intercept",
			coreerrors.ErrModelMismatch, len(a.Classes), rows, len(a.Coef), len(a.Intercept))
	}

	dim, err := uniformWidth(a.Coef)
	if err != nil {
		return nil, err
	}

	return &linear{classes: a.Classes, coef: a.Coef, intercept: a.Intercept, dim: dim}, nil
}

func (l *linear) decision(row int, vec SparseVector) float64 {
	score := l.intercept[row]
	for col, count := range vec {
		score += count * l.coef[row][col]
	}

	return score
}

func (l *linear) Predict(vec SparseVector) int {
	if len(l.coef) == 1 {
		if l.decision(0, vec) > 0 {
			return l.classes[1]
		}

		return l.classes[0]
	}

	best, bestScore := 0, math.Inf(-1)

	for row := range l.coef {
		if score := l.decision(row, vec); score > bestScore {
			best, bestScore = row, score
		}
	}

	return l.classes[best]
}

func (l *linear) Dimension() int { return l.dim }
func (l *linear) Classes() []int { return l.classes }

func uniformWidth(rows [][]float64) (int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, fmt.Errorf("%w: empty weight matrix", coreerrors.ErrModelMismatch)
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return 0, fmt.Errorf("%w: row %d has %d columns, want %d", coreerrors.ErrModelMismatch, i, len(row), width)
		}
	}

	return width, nil
}
