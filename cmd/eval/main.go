// Command eval scores the relevance model against a labeled JSONL dataset.
//
// Each line holds {"text": "...", "relevance": 0|1}. Text goes through the
// same sanitization and stopword removal as the API before classification;
// it must already be English.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lueurxax/tweet-classifier/internal/core/classify"
	"github.com/lueurxax/tweet-classifier/internal/process/textprep"
)

type evalRecord struct {
	Text      string `json:"text"`
	Relevance *int   `json:"relevance"`
}

type evalStats struct {
	total   int
	skipped int
	tp      int
	fp      int
	fn      int
	tn      int
}

type textClassifier interface {
	Classify(text string) (int, error)
}

func main() {
	inputPath := flag.String("input", "docs/eval/relevance.jsonl", "Path to JSONL dataset")
	classifierPath := flag.String("classifier", "./classifiers/relevance_classifier.json", "Path to classifier artifact")
	vectorizerPath := flag.String("vectorizer", "./classifiers/count_vectorizer.json", "Path to vectorizer artifact")
	stopwordsPath := flag.String("stopwords", "", "Optional extra stopword list")
	positiveLabel := flag.Int("positive", 1, "Label treated as relevant")
	minPrecision := flag.Float64("min-precision", -1, "Fail if precision is below this value (disabled if <0)")
	minRecall := flag.Float64("min-recall", -1, "Fail if recall is below this value (disabled if <0)")
	flag.Parse()

	model, err := classify.Load(*classifierPath, *vectorizerPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load model: %v\n", err)
		os.Exit(1)
	}

	stopwords, err := textprep.LoadStopwords(*stopwordsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load stopwords: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open input: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	stats, err := evaluate(f, model, stopwords, *positiveLabel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input: %v\n", err)
		os.Exit(1)
	}

	printSummary(stats, *positiveLabel)

	precision := ratio(stats.tp, stats.tp+stats.fp)
	recall := ratio(stats.tp, stats.tp+stats.fn)
	if *minPrecision >= 0 && precision < *minPrecision {
		fmt.Fprintf(os.Stderr, "precision %.3f is below threshold %.3f\n", precision, *minPrecision)
		os.Exit(1)
	}
	if *minRecall >= 0 && recall < *minRecall {
		fmt.Fprintf(os.Stderr, "recall %.3f is below threshold %.3f\n", recall, *minRecall)
		os.Exit(1)
	}
}

func evaluate(r io.Reader, model textClassifier, stopwords *textprep.Stopwords, positive int) (evalStats, error) {
	stats := evalStats{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec evalRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil || rec.Relevance == nil || strings.TrimSpace(rec.Text) == "" {
			stats.skipped++
			continue
		}

		predictedLabel, err := model.Classify(stopwords.Remove(textprep.Sanitize(rec.Text)))
		if err != nil {
			return stats, fmt.Errorf("classify record %d: %w", stats.total+stats.skipped+1, err)
		}

		stats.total++

		predicted := predictedLabel == positive
		actualPositive := *rec.Relevance == positive
		switch {
		case predicted && actualPositive:
			stats.tp++
		case predicted && !actualPositive:
			stats.fp++
		case !predicted && actualPositive:
			stats.fn++
		default:
			stats.tn++
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan input: %w", err)
	}

	return stats, nil
}

func printSummary(stats evalStats, positive int) {
	precision := ratio(stats.tp, stats.tp+stats.fp)
	recall := ratio(stats.tp, stats.tp+stats.fn)
	accuracy := ratio(stats.tp+stats.tn, stats.total)

	fmt.Printf("Evaluation Summary\n")
	fmt.Printf("  Records: %d (skipped: %d)\n", stats.total, stats.skipped)
	fmt.Printf("  Positive label: %d\n", positive)
	fmt.Printf("  Confusion: TP=%d FP=%d FN=%d TN=%d\n", stats.tp, stats.fp, stats.fn, stats.tn)
	fmt.Printf("  Precision: %.3f\n", precision)
	fmt.Printf("  Recall: %.3f\n", recall)
	fmt.Printf("  Accuracy: %.3f\n", accuracy)
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
