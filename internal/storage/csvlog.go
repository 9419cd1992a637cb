// Package storage persists classification results to the append-only CSV log.
//
// Rows have six columns in fixed order, no header and "\n" terminators:
//
//	originalTweet, classifiedTweet, language, relevance, candidate, sentiment
//
// Null fields are written as empty strings.
package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lueurxax/tweet-classifier/internal/core/domain"
	"github.com/lueurxax/tweet-classifier/internal/platform/observability"
)

// FieldsPerRow is the width of every log row.
const FieldsPerRow = 6

const (
	logFileMode = 0o644
	logDirMode  = 0o755
)

// CSVLog appends rows to a single file. Appends are serialized so rows
// from concurrent requests never interleave.
type CSVLog struct {
	path   string
	mu     sync.Mutex
	logger *zerolog.Logger
}

// NewCSVLog returns a log writing to path. The file is created on first append.
func NewCSVLog(path string, logger *zerolog.Logger) *CSVLog {
	return &CSVLog{path: path, logger: logger}
}

// Path returns the log file location.
func (l *CSVLog) Path() string {
	return l.path
}

// Row renders a result in log column order.
func Row(r domain.ClassificationResult) []string {
	return []string{
		domain.Deref(r.OriginalTweet),
		domain.Deref(r.ClassifiedTweet),
		domain.Deref(r.Language),
		strconv.Itoa(r.Relevance),
		strconv.Itoa(r.Candidate),
		strconv.Itoa(r.Sentiment),
	}
}

// EncodeRow renders one "\n"-terminated line with minimal quoting: a field is
// quoted only when it holds a comma, a double quote or a line break. Unlike
// encoding/csv, leading spaces do not force quotes, which keeps sanitized
// tweets byte-identical to rows written by Python's csv module.
func EncodeRow(fields []string) string {
	var b strings.Builder

	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}

		if !strings.ContainsAny(field, ",\"\r\n") {
			b.WriteString(field)
			continue
		}

		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}

	b.WriteByte('\n')

	return b.String()
}

// Append opens the file, writes one row and closes it again.
func (l *CSVLog) Append(ctx context.Context, r domain.ClassificationResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.open()
	if err != nil {
		return err
	}

	if _, err := io.WriteString(f, EncodeRow(Row(r))); err != nil {
		_ = f.Close()
		return fmt.Errorf("write log row: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}

	observability.LogRowsAppended.Inc()
	l.logger.Debug().Str("path", l.path).Msg("appended classification row")

	return nil
}

func (l *CSVLog) open() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), logDirMode); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return f, nil
}

// Check verifies the log file can be opened for appending.
func (l *CSVLog) Check(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.open()
	if err != nil {
		return err
	}

	return f.Close()
}

// ReadAll returns every row in the log. A missing file has no rows.
func (l *CSVLog) ReadAll() ([][]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = FieldsPerRow

	var rows [][]string

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}

		if err != nil {
			return nil, fmt.Errorf("read log row %d: %w", len(rows)+1, err)
		}

		rows = append(rows, row)
	}
}

// Count returns the number of rows in the log.
func (l *CSVLog) Count() (int, error) {
	rows, err := l.ReadAll()
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}
