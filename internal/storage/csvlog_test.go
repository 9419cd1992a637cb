package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/tweet-classifier/internal/core/domain"
)

func newTestLog(t *testing.T) *CSVLog {
	t.Helper()

	logger := zerolog.Nop()

	return NewCSVLog(filepath.Join(t.TempDir(), "outputs", "classifiedTweets.csv"), &logger)
}

func TestRow(t *testing.T) {
	english := domain.ClassificationResult{
		ClassifiedTweet: domain.StringPtr("Hello world"),
		Language:        domain.StringPtr("en"),
		Relevance:       1,
	}
	assert.Equal(t, []string{"", "Hello world", "en", "1", "0", "0"}, Row(english))

	arabic := domain.ClassificationResult{
		OriginalTweet:   domain.StringPtr("مرحبا"),
		ClassifiedTweet: domain.StringPtr("Hello"),
		Language:        domain.StringPtr("ar"),
	}
	assert.Equal(t, []string{"مرحبا", "Hello", "ar", "0", "0", "0"}, Row(arabic))
}

func TestEncodeRow(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{name: "plain", fields: []string{"", "Hello world", "en", "1", "0", "0"}, want: ",Hello world,en,1,0,0\n"},
		{name: "leading space stays unquoted", fields: []string{"", " Libya  user", "en", "0", "0", "0"}, want: ", Libya  user,en,0,0,0\n"},
		{name: "comma quoted", fields: []string{"a,b", "c"}, want: "\"a,b\",c\n"},
		{name: "quote doubled", fields: []string{`say "hi"`}, want: "\"say \"\"hi\"\"\"\n"},
		{name: "newline quoted", fields: []string{"one\ntwo"}, want: "\"one\ntwo\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeRow(tt.fields))
		})
	}
}

func TestCSVLog_AppendLeadingSpace(t *testing.T) {
	l := newTestLog(t)

	require.NoError(t, l.Append(context.Background(), domain.ClassificationResult{
		ClassifiedTweet: domain.StringPtr(" Libya  user"),
		Language:        domain.StringPtr("en"),
	}))

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Equal(t, ", Libya  user,en,0,0,0\n", string(data))

	rows, err := l.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, " Libya  user", rows[0][1])
}

func TestCSVLog_Append(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	n, err := l.Count()
	require.NoError(t, err)
	assert.Zero(t, n, "missing file has no rows")

	require.NoError(t, l.Append(ctx, domain.ClassificationResult{
		ClassifiedTweet: domain.StringPtr("Hello, world"),
		Language:        domain.StringPtr("en"),
		Relevance:       1,
	}))
	require.NoError(t, l.Append(ctx, domain.ClassificationResult{
		OriginalTweet:   domain.StringPtr("مرحبا بالعالم"),
		ClassifiedTweet: domain.StringPtr("Hello world"),
		Language:        domain.StringPtr("ar"),
	}))

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.True(t, utf8.Valid(data))
	assert.Equal(t, ",\"Hello, world\",en,1,0,0\nمرحبا بالعالم,Hello world,ar,0,0,0\n", string(data))

	rows, err := l.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Hello, world", rows[0][1])
}

func TestCSVLog_ConcurrentAppends(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	const writers, perWriter = 8, 25

	var wg sync.WaitGroup

	for w := range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range perWriter {
				text := fmt.Sprintf("writer %d row %d %s", w, i, strings.Repeat("x", 512))
				assert.NoError(t, l.Append(ctx, domain.ClassificationResult{
					ClassifiedTweet: domain.StringPtr(text),
					Language:        domain.StringPtr("en"),
				}))
			}
		}()
	}

	wg.Wait()

	rows, err := l.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, writers*perWriter)

	for _, row := range rows {
		assert.Len(t, row, FieldsPerRow)
	}
}

func TestCSVLog_CanceledContext(t *testing.T) {
	l := newTestLog(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Append(ctx, domain.ClassificationResult{}), context.Canceled)

	n, err := l.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCSVLog_Check(t *testing.T) {
	l := newTestLog(t)
	require.NoError(t, l.Check(context.Background()))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	logger := zerolog.Nop()
	bad := NewCSVLog(filepath.Join(blocker, "log.csv"), &logger)
	assert.Error(t, bad.Check(context.Background()))
}
