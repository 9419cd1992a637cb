package textprep

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "whitelisted latin is identity", in: "Hello world 2024", want: "Hello world 2024"},
		{name: "whitelisted arabic is identity", in: "مرحبا بالعالم", want: "مرحبا بالعالم"},
		{name: "presentation forms kept", in: "ﻻﭐ", want: "ﻻﭐ"},
		{name: "trailing punctuation run", in: "Hello the world!!", want: "Hello the world "},
		{name: "each run becomes one space", in: "a!b??c", want: "a b c"},
		{name: "hashtag and mention", in: "#Libya @user", want: " Libya  user"},
		{name: "arabic diacritics are outside the letter block", in: "مَرحبا", want: "م رحبا"},
		{name: "newlines and tabs", in: "one\ntwo\tthree", want: "one two three"},
		{name: "accented latin", in: "café", want: "caf "},
		{name: "emoji", in: "ok 👍", want: "ok  "},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsSanitized(got))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{"Hello the world!!", "RT @x: http://t.co/abc", "ليبيا!! 2011"}

	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), in)
	}
}

func TestDefaultStopwords(t *testing.T) {
	sw := DefaultStopwords()

	for _, w := range []string{"the", "a", "should've", "couldn't", "ought", "mightn"} {
		assert.True(t, sw.Contains(w), w)
	}

	assert.False(t, sw.Contains("The"), "matching is case-sensitive")
	assert.False(t, sw.Contains("world"))
	assert.Greater(t, sw.Len(), 179)
	assert.Less(t, sw.Len(), 174+179)
}

func TestStopwords_Remove(t *testing.T) {
	sw := DefaultStopwords()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "drops stopwords", in: "Hello the world ", want: "Hello world"},
		{name: "case sensitive", in: "The army and the people", want: "The army people"},
		{name: "exact match only", in: "theory there", want: "theory"},
		{name: "repeated spaces collapse", in: "Tripoli  is   calm", want: "Tripoli calm"},
		{name: "all stopwords", in: "it is the", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sw.Remove(tt.in))
		})
	}
}

func TestStopwords_RemoveIdempotent(t *testing.T) {
	sw := DefaultStopwords()

	for _, in := range []string{"Hello the world ", "we will not go back to the old days", "Haftar forces near Sirte"} {
		once := sw.Remove(in)
		assert.Equal(t, once, sw.Remove(once))
	}
}

func TestLoadStopwords(t *testing.T) {
	t.Run("no extra list", func(t *testing.T) {
		sw, err := LoadStopwords("")
		require.NoError(t, err)
		assert.Equal(t, DefaultStopwords().Len(), sw.Len())
	})

	t.Run("extra list merged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "extra.txt")
		content := strings.Join([]string{"# domain words", "RT", "", "  via  "}, "\n")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		sw, err := LoadStopwords(path)
		require.NoError(t, err)
		assert.True(t, sw.Contains("RT"))
		assert.True(t, sw.Contains("via"))
		assert.False(t, sw.Contains("# domain words"))
		assert.Equal(t, "Haftar Sirte", sw.Remove("RT Haftar via Sirte"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadStopwords(filepath.Join(t.TempDir(), "missing.txt"))
		assert.Error(t, err)
	})
}

func TestNewStopwords(t *testing.T) {
	sw := NewStopwords("b", "a")
	assert.Equal(t, []string{"a", "b"}, sw.Words())
	assert.Equal(t, "c", sw.Remove("a b c"))
}
