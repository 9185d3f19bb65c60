package normalize

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "The DOG", want: "the dog"},
		{name: "strips punctuation", input: "Hello, world!", want: "hello world"},
		{name: "keeps apostrophes", input: "Don't stop", want: "don't stop"},
		{name: "keeps digits", input: "Book 2 of 3.", want: "book 2 of 3"},
		{name: "decomposes accents", input: "Café Noël", want: "cafe noel"},
		{name: "drops non-ascii", input: "dark — night", want: "dark  night"},
		{name: "curly quotes removed", input: "“Run,” she said", want: "run she said"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestClean_OnlyAllowedCharacters(t *testing.T) {
	inputs := []string{
		"The Dog Runs. The Cat Sleeps.",
		"ÀÉÎÕÜ ß ﬁ ½ ™ ℡",
		"Tabs\tand\nnewlines\r\n",
		"emoji 🐉 dragons!!! #1 (bestseller) $9.99",
		"日本語のテキスト",
		"Ｆｕｌｌｗｉｄｔｈ",
		"'quoted' \"double\" `back`",
	}

	for _, in := range inputs {
		for _, r := range Clean(in) {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '\'' || unicode.IsSpace(r)
			assert.True(t, ok, "Clean(%q) contains %q", in, r)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses whitespace", input: "  the   dog\truns ", want: "the dog runs"},
		{name: "keeps contractions", input: "don't you're", want: "don't you're"},
		{name: "drops surrounding quotes", input: "'hello' world's", want: "hello world's"},
		{name: "splits punctuation", input: "end. start, middle!", want: "end start middle"},
		{name: "keeps decimals", input: "pi is 3.14", want: "pi is 3.14"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenize_NeverGrows(t *testing.T) {
	inputs := []string{
		"'hello'",
		"a , b , c",
		"The Dog Runs. The Cat Sleeps.",
		"  spaced   out  ",
		"日本語のテキスト",
		"x'y 'z' ''",
		"",
	}

	for _, in := range inputs {
		rejoined := strings.Join(Tokens(in), " ")
		assert.LessOrEqual(t, utf8.RuneCountInString(rejoined), utf8.RuneCountInString(strings.TrimSpace(in)), "input %q", in)
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "run jump cat", Stem("running jumps cats"))
	assert.Equal(t, "", Stem(""))
	assert.Equal(t, "connect connect", Stem("connected  connection"))
}

func TestLemmatizer(t *testing.T) {
	l, err := NewLemmatizer()
	require.NoError(t, err)

	assert.Equal(t, "dog", l.Lemma("dogs"))
	assert.Equal(t, "xyzzyplugh", l.Lemma("xyzzyplugh"))
	assert.Equal(t, "", l.Lemmatize("   "))
	assert.Len(t, strings.Fields(l.Lemmatize("the dogs ran home")), 4)
}

func TestStopwords(t *testing.T) {
	sw := NewStopwords(nil, nil)
	assert.True(t, sw.Contains("the"))
	assert.True(t, sw.Contains("and"))
	assert.False(t, sw.Contains("dragon"))

	assert.Equal(t, "dog runs", sw.Remove("the dog runs"))
	assert.Equal(t, 1, sw.Count("the dog runs"))
}

func TestStopwords_ExtraAndExclude(t *testing.T) {
	sw := NewStopwords([]string{"book", "novel"}, []string{"not", "never-listed"})
	assert.True(t, sw.Contains("book"))
	assert.False(t, sw.Contains("not"))
	assert.Equal(t, NewStopwords(nil, nil).Len()+2-1, sw.Len())

	assert.Equal(t, "not good", RemoveStopwords("this book is not good", []string{"book"}, []string{"not"}))
}

func TestRemoveStopwords_Idempotent(t *testing.T) {
	inputs := []string{
		"the dog and the cat sleep in the house",
		"a an the",
		"",
		"dragons hoard gold",
	}

	for _, in := range inputs {
		once := RemoveStopwords(in, []string{"gold"}, nil)
		twice := RemoveStopwords(once, []string{"gold"}, nil)
		assert.Equal(t, once, twice)
	}
}

func TestPipeline_Prepare(t *testing.T) {
	p, err := New(Options{})
	require.NoError(t, err)

	v := p.Prepare("The Dogs Were Running. The Cat Sleeps!")
	assert.Equal(t, "The Dogs Were Running. The Cat Sleeps!", v.Original)
	assert.Equal(t, "dogs running cat sleeps", v.Clean)
	assert.Equal(t, "dog run cat sleep", v.Stemmed)
	assert.NotContains(t, strings.Fields(v.Lemmatized), "the")
	assert.Contains(t, strings.Fields(v.Lemmatized), "cat")
	assert.Equal(t, "the dogs were running the cat sleeps", p.Base("The Dogs Were Running. The Cat Sleeps!"))
}

func TestPipeline_EmptyBlurb(t *testing.T) {
	p, err := New(Options{})
	require.NoError(t, err)

	v := p.Prepare("")
	assert.Empty(t, v.Clean)
	assert.Empty(t, v.Stemmed)
	assert.Empty(t, v.Lemmatized)
}
