package syntax

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/highlight/pkg/types"
)

func monokai() types.Theme {
	return types.Theme{ID: "monokai", Name: "monokai", Definition: styles.Get("monokai")}
}

func joinSpans(spans []types.StyleSpan) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

func begin(t *testing.T, db *Database, g types.GrammarRef, input string) types.RenderState {
	t.Helper()
	st, err := db.Begin(g, input)
	require.NoError(t, err)
	return st
}

// feed tokenizes lines in order as one document, threading the state
func feed(t *testing.T, db *Database, g types.GrammarRef, lines ...string) ([][]types.StyleSpan, types.RenderState) {
	t.Helper()
	st := begin(t, db, g, strings.Join(lines, ""))
	var out [][]types.StyleSpan
	for _, line := range lines {
		spans, next, err := db.TokenizeLine(g, line, monokai(), st)
		require.NoError(t, err)
		out = append(out, spans)
		st = next
	}
	return out, st
}

// styleAt returns the style of the byte at offset in the joined spans
func styleAt(spans []types.StyleSpan, offset int) types.Style {
	for _, s := range spans {
		if offset < len(s.Text) {
			return s.Style
		}
		offset -= len(s.Text)
	}
	return types.Style{}
}

func TestTokenizeLinePreservesText(t *testing.T) {
	db := New()
	g, ok := db.FindByName("go")
	require.True(t, ok)

	lines := []string{
		"package main\n",
		"\n",
		"func main() { println(\"héllo, 世界\") }\n",
		"// trailing",
	}
	spans, _ := feed(t, db, g, lines...)
	for i, line := range lines {
		assert.Equal(t, line, joinSpans(spans[i]), "line %d", i)
	}
}

func TestTokenizeLineStyles(t *testing.T) {
	db := New()
	g, ok := db.FindByName("go")
	require.True(t, ok)

	spans, _, err := db.TokenizeLine(g, "package main\n", monokai(), begin(t, db, g, "package main\n"))
	require.NoError(t, err)
	require.NotEmpty(t, spans)

	assert.Equal(t, "package", spans[0].Text)
	assert.Equal(t, types.NewRGB(0xf9, 0x26, 0x72), spans[0].Style.Foreground)
	for _, s := range spans {
		assert.False(t, s.Style.Background.Set, "document background must not leak into %q", s.Text)
	}
}

func TestTokenizeLineCarriesState(t *testing.T) {
	db := New()
	g, ok := db.FindByName("python")
	require.True(t, ok)

	lines := []string{
		"x = \"\"\"\n",
		"def not_code\n",
		"\"\"\"\n",
		"y = 1\n",
	}
	spans, _ := feed(t, db, g, lines...)

	// Inside the string the line is a single string-coloured span
	str := convertEntry(styles.Get("monokai"), chroma.LiteralStringDouble)
	require.Len(t, spans[1], 1)
	assert.Equal(t, "def not_code\n", spans[1][0].Text)
	assert.Equal(t, str, spans[1][0].Style)

	// On its own the same line starts with a keyword
	alone, _, err := db.TokenizeLine(g, lines[1], monokai(), begin(t, db, g, lines[1]))
	require.NoError(t, err)
	assert.NotEqual(t, spans[1], alone)
}

func TestTokenizeLineBlockComments(t *testing.T) {
	comment := convertEntry(styles.Get("monokai"), chroma.CommentMultiline)

	tests := []struct {
		name     string
		grammar  string
		lines    []string
		comments int
	}{
		{
			name:     "go",
			grammar:  "go",
			lines:    []string{"/* start\n", "x := 1\n", "*/\n", "var y = 2\n"},
			comments: 3,
		},
		{
			name:     "c",
			grammar:  "c",
			lines:    []string{"/* start\n", "int x = 1;\n", "*/\n", "int y = 2;\n"},
			comments: 3,
		},
		{
			name:     "javascript",
			grammar:  "javascript",
			lines:    []string{"/* a\n", " b */\n", "let y = 2;\n"},
			comments: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := New()
			g, ok := db.FindByName(tt.grammar)
			require.True(t, ok)

			spans, _ := feed(t, db, g, tt.lines...)
			for i, line := range tt.lines[:tt.comments] {
				assert.Equal(t, line, joinSpans(spans[i]))
				end := len(line) - 1
				if n := strings.Index(line, "*/"); n >= 0 {
					end = n + 2
				}
				for offset := 0; offset < end; offset++ {
					require.Equal(t, comment, styleAt(spans[i], offset), "line %d byte %d of %q", i, offset, line)
				}
			}

			after := spans[tt.comments]
			assert.Equal(t, tt.lines[tt.comments], joinSpans(after))
			assert.NotEqual(t, comment, styleAt(after, 0), "code after the comment must not be a comment")
		})
	}
}

func TestTokenizeLineOutsideInput(t *testing.T) {
	db := New()
	g, ok := db.FindByName("go")
	require.True(t, ok)

	st := begin(t, db, g, "/* open\n*/\n")
	spans, next, err := db.TokenizeLine(g, "package main\n", monokai(), st)
	require.NoError(t, err)
	assert.Equal(t, "package main\n", joinSpans(spans))
	assert.Equal(t, types.NewRGB(0xf9, 0x26, 0x72), spans[0].Style.Foreground)
	assert.Same(t, st, next)

	// The stream is still there for the lines of the input
	spans, _, err = db.TokenizeLine(g, "/* open\n", monokai(), next)
	require.NoError(t, err)
	assert.Equal(t, convertEntry(styles.Get("monokai"), chroma.CommentMultiline), styleAt(spans, 0))
}

func TestTokenizeLineDoesNotMutateState(t *testing.T) {
	db := New()
	g, ok := db.FindByName("go")
	require.True(t, ok)

	st := begin(t, db, g, "/* a\nb */\n")
	first, _, err := db.TokenizeLine(g, "/* a\n", monokai(), st)
	require.NoError(t, err)
	second, _, err := db.TokenizeLine(g, "/* a\n", monokai(), st)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTokenizeLinePlainText(t *testing.T) {
	db := New()
	plain := db.PlainText()
	st := begin(t, db, plain, "if (x) { return }\n")

	spans, next, err := db.TokenizeLine(plain, "if (x) { return }\n", monokai(), st)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, "if (x) { return }\n", spans[0].Text)
	assert.True(t, spans[0].Style.IsZero())
	assert.Equal(t, st, next)
}

func TestTokenizeLineFallbackStyle(t *testing.T) {
	db := New()
	g, ok := db.FindByName("go")
	require.True(t, ok)

	spans, _, err := db.TokenizeLine(g, "package main", types.Theme{ID: "none"}, begin(t, db, g, "package main"))
	require.NoError(t, err)
	assert.Equal(t, "package main", joinSpans(spans))
}

func TestConvertEntry(t *testing.T) {
	style := styles.Get("monokai")

	text := convertEntry(style, chroma.Text)
	assert.Equal(t, types.NewRGB(0xf8, 0xf8, 0xf2), text.Foreground)
	assert.False(t, text.Background.Set)

	// A token with its own background keeps it
	errStyle := convertEntry(style, chroma.Error)
	assert.Equal(t, types.NewRGB(0x96, 0x00, 0x50), errStyle.Foreground)
	assert.Equal(t, types.NewRGB(0x1e, 0x00, 0x10), errStyle.Background)

	emph := convertEntry(style, chroma.GenericEmph)
	assert.True(t, emph.Italic)
	strong := convertEntry(style, chroma.GenericStrong)
	assert.True(t, strong.Bold)
}

func TestStateTake(t *testing.T) {
	st := &state{tokens: []chroma.Token{
		{Type: chroma.Keyword, Value: "abc"},
		{Type: chroma.Text, Value: "de\nfg"},
		{Type: chroma.Name, Value: "hi"},
	}}

	got, next := st.take(6)
	assert.Equal(t, []chroma.Token{
		{Type: chroma.Keyword, Value: "abc"},
		{Type: chroma.Text, Value: "de\n"},
	}, got)
	assert.Equal(t, 3, next.skip)

	got, last := next.take(10)
	assert.Equal(t, []chroma.Token{
		{Type: chroma.Text, Value: "fg"},
		{Type: chroma.Name, Value: "hi"},
	}, got)
	assert.Empty(t, last.tokens)

	// Taking from a state leaves it as it was
	again, _ := next.take(2)
	assert.Equal(t, []chroma.Token{{Type: chroma.Text, Value: "fg"}}, again)

	none, empty := (*state)(nil).take(4)
	assert.Empty(t, none)
	assert.Empty(t, empty.tokens)
}
