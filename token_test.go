package nexus_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/db47h/nexus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenizer(input string, h nexus.Hooks) *nexus.Tokenizer {
	return nexus.NewTokenizer(nexus.NewFile("test", strings.NewReader(input)), h)
}

// tokens reads all tokens from input with req and returns their text. EOL
// tokens are returned as "EOL".
func tokens(t *testing.T, input string, req nexus.Request) []string {
	t.Helper()
	tk := tokenizer(input, nil)
	var res []string
	for {
		tok, err := tk.Next(req)
		require.NoError(t, err)
		if tok.EOF {
			return res
		}
		if tok.EOL {
			res = append(res, "EOL")
			continue
		}
		res = append(res, tok.Text)
	}
}

func TestTokenizer_Next(t *testing.T) {
	data := []struct {
		name  string
		input string
		req   nexus.Request
		res   []string
	}{
		{"words", "BEGIN taxa;", nexus.Request{}, []string{"BEGIN", "taxa", ";"}},
		{"equals", "DATATYPE=DNA", nexus.Request{}, []string{"DATATYPE", "=", "DNA"}},
		{"quoted", `'it''s' 'a b'`, nexus.Request{}, []string{"it's", "a b"}},
		{"doubled_in_word", "it''s", nexus.Request{}, []string{"it's"}},
		{"underscore", "a_b '_c'", nexus.Request{}, []string{"a b", " c"}},
		{"comments", "a [comment [nested]] b[x]c", nexus.Request{}, []string{"a", "b", "c"}},
		{"command_comment", "[&SHOWALL] x", nexus.Request{SaveCommandComments: true}, []string{"&SHOWALL", "x"}},
		{"command_comment_skipped", "[&SHOWALL] x", nexus.Request{}, []string{"x"}},
		{"newline", "a\nb\r\n\nc", nexus.Request{NewlineIsToken: true}, []string{"a", "EOL", "b", "EOL", "EOL", "c"}},
		{"newline_blank", "a\nb", nexus.Request{}, []string{"a", "b"}},
		{"parenthetical", "x(A C)(B)", nexus.Request{Parenthetical: true}, []string{"x", "(A C)", "(B)"}},
		{"no_parenthetical", "(A)", nexus.Request{}, []string{"(", "A", ")"}},
		{"curly", "{A{G}} {T}", nexus.Request{CurlyBracketed: true}, []string{"{A{G}}", "{T}"}},
		{"double_quoted", `"a_b c" d`, nexus.Request{DoubleQuoted: true}, []string{"a b c", "d"}},
		{"no_double_quoted", `"a"`, nexus.Request{}, []string{`"`, "a", `"`}},
		{"single_char", "AC(GT)-", nexus.Request{SingleChar: true, Parenthetical: true}, []string{"A", "C", "(GT)", "-"}},
		{"tilde", "1~3", nexus.Request{}, []string{"1~3"}},
		{"tilde_punct", "1~3", nexus.Request{TildeIsPunctuation: true}, []string{"1", "~", "3"}},
		{"hyphen", "a-b", nexus.Request{}, []string{"a", "-", "b"}},
		{"hyphen_not_punct", "a-b", nexus.Request{HyphenNotPunctuation: true}, []string{"a-b"}},
		{"special", "a.b", nexus.Request{Special: '.'}, []string{"a", ".", "b"}},
		{"latin1", "caf\xe9", nexus.Request{}, []string{"café"}},
	}
	for _, td := range data {
		t.Run(td.name, func(t *testing.T) {
			assert.Equal(t, td.res, tokens(t, td.input, td.req))
		})
	}
}

func TestTokenizer_errors(t *testing.T) {
	data := []struct {
		name  string
		input string
		req   nexus.Request
		pos   string
	}{
		{"comment", "a [abc", nexus.Request{}, "test:1:3"},
		{"quote", "\n'abc", nexus.Request{}, "test:2:1"},
		{"lone_quote", "ab'c", nexus.Request{}, "test:1:3"},
		{"parenthetical", "(abc", nexus.Request{Parenthetical: true}, "test:1:1"},
		{"double_quoted", `"abc`, nexus.Request{DoubleQuoted: true}, "test:1:1"},
		{"nul", "a\x00", nexus.Request{}, "test:1:2"},
	}
	for _, td := range data {
		t.Run(td.name, func(t *testing.T) {
			tk := tokenizer(td.input, nil)
			var err error
			for err == nil {
				var tok nexus.Token
				if tok, err = tk.Next(td.req); tok.EOF {
					break
				}
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, nexus.ErrLex), "got %v", err)
			var e *nexus.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, td.pos, e.Pos.String())
		})
	}
}

func TestTokenizer_positions(t *testing.T) {
	tk := tokenizer("a\r\n  bc [x] d\n'q'", nil)
	want := []struct {
		text      string
		line, col int
	}{
		{"a", 1, 1},
		{"bc", 2, 3},
		{"d", 2, 10},
		{"q", 3, 1},
	}
	for _, w := range want {
		tok, err := tk.Scan()
		require.NoError(t, err)
		assert.Equal(t, w.text, tok.Text)
		assert.Equal(t, w.line, tok.Pos.Line, "line of %s", w.text)
		assert.Equal(t, w.col, tok.Pos.Column, "column of %s", w.text)
	}
	tok, err := tk.Scan()
	require.NoError(t, err)
	assert.True(t, tok.EOF)
	assert.Equal(t, "end of file", tok.String())
}

func TestTokenizer_outputComment(t *testing.T) {
	var h recorder
	tk := tokenizer("[!hello [world]] x [!]", &h)
	tok, err := tk.Scan()
	require.NoError(t, err)
	assert.Equal(t, "x", tok.Text)
	tok, err = tk.Scan()
	require.NoError(t, err)
	assert.True(t, tok.EOF)
	assert.Equal(t, []string{"comment hello [world]", "comment "}, h.events)
}

func TestTokenizer_helpers(t *testing.T) {
	tk := tokenizer("BEGIN 12 x ; ; a b", nil)
	_, err := tk.Expect("begin", "at start")
	assert.NoError(t, err)
	_, n, err := tk.ReadInt("count")
	assert.NoError(t, err)
	assert.Equal(t, 12, n)

	r, err := tk.PeekRune(false)
	assert.NoError(t, err)
	assert.Equal(t, 'x', r)
	_, _, err = tk.ReadInt("count")
	assert.True(t, errors.Is(err, nexus.ErrSyntax), "got %v", err)

	_, err = tk.Expect(";", "after count")
	assert.NoError(t, err)
	_, err = tk.Expect("a", "after semicolon")
	assert.True(t, errors.Is(err, nexus.ErrSyntax), "got %v", err)

	tok, err := tk.Scan()
	require.NoError(t, err)
	tk.Unread(tok)
	r, err = tk.PeekRune(false)
	assert.NoError(t, err)
	assert.Equal(t, 'a', r)
	tok, err = tk.Scan()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Text)

	assert.True(t, errors.Is(tk.SkipToSemicolon(), nexus.ErrUnexpectedEOF))
	_, _, err = tk.ReadInt("count")
	assert.True(t, errors.Is(err, nexus.ErrUnexpectedEOF))
}

func TestTokenizer_PeekRune(t *testing.T) {
	tk := tokenizer(" [c]\n : 3", nil)
	r, err := tk.PeekRune(true)
	require.NoError(t, err)
	assert.Equal(t, '\n', r)
	tok, err := tk.Next(nexus.Request{NewlineIsToken: true})
	require.NoError(t, err)
	assert.True(t, tok.EOL)
	r, err = tk.PeekRune(false)
	require.NoError(t, err)
	assert.Equal(t, ':', r)
	tok, err = tk.Scan()
	require.NoError(t, err)
	assert.True(t, tok.IsPunct(':'))
	assert.True(t, errors.Is(tk.SkipToSemicolon(), nexus.ErrUnexpectedEOF))
}

func TestToken(t *testing.T) {
	tok := nexus.Token{Text: "dim"}
	assert.True(t, tok.Abbreviation("DIMensions"))
	assert.True(t, tok.Begins("dimensions"))
	assert.True(t, tok.Equals("DIM"))
	assert.False(t, tok.Is("DIM"))
	assert.False(t, nexus.Token{Text: "di"}.Abbreviation("DIMensions"))
	assert.False(t, nexus.Token{Text: "dimensionsx"}.Abbreviation("DIMensions"))
	assert.False(t, nexus.Token{}.Begins("x"))

	assert.Equal(t, "ab", nexus.Token{Text: "a \tb\n"}.StripWhitespace())
	assert.Equal(t, "a_b", nexus.Token{Text: "a b"}.BlanksToUnderscores())
	assert.True(t, nexus.Token{Text: "-", Punct: true}.IsPlusMinus())
	assert.False(t, nexus.Token{Text: "-"}.IsPlusMinus())
	assert.True(t, nexus.Token{Text: " "}.IsWhitespace())
	assert.Equal(t, `"x"`, nexus.Token{Text: "x"}.String())
	assert.Equal(t, "end of line", nexus.Token{Text: "\n", EOL: true}.String())

	assert.Equal(t, "fish", nexus.Quote("fish"))
	assert.Equal(t, "'the snake'", nexus.Quote("the snake"))
	assert.Equal(t, "'it''s'", nexus.Quote("it's"))
	assert.Equal(t, "'a_b'", nexus.Quote("a_b"))
	assert.Equal(t, "''", nexus.Quote(""))

	assert.True(t, nexus.EqualFold("Dna", "DNA"))
	assert.False(t, nexus.EqualFold("RNA", "DNA"))
	assert.True(t, nexus.Request{}.IsPunct(';'))
	assert.False(t, nexus.Request{}.IsPunct('~'))
	assert.False(t, nexus.Request{HyphenNotPunctuation: true}.IsPunct('-'))
}
