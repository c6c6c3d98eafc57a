package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gul/internal/source"
	"gul/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// FormatTokensPretty prints one token per line with its position. Layout
// tokens print without text.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var b strings.Builder
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		fmt.Fprintf(&b, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" && tok.Kind != token.Newline {
			fmt.Fprintf(&b, " %q", tok.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if leading := triviaKinds(tok); len(leading) > 0 {
			fmt.Fprintf(&b, " (leading: %s)", strings.Join(leading, ", "))
		}
		b.WriteByte('\n')
		if tok.Kind == token.EOF {
			break
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatTokensJSON writes the tokens as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: triviaKinds(tok),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func triviaKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	out := make([]string, 0, len(tok.Leading))
	for _, trivia := range tok.Leading {
		out = append(out, trivia.Kind.String())
	}
	return out
}
