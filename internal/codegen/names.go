package codegen

import (
	"fmt"
	"strings"
)

var rustKeywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "crate": true, "else": true,
	"enum": true, "extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true, "mod": true,
	"move": true, "mut": true, "pub": true, "ref": true, "return": true, "static": true,
	"struct": true, "super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true, "async": true, "await": true, "dyn": true,
	"abstract": true, "become": true, "box": true, "do": true, "final": true, "macro": true,
	"override": true, "priv": true, "typeof": true, "unsized": true, "virtual": true,
	"yield": true, "try": true, "gen": true,
}

// rustIdent escapes names that collide with Rust keywords.
func rustIdent(name string) string {
	switch name {
	case "self":
		return name
	case "crate", "super", "Self":
		return name + "_"
	}
	if rustKeywords[name] {
		return "r#" + name
	}
	return name
}

// rustQuote renders s as a Rust string literal.
func rustQuote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u{%x}`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// rawString fences body in a raw string literal with enough hashes that no
// sequence inside it terminates the literal early.
func rawString(body string) string {
	hashes := 1
	for strings.Contains(body, "\""+strings.Repeat("#", hashes)) {
		hashes++
	}
	fence := strings.Repeat("#", hashes)
	return "r" + fence + "\"" + body + "\"" + fence
}

// intLiteral normalizes an integer lexeme for Rust.
func intLiteral(raw string) string {
	if len(raw) > 2 && raw[0] == '0' {
		switch raw[1] {
		case 'B', 'O', 'X':
			return "0" + strings.ToLower(raw[1:2]) + raw[2:]
		}
	}
	return raw
}

// floatLiteral makes sure the lexeme has digits on both sides of the dot.
func floatLiteral(raw string) string {
	if strings.HasPrefix(raw, ".") {
		raw = "0" + raw
	}
	if i := strings.IndexByte(raw, '.'); i >= 0 && (i == len(raw)-1 || !isDigit(raw[i+1])) {
		raw = raw[:i+1] + "0" + raw[i+1:]
	}
	if !strings.ContainsAny(raw, ".eE") {
		raw += ".0"
	}
	return raw
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
