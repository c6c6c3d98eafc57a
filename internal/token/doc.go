// Package token defines lexical token kinds and trivia for the GUL compiler.
// Invariants:
//   - Token.Text is the exact source lexeme; Token.Span covers it byte for byte.
//   - Indent, Dedent and EOF have empty Text; Newline carries "\n" or "" at EOF.
//   - Annotations (@int, @imp, @python, ...) are single tokens; the '@' is part of Text.
//   - Comments are leading Trivia and never appear in the main stream.
//   - Built-in type names (int, float, str, ...) are identifiers resolved by sema.
package token
