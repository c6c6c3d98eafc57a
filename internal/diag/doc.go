// Package diag defines the diagnostic model shared by every compiler phase.
//
// Phases never abort on user errors. They emit Diagnostic records through a
// Reporter and keep going with a local recovery (placeholder node, fallback
// type, skipped token). The driver collects them in a Bag and decides whether
// later phases run: error severity blocks code generation, warnings never do.
//
// A Diagnostic carries:
//
//   - Severity – Info, Warning or Error.
//   - Code – numeric identifier grouped by phase with a stable string form (LEX1001).
//   - Message – short human text.
//   - Primary – the source.Span the finding points at.
//   - Notes – secondary spans such as "moved here".
//   - Fixes – optional text edits a tool may apply.
//
// Formatting lives in internal/diagfmt; this package does no IO.
package diag
