// Package format renders sync reports and type diagnostics for the terminal.
//
// Output is styled with lipgloss when styling is enabled (the sync.format_messages
// setting) and plain otherwise, which keeps logs and piped output readable.
package format
