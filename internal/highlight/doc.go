// Package highlight tokenizes and highlights source code snippets.
// It uses the Chroma library to do this work.
//
// Snippets are represented as [Code] values,
// which are comprised of multiple [Span]s.
// A [Highlighter] renders Code into HTML,
// and a [TerminalHighlighter] renders it for a terminal.
package highlight
