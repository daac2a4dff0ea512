// Package pipeline implements the CSV-to-HTML section compiler.
//
// The stages run strictly one way, each a pure function of its input:
//   - Tokenize: raw delimited text to rows of fields
//   - Classify: rows to ordered sections, driven by Rules
//   - RenderSection: one section to an HTML fragment, by layout
//   - Compose: fragments to a fragment list or a standalone document
//
// Output helpers used only by the PDF and preview paths (image path
// rewriting, sanitizing) live here too, but never run as part of Compose.
package pipeline
