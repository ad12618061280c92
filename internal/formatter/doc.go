// package formatter converts a setlist to and from its file formats:
// the semicolon CSV used for import/export and the printable views (text, Markdown, HTML).
package formatter
