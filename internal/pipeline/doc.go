// Package pipeline holds the HTML stages between a rendered invoice and the
// browser:
//   - CSS injection into the document head
//   - Markdown notes rendered to sanitized HTML via Goldmark
//   - Relative asset references resolved to file:// URLs under a base directory
//
// PDF generation itself lives in the root invoice2pdf package (go-rod).
package pipeline
