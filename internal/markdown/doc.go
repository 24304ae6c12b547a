// Package markdown discovers content files, splits their front matter from
// the Markdown body and renders bodies to HTML with goldmark.
package markdown
