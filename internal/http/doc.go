// Package http serves a built site during development.
//
// Routes:
//   - Redirect table sources answer with the rule's status and destination.
//   - /_folio/api/build: GET the last build summary, POST to rebuild.
//   - /_folio/api/redirects: the merged redirect table.
//   - /_folio/api/schemas/{collection}: the JSON Schema of a collection.
//   - Everything else is served from the output directory.
//
// Watcher rebuilds the site when content files change.
package http
