package redirects

import (
	"fmt"
	"html/template"
	"path"
	"strings"
)

// RedirectsFile is the rules file static hosts read from the site root.
const RedirectsFile = "_redirects"

// HostFile renders the rules as "source destination status" lines.
func (t *Table) HostFile() []byte {
	var b strings.Builder
	for _, rule := range t.Rules() {
		fmt.Fprintf(&b, "%s %s %d\n", rule.Source, rule.Destination, rule.Status)
	}
	return []byte(b.String())
}

var refreshPage = template.Must(template.New("redirect").Parse(`<!doctype html>
<title>Redirecting to: {{.Destination}}</title>
<meta http-equiv="refresh" content="0;url={{.Destination}}">
<meta name="robots" content="noindex">
<link rel="canonical" href="{{.Canonical}}">
<body>
<a href="{{.Destination}}">Redirecting from <code>{{.Source}}</code> to <code>{{.Destination}}</code></a>
</body>
`))

// Page is an HTML document that sends browsers to a rule's destination, for
// hosts that only serve files.
type Page struct {
	Source string
	Path   string
	Body   []byte
}

// Pages renders one meta-refresh page per rule at <source>/index.html.
// baseURL prefixes the canonical link.
func (t *Table) Pages(baseURL string) ([]Page, error) {
	rules := t.Rules()
	pages := make([]Page, 0, len(rules))
	for _, rule := range rules {
		var b strings.Builder
		err := refreshPage.Execute(&b, map[string]string{
			"Source":      rule.Source,
			"Destination": rule.Destination,
			"Canonical":   strings.TrimRight(baseURL, "/") + rule.Destination,
		})
		if err != nil {
			return nil, fmt.Errorf("redirects: render %s: %w", rule.Source, err)
		}
		pages = append(pages, Page{
			Source: rule.Source,
			Path:   path.Join(strings.TrimPrefix(rule.Source, "/"), "index.html"),
			Body:   []byte(b.String()),
		})
	}
	return pages, nil
}
