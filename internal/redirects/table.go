// Package redirects maps retired URL paths to their current location.
package redirects

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrDuplicateSource = errors.New("redirects: duplicate source")
	ErrInvalidRule     = errors.New("redirects: invalid rule")
)

// Rule redirects Source to Destination with Status.
type Rule struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Status      int    `json:"status" yaml:"status"`
}

func (r Rule) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Source, validation.Required, validation.By(rootedPath)),
		validation.Field(&r.Destination, validation.Required, validation.By(notSelf(r.Source))),
		validation.Field(&r.Status, validation.Required, validation.In(
			http.StatusMovedPermanently,
			http.StatusFound,
			http.StatusSeeOther,
			http.StatusTemporaryRedirect,
			http.StatusPermanentRedirect,
		)),
	)
}

// rootedPath accepts sources below the site root. "/" itself is the home
// page and ".." segments would write refresh pages outside the output dir.
func rootedPath(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "/") {
		return validation.NewError("validation_redirect_path", "must start with /")
	}
	if strings.Trim(s, "/") == "" {
		return validation.NewError("validation_redirect_root", "must not be the site root")
	}
	for _, segment := range strings.Split(s, "/") {
		if segment == ".." || segment == "." {
			return validation.NewError("validation_redirect_segment", "must not contain . or .. segments")
		}
	}
	return nil
}

func notSelf(source string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != "" && normalize(s) == normalize(source) {
			return validation.NewError("validation_redirect_loop", "must differ from source")
		}
		return nil
	}
}

// Table is an immutable set of rules keyed by source path.
type Table struct {
	rules map[string]Rule
}

// New validates rules and indexes them. Every invalid or duplicate rule is
// reported.
func New(rules ...Rule) (*Table, error) {
	t := &Table{rules: make(map[string]Rule, len(rules))}
	var errs []error
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w %s: %v", ErrInvalidRule, rule.Source, err))
			continue
		}
		key := normalize(rule.Source)
		if _, exists := t.rules[key]; exists {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateSource, rule.Source))
			continue
		}
		t.rules[key] = rule
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return t, nil
}

// Default returns the site's redirects.
func Default() *Table {
	table, err := New(Rule{
		Source:      "/blog/2024/12/02/constraint-solving-in-spreadsheets",
		Destination: "/blog/2025/02/11/constraint-solving-in-spreadsheets",
		Status:      http.StatusMovedPermanently,
	})
	if err != nil {
		panic(err)
	}
	return table
}

// Merge returns a table holding the rules of t and extra. Sources already in
// t are rejected.
func (t *Table) Merge(extra ...Rule) (*Table, error) {
	return New(append(t.Rules(), extra...)...)
}

// Lookup finds the rule for path. A trailing slash is ignored.
func (t *Table) Lookup(path string) (Rule, bool) {
	if t == nil {
		return Rule{}, false
	}
	rule, ok := t.rules[normalize(path)]
	return rule, ok
}

// Len reports the number of rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Rules returns every rule sorted by source.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, 0, len(t.rules))
	for _, rule := range t.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
