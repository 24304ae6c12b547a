package site

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Registry is the read-only set of values templates render.
type Registry struct {
	Site     Site
	Home     Metadata
	Blog     Metadata
	Work     Metadata
	Projects Metadata
	Talks    Metadata
	socials  []Social
}

// New builds a registry; socials keep their order.
func New(s Site, home, blog, work, projects, talks Metadata, socials ...Social) *Registry {
	return &Registry{
		Site:     s,
		Home:     home,
		Blog:     blog,
		Work:     work,
		Projects: projects,
		Talks:    talks,
		socials:  append([]Social(nil), socials...),
	}
}

// Default returns the published site's values.
func Default() *Registry {
	return New(
		Site{
			Name:                  "Brian Schiller",
			Email:                 "bgschiller@gmail.com",
			URL:                   DefaultURL,
			NumPostsOnHomepage:    3,
			NumWorksOnHomepage:    1,
			NumProjectsOnHomepage: 3,
			NumTalksOnHomepage:    3,
		},
		Metadata{Title: "Home", Description: "Projects, notes, and articles from my work as a Software Engineer."},
		Metadata{Title: "Blog", Description: "A collection of articles on topics I am passionate about."},
		Metadata{Title: "Work", Description: "Where I have worked and what I have done."},
		Metadata{Title: "Projects", Description: "A collection of my projects, with links to repositories and demos."},
		Metadata{Title: "Talks", Description: "Slides and recordings of talks I have given."},
		Social{Name: "github", Href: "https://github.com/bgschiller"},
		Social{Name: "linkedin", Href: "https://www.linkedin.com/in/bgschiller"},
	)
}

// Socials returns the social links in display order.
func (r *Registry) Socials() []Social {
	return append([]Social(nil), r.socials...)
}

// Section returns the header of a section by name, case-insensitively.
func (r *Registry) Section(name string) (Metadata, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SectionHome:
		return r.Home, nil
	case SectionBlog:
		return r.Blog, nil
	case SectionWork:
		return r.Work, nil
	case SectionProjects:
		return r.Projects, nil
	case SectionTalks:
		return r.Talks, nil
	default:
		return Metadata{}, fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
}

// HomepageCount returns how many entries of a collection the homepage lists.
func (r *Registry) HomepageCount(collection string) int {
	switch collection {
	case SectionBlog:
		return r.Site.NumPostsOnHomepage
	case SectionWork:
		return r.Site.NumWorksOnHomepage
	case SectionProjects:
		return r.Site.NumProjectsOnHomepage
	case SectionTalks:
		return r.Site.NumTalksOnHomepage
	default:
		return 0
	}
}

// Overrides replaces parts of a registry, usually from the config file. Zero
// values keep the current setting.
type Overrides struct {
	Name    string
	Email   string
	URL     string
	Socials []Social
}

// With returns a copy of the registry with overrides applied.
func (r *Registry) With(o Overrides) *Registry {
	clone := *r
	clone.socials = r.Socials()
	if o.Name != "" {
		clone.Site.Name = o.Name
	}
	if o.Email != "" {
		clone.Site.Email = o.Email
	}
	if o.URL != "" {
		clone.Site.URL = strings.TrimRight(o.URL, "/")
	}
	if len(o.Socials) > 0 {
		clone.socials = append([]Social(nil), o.Socials...)
	}
	return &clone
}

// Validate checks every value of the registry.
func (r *Registry) Validate() error {
	errs := validation.Errors{}
	if err := r.Site.Validate(); err != nil {
		errs["site"] = err
	}
	sections := map[string]Metadata{
		SectionHome:     r.Home,
		SectionBlog:     r.Blog,
		SectionWork:     r.Work,
		SectionProjects: r.Projects,
		SectionTalks:    r.Talks,
	}
	for name, meta := range sections {
		if err := meta.Validate(); err != nil {
			errs[name] = err
		}
	}
	seen := make(map[string]struct{}, len(r.socials))
	for i, social := range r.socials {
		key := fmt.Sprintf("socials.%d", i)
		if err := social.Validate(); err != nil {
			errs[key] = err
			continue
		}
		if _, dup := seen[social.Name]; dup {
			errs[key] = validation.NewError("validation_social_duplicate", "duplicate social "+social.Name)
		}
		seen[social.Name] = struct{}{}
	}
	return errs.Filter()
}
