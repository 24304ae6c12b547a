// Package site holds the static metadata templates read while rendering:
// the site owner, homepage counts, section headers and social links.
package site

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// DefaultURL is the canonical origin of the published site.
const DefaultURL = "https://brianschiller.com"

// Section names accepted by Registry.Section.
const (
	SectionHome     = "home"
	SectionBlog     = "blog"
	SectionWork     = "work"
	SectionProjects = "projects"
	SectionTalks    = "talks"
)

var ErrUnknownSection = errors.New("site: unknown section")

// Site describes the owner and how many entries of each collection the
// homepage shows.
type Site struct {
	Name                  string `json:"name" yaml:"name"`
	Email                 string `json:"email" yaml:"email"`
	URL                   string `json:"url" yaml:"url"`
	NumPostsOnHomepage    int    `json:"num_posts_on_homepage" yaml:"num_posts_on_homepage"`
	NumWorksOnHomepage    int    `json:"num_works_on_homepage" yaml:"num_works_on_homepage"`
	NumProjectsOnHomepage int    `json:"num_projects_on_homepage" yaml:"num_projects_on_homepage"`
	NumTalksOnHomepage    int    `json:"num_talks_on_homepage" yaml:"num_talks_on_homepage"`
}

// Validate checks the contact address, the origin and the counts.
func (s Site) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Email, validation.Required, is.EmailFormat),
		validation.Field(&s.URL, validation.Required, is.URL),
		validation.Field(&s.NumPostsOnHomepage, validation.Min(0)),
		validation.Field(&s.NumWorksOnHomepage, validation.Min(0)),
		validation.Field(&s.NumProjectsOnHomepage, validation.Min(0)),
		validation.Field(&s.NumTalksOnHomepage, validation.Min(0)),
	)
}

// Metadata is the header of a section page.
type Metadata struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

func (m Metadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
	)
}

// Social is a profile link shown in the footer.
type Social struct {
	Name string `json:"name" yaml:"name"`
	Href string `json:"href" yaml:"href"`
}

func (s Social) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Href, validation.Required, is.URL, validation.By(absoluteURL)),
	)
}

func absoluteURL(value any) error {
	href, _ := value.(string)
	if href == "" || strings.HasPrefix(href, "https://") || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "mailto:") {
		return nil
	}
	return validation.NewError("validation_url_absolute", "must be an absolute URL")
}
