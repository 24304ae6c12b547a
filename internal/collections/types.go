package collections

import (
	"fmt"
	"time"
)

// BlogPost is a validated blog entry.
type BlogPost struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Draft       bool      `json:"draft"`
}

// WorkEntry is a validated work history entry.
type WorkEntry struct {
	Company   string      `json:"company"`
	Role      string      `json:"role"`
	DateStart time.Time   `json:"dateStart"`
	DateEnd   DateOrLabel `json:"dateEnd"`
}

// Project is a validated project entry. Summary is empty when omitted.
type Project struct {
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Draft   bool      `json:"draft"`
	RepoURL string    `json:"repoURL"`
	Summary string    `json:"summary,omitempty"`
}

// Talk is a validated talk entry.
type Talk struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	URL   string    `json:"url"`
}

func expect(record Record, collection string) error {
	if record.IsZero() || record.Collection() != collection {
		return fmt.Errorf("%w: want %s, got %q", ErrNotValidated, collection, record.Collection())
	}
	return nil
}

func DecodeBlogPost(record Record) (BlogPost, error) {
	if err := expect(record, Blog); err != nil {
		return BlogPost{}, err
	}
	return BlogPost{
		Title:       record.String("title"),
		Description: record.String("description"),
		Date:        record.Time("date"),
		Draft:       record.Bool("draft"),
	}, nil
}

func DecodeWorkEntry(record Record) (WorkEntry, error) {
	if err := expect(record, Work); err != nil {
		return WorkEntry{}, err
	}
	return WorkEntry{
		Company:   record.String("company"),
		Role:      record.String("role"),
		DateStart: record.Time("dateStart"),
		DateEnd:   record.DateOrLabel("dateEnd"),
	}, nil
}

func DecodeProject(record Record) (Project, error) {
	if err := expect(record, Projects); err != nil {
		return Project{}, err
	}
	return Project{
		Title:   record.String("title"),
		Date:    record.Time("date"),
		Draft:   record.Bool("draft"),
		RepoURL: record.String("repoURL"),
		Summary: record.String("summary"),
	}, nil
}

func DecodeTalk(record Record) (Talk, error) {
	if err := expect(record, Talks); err != nil {
		return Talk{}, err
	}
	return Talk{
		Title: record.String("title"),
		Date:  record.Time("date"),
		URL:   record.String("url"),
	}, nil
}
