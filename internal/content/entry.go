// Package content loads content documents, validates them against their
// collection schema and serves them back in publication order.
package content

import (
	"time"

	"github.com/goliatone/go-folio/internal/collections"
)

// Entry is a validated content document.
type Entry struct {
	Collection   string
	ID           string
	Slug         string
	FilePath     string
	Record       collections.Record
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
}

// Date is the entry's sort date: dateStart for work, date elsewhere.
func (e *Entry) Date() time.Time {
	if e.Collection == collections.Work {
		return e.Record.Time("dateStart")
	}
	return e.Record.Time("date")
}

// Draft reports whether the entry is hidden from published views.
func (e *Entry) Draft() bool {
	return e.Record.Bool("draft")
}

// Title is the display title; work entries use the company name.
func (e *Entry) Title() string {
	if e.Collection == collections.Work {
		return e.Record.String("company")
	}
	return e.Record.String("title")
}

// Description is the short summary shown in listings, if any.
func (e *Entry) Description() string {
	switch e.Collection {
	case collections.Blog:
		return e.Record.String("description")
	case collections.Projects:
		return e.Record.String("summary")
	case collections.Work:
		return e.Record.String("role")
	default:
		return ""
	}
}

func (e *Entry) BlogPost() (collections.BlogPost, error) {
	return collections.DecodeBlogPost(e.Record)
}

func (e *Entry) WorkEntry() (collections.WorkEntry, error) {
	return collections.DecodeWorkEntry(e.Record)
}

func (e *Entry) Project() (collections.Project, error) {
	return collections.DecodeProject(e.Record)
}

func (e *Entry) Talk() (collections.Talk, error) {
	return collections.DecodeTalk(e.Record)
}
