package generator

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-folio/internal/collections"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/routes"
	"github.com/goliatone/go-folio/internal/site"
)

const maxFeedItems = 100

type feedItem struct {
	Title       string
	Summary     string
	Link        string
	GUID        string
	PublishedAt time.Time
}

// feedItems lists published blog posts newest first, capped at maxFeedItems.
func feedItems(lib *content.Library, resolver *routes.Resolver) ([]feedItem, error) {
	posts := lib.Published(collections.Blog)
	if len(posts) > maxFeedItems {
		posts = posts[:maxFeedItems]
	}
	items := make([]feedItem, 0, len(posts))
	for _, post := range posts {
		link, err := resolver.Entry(post.Collection, post.Slug)
		if err != nil {
			return nil, err
		}
		items = append(items, feedItem{
			Title:       post.Title(),
			Summary:     post.Description(),
			Link:        link,
			GUID:        link,
			PublishedAt: post.Date(),
		})
	}
	return items, nil
}

func buildRSSFeed(reg *site.Registry, baseURL string, items []feedItem, generatedAt time.Time) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(reg.Site.Name)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(baseURLWithFallback(baseURL))))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(reg.Blog.Description)))
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	for _, item := range items {
		pub := item.PublishedAt
		if pub.IsZero() {
			pub = generatedAt
		}
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(item.GUID)))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", pub.UTC().Format(time.RFC1123Z)))
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(item.Summary)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}
