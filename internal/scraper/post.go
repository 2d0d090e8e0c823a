// Shared post shape and the collector contract
// Every content surface collector produces []Post

package scraper

import (
	"context"

	"github.com/playwright-community/playwright-go"
)

// Post is one raw content item as rendered on the search surface. Every
// field is best-effort; extraction failures leave the field empty.
type Post struct {
	Text             string
	PosterName       string
	PosterProfileURL string
	PosterID         string
	PostURL          string
	TimestampText    string
}

// FieldTuple returns the identity-bearing fields in a fixed order. Posts
// carry no stable source ID, so the fingerprint of this tuple is the
// dedup identity.
func (p Post) FieldTuple() []string {
	return []string{p.Text, p.PosterName, p.PosterProfileURL, p.PostURL, p.TimestampText}
}

//Collector defines the interface that all content collectors must implement
type Collector interface {
	//Collect up to maxPosts deduplicated posts matching the query
	Collect(ctx context.Context, page playwright.Page, query string, maxPosts int) ([]Post, error)

	//Name is the surface name (LinkedIn, ...)
	Name() string
}
