// Package entity defines the records returned to the agent and their validation rules.
// Update and DetailedUpdate are projections of one blog feed entry; ArticleDetails is
// the result of scraping an article page directly.
package entity

import "time"

// Update is the summary view of one blog post.
type Update struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
	Summary   *string   `json:"summary"`
}

// DetailedUpdate extends Update with the post body and optional page metadata.
// Content is nil when the feed entry carried no usable body; that is a valid result.
type DetailedUpdate struct {
	Update
	Content       *string    `json:"content"`
	Author        *string    `json:"author"`
	Tags          []string   `json:"tags"`
	PublishedDate *time.Time `json:"published_date"`
}

// ArticleDetails holds fields scraped from an article page.
// Every field except URL may be absent when the page could not be fetched.
type ArticleDetails struct {
	URL           string     `json:"url"`
	Content       *string    `json:"content"`
	Author        *string    `json:"author"`
	Tags          []string   `json:"tags"`
	PublishedDate *time.Time `json:"published_date"`
}

// NewUpdate builds an Update after validating the link.
// published is normalised to UTC.
func NewUpdate(title, link string, published time.Time, summary *string) (Update, error) {
	if err := ValidateURL(link); err != nil {
		return Update{}, err
	}
	return Update{
		Title:     title,
		URL:       link,
		Published: published.UTC(),
		Summary:   summary,
	}, nil
}

// NewDetailedUpdate builds a DetailedUpdate after validating the link.
// Tags is always non-nil so that it serialises as an empty list.
func NewDetailedUpdate(title, link string, published time.Time, summary, content *string) (*DetailedUpdate, error) {
	u, err := NewUpdate(title, link, published, summary)
	if err != nil {
		return nil, err
	}
	return &DetailedUpdate{
		Update:  u,
		Content: content,
		Tags:    []string{},
	}, nil
}

// EmptyArticleDetails returns an ArticleDetails with every optional field absent.
func EmptyArticleDetails(pageURL string) ArticleDetails {
	return ArticleDetails{URL: pageURL, Tags: []string{}}
}
