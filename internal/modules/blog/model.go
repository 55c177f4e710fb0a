package blog

import (
	"strings"
	"time"
)

// MaxPosts caps the recent-blog strip, matching the storefront layout.
const MaxPosts = 3

// Meta holds the section heading and its call-to-action link.
type Meta struct {
	Title     string    `json:"title"`
	CTAText   string    `json:"ctaText"`
	CTAHref   string    `json:"ctaHref"`
	UpdatedAt time.Time `json:"-"`
}

// Post is one blog card.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Tag       string    `json:"tag"`
	Excerpt   string    `json:"excerpt"`
	Image     string    `json:"image"`
	Visible   bool      `json:"visible"`
	SortOrder int       `json:"order"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Payload is the blogs response body.
type Payload struct {
	Title   string `json:"title"`
	CTAText string `json:"ctaText"`
	CTAHref string `json:"ctaHref"`
	Cards   []Post `json:"cards"`
}

// SaveRequest is the admin editor's full-replace payload.
type SaveRequest struct {
	Title   string      `json:"title"`
	CTAText string      `json:"ctaText"`
	CTAHref string      `json:"ctaHref"`
	Cards   []PostInput `json:"cards"`
}

// PostInput is a Post whose visibility defaults to true when absent and whose
// image may arrive under either "image" or "img".
type PostInput struct {
	Post
	Visible *bool  `json:"visible"`
	Img     string `json:"img"`
}

func (in PostInput) resolve() Post {
	p := in.Post
	p.Visible = in.Visible == nil || *in.Visible
	if p.Image == "" {
		p.Image = strings.TrimSpace(in.Img)
	}
	return p
}

const (
	defaultTitle   = "Our Recent Blog"
	defaultCTAText = "Read All Article"
	defaultCTAHref = "#"
)

func orDefault(v, d string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return d
	}
	return v
}
