package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Topic is the refresh topic published after an admin save.
const Topic = "blogs"

// RefreshPublisher signals open storefront views that the blog strip changed.
type RefreshPublisher interface {
	Publish(ctx context.Context, topic string) error
}

// Service defines the blog section business logic.
type Service interface {
	Get(ctx context.Context) (*Payload, error)
	Save(ctx context.Context, req SaveRequest) (*Payload, error)
}

type service struct {
	repo Repository
	bus  RefreshPublisher
}

// NewService creates a new blog service.
func NewService(repo Repository, bus RefreshPublisher) Service {
	return &service{repo: repo, bus: bus}
}

func (s *service) Get(ctx context.Context) (*Payload, error) {
	meta, posts, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []Post{}
	}
	return &Payload{
		Title:   meta.Title,
		CTAText: meta.CTAText,
		CTAHref: meta.CTAHref,
		Cards:   posts,
	}, nil
}

func (s *service) Save(ctx context.Context, req SaveRequest) (*Payload, error) {
	meta := Meta{
		Title:   orDefault(req.Title, defaultTitle),
		CTAText: orDefault(req.CTAText, defaultCTAText),
		CTAHref: orDefault(req.CTAHref, defaultCTAHref),
	}

	in := req.Cards
	if len(in) > MaxPosts {
		in = in[:MaxPosts]
	}
	posts := make([]Post, 0, len(in))
	for i, raw := range in {
		p := raw.resolve()
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			p.ID = strings.ReplaceAll(uuid.NewString(), "-", "")
		}
		p.Title = strings.TrimSpace(p.Title)
		p.Date = strings.TrimSpace(p.Date)
		p.Tag = strings.TrimSpace(p.Tag)
		p.Excerpt = strings.TrimSpace(p.Excerpt)
		if p.SortOrder < 1 {
			p.SortOrder = i + 1
		}
		posts = append(posts, p)
	}

	if err := s.repo.Replace(ctx, meta, posts); err != nil {
		return nil, fmt.Errorf("save blogs: %w", err)
	}
	if s.bus != nil {
		_ = s.bus.Publish(ctx, Topic)
	}
	return s.Get(ctx)
}
