package blog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	meta  Meta
	posts []Post
}

func (f *fakeRepo) Get(ctx context.Context) (*Meta, []Post, error) {
	m := f.meta
	return &m, f.posts, nil
}

func (f *fakeRepo) Replace(ctx context.Context, meta Meta, posts []Post) error {
	f.meta = meta
	f.posts = posts
	return nil
}

type fakeBus struct{ topics []string }

func (f *fakeBus) Publish(ctx context.Context, topic string) error {
	f.topics = append(f.topics, topic)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func TestSaveAppliesDefaultsAndCap(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	got, err := svc.Save(context.Background(), SaveRequest{
		Cards: []PostInput{
			{Post: Post{Title: "  Fresh picks  "}},
			{Post: Post{Title: "b"}, Visible: boolPtr(false)},
			{Post: Post{Title: "c"}, Img: "c.png"},
			{Post: Post{Title: "dropped"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Our Recent Blog", got.Title)
	assert.Equal(t, "Read All Article", got.CTAText)
	assert.Equal(t, "#", got.CTAHref)
	require.Len(t, got.Cards, MaxPosts)

	assert.Equal(t, "Fresh picks", got.Cards[0].Title)
	assert.Len(t, got.Cards[0].ID, 32)
	assert.True(t, got.Cards[0].Visible)
	assert.Equal(t, 1, got.Cards[0].SortOrder)

	assert.False(t, got.Cards[1].Visible)
	assert.Equal(t, "c.png", got.Cards[2].Image, "img alias fills empty image")
}

func TestSaveKeepsExplicitMeta(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	got, err := svc.Save(context.Background(), SaveRequest{
		Title:   "From the Field",
		CTAText: "More stories",
		CTAHref: "/blog",
	})
	require.NoError(t, err)
	assert.Equal(t, "From the Field", got.Title)
	assert.Equal(t, "More stories", got.CTAText)
	assert.Equal(t, "/blog", got.CTAHref)
	assert.Empty(t, got.Cards)
}

func TestSavePublishesBlogsTopic(t *testing.T) {
	bus := &fakeBus{}
	svc := NewService(&fakeRepo{}, bus)

	_, err := svc.Save(context.Background(), SaveRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{Topic}, bus.topics)
}

func TestGetReturnsEmptyCardsNotNull(t *testing.T) {
	svc := NewService(&fakeRepo{meta: Meta{Title: "x", CTAText: "y", CTAHref: "#"}}, nil)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got.Cards)
	assert.Empty(t, got.Cards)
}
