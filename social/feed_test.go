package social_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-blog-server/blogs"
	fakeblogrepo "github.com/jrsteele09/go-blog-server/blogs/repofake"
	"github.com/jrsteele09/go-blog-server/social"
	fakeuserrepo "github.com/jrsteele09/go-blog-server/users/repofake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlog(t *testing.T, repo *fakeblogrepo.FakeBlogRepo, title, author string, createdAt time.Time) *blogs.Blog {
	t.Helper()
	blog := &blogs.Blog{
		Title:     title,
		Body:      strings.Repeat("words and more words ", 15),
		PostedBy:  author,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), blog))
	return blog
}

func TestFeedForUser(t *testing.T) {
	userRepo := fakeuserrepo.NewFakeUserRepo()
	blogRepo := fakeblogrepo.NewFakeBlogRepo()

	graph, err := social.NewGraph(userRepo)
	require.NoError(t, err)
	feed, err := social.NewFeed(userRepo, blogRepo)
	require.NoError(t, err)

	reader := newUser(t, userRepo, "reader")
	followed := newUser(t, userRepo, "followed")
	stranger := newUser(t, userRepo, "stranger")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	older := newBlog(t, blogRepo, "older followed post", followed.ID, base)
	newer := newBlog(t, blogRepo, "newer followed post", followed.ID, base.Add(time.Hour))
	newBlog(t, blogRepo, "stranger post", stranger.ID, base.Add(2*time.Hour))

	_, err = graph.Follow(context.Background(), reader, "followed")
	require.NoError(t, err)

	list, total, err := feed.ForUser(context.Background(), reader.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID, "feed is newest first")
	assert.Equal(t, older.ID, list[1].ID)

	// After unfollowing, the feed goes empty; the count reflects that.
	_, err = graph.Unfollow(context.Background(), reader, "followed")
	require.NoError(t, err)
	list, total, err = feed.ForUser(context.Background(), reader.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestFeedPaging(t *testing.T) {
	userRepo := fakeuserrepo.NewFakeUserRepo()
	blogRepo := fakeblogrepo.NewFakeBlogRepo()

	feed, err := social.NewFeed(userRepo, blogRepo)
	require.NoError(t, err)

	author := newUser(t, userRepo, "author")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		newBlog(t, blogRepo, "post number "+string(rune('a'+i)), author.ID, base.Add(time.Duration(i)*time.Minute))
	}

	page, total, err := feed.Global(context.Background(), 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 3)

	rest, total, err := feed.Global(context.Background(), 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, rest, 2)

	empty, total, err := feed.Global(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, empty)
}
