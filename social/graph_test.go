package social_test

import (
	"context"
	"testing"

	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/social"
	"github.com/jrsteele09/go-blog-server/users"
	fakeuserrepo "github.com/jrsteele09/go-blog-server/users/repofake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, repo *fakeuserrepo.FakeUserRepo, username string) *users.User {
	t.Helper()
	user := &users.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func reload(t *testing.T, repo *fakeuserrepo.FakeUserRepo, id string) *users.User {
	t.Helper()
	user, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return user
}

func TestFollowIsSymmetricAndIdempotent(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	graph, err := social.NewGraph(repo)
	require.NoError(t, err)

	alice := newUser(t, repo, "alice")
	bob := newUser(t, repo, "bob")

	target, err := graph.Follow(context.Background(), alice, "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, target.ID)

	// Repeating the follow is a successful no-op.
	_, err = graph.Follow(context.Background(), alice, "Bob")
	require.NoError(t, err)

	assert.Equal(t, []string{bob.ID}, reload(t, repo, alice.ID).Following)
	assert.Equal(t, []string{alice.ID}, reload(t, repo, bob.ID).Followers)
	assert.Empty(t, reload(t, repo, alice.ID).Followers)
}

func TestFollowRejectsSelf(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	graph, err := social.NewGraph(repo)
	require.NoError(t, err)

	alice := newUser(t, repo, "alice")

	_, err = graph.Follow(context.Background(), alice, "alice")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, reload(t, repo, alice.ID).Following)
}

func TestFollowUnknownUsername(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	graph, err := social.NewGraph(repo)
	require.NoError(t, err)

	alice := newUser(t, repo, "alice")

	_, err = graph.Follow(context.Background(), alice, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = graph.Unfollow(context.Background(), alice, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUnfollow(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	graph, err := social.NewGraph(repo)
	require.NoError(t, err)

	alice := newUser(t, repo, "alice")
	bob := newUser(t, repo, "bob")

	_, err = graph.Follow(context.Background(), alice, "bob")
	require.NoError(t, err)
	_, err = graph.Unfollow(context.Background(), alice, "bob")
	require.NoError(t, err)

	assert.Empty(t, reload(t, repo, alice.ID).Following)
	assert.Empty(t, reload(t, repo, bob.ID).Followers)

	// Unfollowing an account that was never followed is a no-op.
	_, err = graph.Unfollow(context.Background(), alice, "bob")
	require.NoError(t, err)
}
