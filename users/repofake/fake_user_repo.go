package fakeuserrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory UserRepo for tests and local development.
// All mutations happen under one lock, so token appends and follow updates
// are atomic the same way the Postgres row operations are.
type FakeUserRepo struct {
	lock        sync.RWMutex
	users       map[string]*users.User
	emailIDs    map[string]string // email to user id
	usernameIDs map[string]string // username to user id
	tokens      map[string][]string
	follows     map[string]map[string]struct{} // follower id to set of target ids
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:       make(map[string]*users.User),
		emailIDs:    make(map[string]string),
		usernameIDs: make(map[string]string),
		tokens:      make(map[string][]string),
		follows:     make(map[string]map[string]struct{}),
	}
}

func (ur *FakeUserRepo) Create(ctx context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.emailIDs[user.Email]; ok {
		return apperrors.Wrapf(apperrors.ErrConflict, "email %q", user.Email)
	}
	if _, ok := ur.usernameIDs[user.Username]; ok {
		return apperrors.Wrapf(apperrors.ErrConflict, "username %q", user.Username)
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	stored := *user
	stored.Tokens, stored.Following, stored.Followers = nil, nil, nil
	ur.users[user.ID] = &stored
	ur.emailIDs[user.Email] = user.ID
	ur.usernameIDs[user.Username] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return ur.snapshot(id)
}

func (ur *FakeUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIDs[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return ur.snapshot(id)
}

func (ur *FakeUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.usernameIDs[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return ur.snapshot(id)
}

func (ur *FakeUserRepo) Update(ctx context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	existing, ok := ur.users[user.ID]
	if !ok {
		return apperrors.ErrNotFound
	}

	if id, taken := ur.emailIDs[user.Email]; taken && id != user.ID {
		return apperrors.Wrapf(apperrors.ErrConflict, "email %q", user.Email)
	}
	if id, taken := ur.usernameIDs[user.Username]; taken && id != user.ID {
		return apperrors.Wrapf(apperrors.ErrConflict, "username %q", user.Username)
	}

	delete(ur.emailIDs, existing.Email)
	delete(ur.usernameIDs, existing.Username)

	stored := *user
	stored.Tokens, stored.Following, stored.Followers = nil, nil, nil
	ur.users[user.ID] = &stored
	ur.emailIDs[user.Email] = user.ID
	ur.usernameIDs[user.Username] = user.ID
	return nil
}

func (ur *FakeUserRepo) Delete(ctx context.Context, id string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	return ur.deleteLocked(id)
}

func (ur *FakeUserRepo) AddToken(ctx context.Context, userID, token string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.users[userID]; !ok {
		return apperrors.ErrNotFound
	}
	ur.tokens[userID] = append(ur.tokens[userID], token)
	return nil
}

func (ur *FakeUserRepo) RemoveToken(ctx context.Context, userID, token string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	kept := ur.tokens[userID][:0]
	for _, t := range ur.tokens[userID] {
		if t != token {
			kept = append(kept, t)
		}
	}
	ur.tokens[userID] = kept
	return nil
}

func (ur *FakeUserRepo) ClearTokens(ctx context.Context, userID string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	delete(ur.tokens, userID)
	return nil
}

func (ur *FakeUserRepo) AddFollow(ctx context.Context, followerID, targetID string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.users[targetID]; !ok {
		return apperrors.ErrNotFound
	}
	if ur.follows[followerID] == nil {
		ur.follows[followerID] = make(map[string]struct{})
	}
	ur.follows[followerID][targetID] = struct{}{}
	return nil
}

func (ur *FakeUserRepo) RemoveFollow(ctx context.Context, followerID, targetID string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	delete(ur.follows[followerID], targetID)
	return nil
}

// deleteLocked removes the user plus its tokens and both directions of its
// follow relations. Callers hold the write lock.
func (ur *FakeUserRepo) deleteLocked(id string) error {
	user, ok := ur.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(ur.emailIDs, user.Email)
	delete(ur.usernameIDs, user.Username)
	delete(ur.users, id)
	delete(ur.tokens, id)
	delete(ur.follows, id)
	for _, targets := range ur.follows {
		delete(targets, id)
	}
	return nil
}

// snapshot copies the stored user and projects its tokens and follow sets.
// Callers hold at least the read lock.
func (ur *FakeUserRepo) snapshot(id string) (*users.User, error) {
	stored, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	user := *stored
	user.Tokens = append([]string(nil), ur.tokens[id]...)

	for target := range ur.follows[id] {
		user.Following = append(user.Following, target)
	}
	for follower, targets := range ur.follows {
		if _, ok := targets[id]; ok {
			user.Followers = append(user.Followers, follower)
		}
	}
	sort.Strings(user.Following)
	sort.Strings(user.Followers)
	return &user, nil
}
