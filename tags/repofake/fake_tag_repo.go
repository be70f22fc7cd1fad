package faketagrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/tags"
)

var _ tags.Repo = (*FakeTagRepo)(nil)

type FakeTagRepo struct {
	lock  sync.RWMutex
	byID  map[string]*tags.Tag
	names map[string]string // name to tag id
}

func NewFakeTagRepo() *FakeTagRepo {
	return &FakeTagRepo{
		byID:  make(map[string]*tags.Tag),
		names: make(map[string]string),
	}
}

func (tr *FakeTagRepo) Create(ctx context.Context, tag *tags.Tag) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.names[tag.Name]; ok {
		return apperrors.Wrapf(apperrors.ErrConflict, "tag %q", tag.Name)
	}
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	stored := *tag
	tr.byID[tag.ID] = &stored
	tr.names[tag.Name] = tag.ID
	return nil
}

func (tr *FakeTagRepo) GetByName(ctx context.Context, name string) (*tags.Tag, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	id, ok := tr.names[name]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	tag := *tr.byID[id]
	return &tag, nil
}

func (tr *FakeTagRepo) List(ctx context.Context) ([]*tags.Tag, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	list := make([]*tags.Tag, 0, len(tr.byID))
	for _, stored := range tr.byID {
		tag := *stored
		list = append(list, &tag)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
