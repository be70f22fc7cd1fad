package assets

import (
	"context"
	"io"
	"sync"
)

var _ Store = (*FakeStore)(nil)

// FakeStore records uploads in memory and returns deterministic URLs.
type FakeStore struct {
	lock    sync.Mutex
	Uploads []string
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (f *FakeStore) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	url := "https://assets.local/" + filename
	f.Uploads = append(f.Uploads, url)
	return url, nil
}
