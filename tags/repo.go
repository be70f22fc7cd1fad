package tags

import "context"

type Repo interface {
	Create(ctx context.Context, tag *Tag) error
	GetByName(ctx context.Context, name string) (*Tag, error)
	List(ctx context.Context) ([]*Tag, error)
}
