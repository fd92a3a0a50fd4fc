package employees

import "context"

type StoreAPI interface {
	List(ctx context.Context, q ListQuery) ([]Employee, int64, error)
	ListAll(ctx context.Context, q ListQuery) ([]Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)
	Update(ctx context.Context, id string, patch Patch) (Employee, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (Stats, error)
	History(ctx context.Context, id string) ([]IncrementRecord, error)
}
