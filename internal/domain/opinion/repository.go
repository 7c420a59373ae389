package opinion

import "context"

// Repository persists parsed case records. Implementations live under
// internal/infrastructure; the JSON store is the default and the Postgres
// repository is optional.
type Repository interface {
	Save(ctx context.Context, record *CaseRecord) error
	Get(ctx context.Context, id string) (*CaseRecord, error)
	List(ctx context.Context) ([]*CaseRecord, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}
