package ports

import "context"

// ResultCache memoizes computed resource values across executions. Values
// are JSON-encoded by the adapter. A miss is (nil, false, nil).
type ResultCache interface {
	Get(ctx context.Context, key string) (any, bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
