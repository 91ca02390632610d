package kv

import "context"

// Pair is one key/value entry of a batch write.
type Pair struct {
	Key   string
	Value []byte
}

// Repository is a string-keyed byte store. SetMany and DeleteMany are atomic:
// either every key of the batch changes or none does.
type Repository interface {
	// Get returns found=false (and a nil error) when key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, pairs []Pair) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys []string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
