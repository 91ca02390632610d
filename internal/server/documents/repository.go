package documents

import (
	"context"
	"encoding/json"
	"maps"
	"sync"
	"time"

	"github.com/ehimavote/evote/internal/common"
)

type Repository interface {
	Get(ctx context.Context, name string) (*Document, error)
	Put(ctx context.Context, name string, fields map[string]json.RawMessage, now time.Time) (*Document, error)
}

type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: map[string]Document{}}
}

// Get returns common.ErrorNotFound for a missing document.
func (r *MemoryRepository) Get(_ context.Context, name string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.docs[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	d.Fields = maps.Clone(d.Fields)
	return &d, nil
}

// Put replaces the fields of the named document, creating it if needed.
// CreateTime is kept across updates.
func (r *MemoryRepository) Put(_ context.Context, name string, fields map[string]json.RawMessage, now time.Time) (*Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.docs[name]
	if !ok {
		d = Document{Name: name, CreateTime: now}
	}
	d.Fields = maps.Clone(fields)
	d.UpdateTime = now
	r.docs[name] = d

	d.Fields = maps.Clone(d.Fields)
	return &d, nil
}
