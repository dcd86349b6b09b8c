// Package storagetest provides an in-memory storage.Store for tests.
package storagetest

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"gallery-api/internal/infra/storage"
)

const BaseURL = "https://cdn.test"

type Object struct {
	Data         []byte
	ContentType  string
	LastModified time.Time
}

type Memory struct {
	storage.Resolver

	mu      sync.Mutex
	objects map[string]Object
	// FailRemove makes Remove fail for the listed keys.
	FailRemove map[string]error
}

func NewMemory() *Memory {
	return &Memory{
		Resolver:   storage.NewResolver(BaseURL),
		objects:    map[string]Object{},
		FailRemove: map[string]error{},
	}
}

func (m *Memory) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = Object{Data: data, ContentType: contentType, LastModified: time.Now()}
	return nil
}

// Seed stores an object with an explicit modification time.
func (m *Memory) Seed(key string, modified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = Object{Data: []byte(key), LastModified: modified}
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailRemove[key]; ok {
		return err
	}
	delete(m.objects, key)
	return nil
}

func (m *Memory) RemovePrefix(ctx context.Context, prefix string) (int, error) {
	n := 0
	for _, k := range m.Keys(prefix) {
		if err := m.Remove(ctx, k); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (m *Memory) Copy(_ context.Context, srcKey, dstKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[srcKey]
	if !ok {
		return fmt.Errorf("object %s not found", srcKey)
	}
	obj.LastModified = time.Now()
	m.objects[dstKey] = obj
	return nil
}

func (m *Memory) List(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.ObjectInfo
	for k, o := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, storage.ObjectInfo{Key: k, Size: int64(len(o.Data)), LastModified: o.LastModified})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

func (m *Memory) Get(key string) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objects[key]
	return o, ok
}

func (m *Memory) Keys(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

var _ storage.Store = (*Memory)(nil)
