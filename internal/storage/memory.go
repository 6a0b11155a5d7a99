package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
)

// Memory is an in-process object store. It backs dry runs and tests.
type Memory struct {
	mu      sync.Mutex
	buckets map[string]map[string][]byte
	puts    int
}

func NewMemory() *Memory {
	return &Memory{buckets: make(map[string]map[string][]byte)}
}

// EnsureBucket creates bucket unless it already exists.
func (m *Memory) EnsureBucket(ctx context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.buckets[bucket]; ok {
		return nil
	}
	slog.InfoContext(ctx, "bucket missing, creating", "bucket", bucket, "backend", "memory")
	m.buckets[bucket] = make(map[string][]byte)
	return nil
}

// Put stores data at key, replacing any existing object.
func (m *Memory) Put(ctx context.Context, bucket, key string, data io.Reader) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return wrapError("put", bucket, key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	objects, ok := m.buckets[bucket]
	if !ok {
		return &Error{Op: "put", Bucket: bucket, Key: key, Code: "NoSuchBucket", Err: fmt.Errorf("bucket does not exist")}
	}
	objects[key] = b
	m.puts++
	return nil
}

// Get returns the object stored at key.
func (m *Memory) Get(bucket, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[bucket][key]
	return b, ok
}

// Buckets returns the bucket names in sorted order.
func (m *Memory) Buckets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.buckets))
	for name := range m.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Keys returns the object keys of bucket in sorted order.
func (m *Memory) Keys(bucket string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.buckets[bucket]))
	for k := range m.buckets[bucket] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Puts returns the number of successful writes.
func (m *Memory) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}
