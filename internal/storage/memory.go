package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

var ErrNotFound = errors.New("blob not found")

type memObject struct {
	data        []byte
	contentType string
}

// MemoryStore keeps blobs in a map. Used by tests and by nothing else
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]memObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memObject)}
}

func (m *MemoryStore) Put(_ context.Context, name string, r io.Reader, _ int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.objects[name] = memObject{data: data, contentType: contentType}
	m.mu.Unlock()

	return "mem://" + name, nil
}

func (m *MemoryStore) Get(_ context.Context, name string) (*Object, error) {
	m.mu.Lock()
	obj, ok := m.objects[name]
	m.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}

	return &Object{
		Body:          io.NopCloser(bytes.NewReader(obj.data)),
		ContentLength: int64(len(obj.data)),
		ContentType:   obj.contentType,
	}, nil
}

func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	delete(m.objects, name)
	m.mu.Unlock()
	return nil
}

// Len reports how many blobs are stored
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Has reports whether a blob exists under name
func (m *MemoryStore) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[name]
	return ok
}
