package testmaker

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
)

type (
	// Store persists timelines by name. Implementations keep encoded
	// native documents rather than live Timelines, so a Load hands every
	// caller a Timeline nothing else aliases
	Store interface {
		// Save writes the timeline under its name, replacing any previous
		// version. A timeline with no name fails with ErrUnnamedTimeline
		Save(ctx context.Context, tl *Timeline) error

		// Load fetches a timeline, ErrTimelineNotFound when absent
		Load(ctx context.Context, name string) (*Timeline, error)

		// List returns the stored names in ascending order
		List(ctx context.Context) ([]string, error)

		// Delete removes a timeline, ErrTimelineNotFound when absent
		Delete(ctx context.Context, name string) error

		// Close releases the store's resources
		Close() error
	}

	// MemoryStore keeps documents in process memory. It backs tests and
	// scratch sessions that never touch disk
	MemoryStore struct {
		mu   sync.RWMutex
		docs map[string][]byte
	}
)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: map[string][]byte{},
	}
}

func (s *MemoryStore) Save(_ context.Context, tl *Timeline) error {
	doc, err := encodeDoc(tl)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[tl.Name] = doc
	return nil
}

func (s *MemoryStore) Load(
	_ context.Context, name string,
) (*Timeline, error) {
	s.mu.RLock()
	doc, ok := s.docs[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTimelineNotFound, name)
	}
	return decodeDoc(doc)
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[name]; !ok {
		return fmt.Errorf("%w: %q", ErrTimelineNotFound, name)
	}
	delete(s.docs, name)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// encodeDoc renders a timeline into the bytes every Store keeps
func encodeDoc(tl *Timeline) ([]byte, error) {
	if tl.Name == "" {
		return nil, ErrUnnamedTimeline
	}
	var buf bytes.Buffer
	if err := (JSONCodec{}).Encode(&buf, tl); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeDoc(doc []byte) (*Timeline, error) {
	return JSONCodec{}.Decode(bytes.NewReader(doc))
}
