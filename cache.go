package testmaker

import (
	"container/list"
	"context"
	"sync"
)

type (
	// CachedStore wraps a Store with an LRU of encoded documents. Hits
	// skip the backend entirely; because the cache holds bytes rather than
	// timelines, a cached Load still hands every caller its own Timeline
	CachedStore struct {
		inner   Store
		cache   map[string]*list.Element
		lru     *list.List
		maxSize int
		mu      sync.Mutex
	}

	cacheEntry struct {
		name string
		doc  []byte
	}
)

// NewCachedStore wraps inner with a cache of at most maxSize documents.
// Sizes below one fall back to DefaultCacheSize
func NewCachedStore(inner Store, maxSize int) *CachedStore {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &CachedStore{
		inner:   inner,
		cache:   map[string]*list.Element{},
		lru:     list.New(),
		maxSize: maxSize,
	}
}

func (s *CachedStore) Save(ctx context.Context, tl *Timeline) error {
	doc, err := encodeDoc(tl)
	if err != nil {
		return err
	}
	if err := s.inner.Save(ctx, tl); err != nil {
		return err
	}
	s.put(tl.Name, doc)
	return nil
}

func (s *CachedStore) Load(
	ctx context.Context, name string,
) (*Timeline, error) {
	if doc, ok := s.get(name); ok {
		return decodeDoc(doc)
	}
	tl, err := s.inner.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	doc, err := encodeDoc(tl)
	if err != nil {
		return nil, err
	}
	s.put(name, doc)
	return tl, nil
}

func (s *CachedStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

func (s *CachedStore) Delete(ctx context.Context, name string) error {
	if err := s.inner.Delete(ctx, name); err != nil {
		return err
	}
	s.evict(name)
	return nil
}

func (s *CachedStore) Close() error {
	return s.inner.Close()
}

func (s *CachedStore) get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.cache[name]
	if !ok {
		return nil, false
	}
	s.lru.MoveToFront(elem)
	return elem.Value.(*cacheEntry).doc, true
}

func (s *CachedStore) put(name string, doc []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if elem, ok := s.cache[name]; ok {
		elem.Value.(*cacheEntry).doc = doc
		s.lru.MoveToFront(elem)
		return
	}
	elem := s.lru.PushFront(&cacheEntry{name: name, doc: doc})
	s.cache[name] = elem
	if s.lru.Len() > s.maxSize {
		s.evictLast()
	}
}

func (s *CachedStore) evict(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if elem, ok := s.cache[name]; ok {
		s.lru.Remove(elem)
		delete(s.cache, name)
	}
}

func (s *CachedStore) evictLast() {
	back := s.lru.Back()
	if back != nil {
		s.lru.Remove(back)
		delete(s.cache, back.Value.(*cacheEntry).name)
	}
}
