package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory Manager.  It backs unit tests and embedded use
// where no persistence is wanted.
type MemStore struct {
	mu      sync.RWMutex
	spaces  map[string]*Space
	tags    map[string]map[string]*Tag
	edges   map[string]map[string]*Edge
	indexes map[string]map[string]*Index
}

var _ Manager = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		spaces:  make(map[string]*Space),
		tags:    make(map[string]map[string]*Tag),
		edges:   make(map[string]map[string]*Edge),
		indexes: make(map[string]map[string]*Index),
	}
}

func (s *MemStore) GetSpace(name string) (*Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	space, ok := s.spaces[name]
	if !ok {
		return nil, fmt.Errorf("space %q: %w", name, ErrNotFound)
	}
	return space, nil
}

func (s *MemStore) ListSpaces() ([]*Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Space, 0, len(s.spaces))
	for _, space := range s.spaces {
		out = append(out, space)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemStore) CreateSpace(space *Space) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.spaces[space.Name]; ok {
		return fmt.Errorf("space %q: %w", space.Name, ErrExists)
	}
	if space.ID == uuid.Nil {
		space.ID = uuid.New()
	}
	s.spaces[space.Name] = space
	s.tags[space.Name] = make(map[string]*Tag)
	s.edges[space.Name] = make(map[string]*Edge)
	s.indexes[space.Name] = make(map[string]*Index)
	return nil
}

func (s *MemStore) DropSpace(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.spaces[name]; !ok {
		return fmt.Errorf("space %q: %w", name, ErrNotFound)
	}
	delete(s.spaces, name)
	delete(s.tags, name)
	delete(s.edges, name)
	delete(s.indexes, name)
	return nil
}

func (s *MemStore) GetTag(space, name string) (*Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tag, ok := s.tags[space][name]
	if !ok {
		return nil, fmt.Errorf("tag %q: %w", name, ErrNotFound)
	}
	return tag, nil
}

func (s *MemStore) ListTags(space string) ([]*Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.spaces[space]; !ok {
		return nil, fmt.Errorf("space %q: %w", space, ErrNotFound)
	}
	out := make([]*Tag, 0, len(s.tags[space]))
	for _, tag := range s.tags[space] {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemStore) CreateTag(space string, tag *Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.spaces[space]; !ok {
		return fmt.Errorf("space %q: %w", space, ErrNotFound)
	}
	if _, ok := s.tags[space][tag.Name]; ok {
		return fmt.Errorf("tag %q: %w", tag.Name, ErrExists)
	}
	s.tags[space][tag.Name] = tag
	return nil
}

func (s *MemStore) DropTag(space, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tags[space][name]; !ok {
		return fmt.Errorf("tag %q: %w", name, ErrNotFound)
	}
	delete(s.tags[space], name)
	return nil
}

func (s *MemStore) GetEdge(space, name string) (*Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	edge, ok := s.edges[space][name]
	if !ok {
		return nil, fmt.Errorf("edge %q: %w", name, ErrNotFound)
	}
	return edge, nil
}

func (s *MemStore) ListEdges(space string) ([]*Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.spaces[space]; !ok {
		return nil, fmt.Errorf("space %q: %w", space, ErrNotFound)
	}
	out := make([]*Edge, 0, len(s.edges[space]))
	for _, edge := range s.edges[space] {
		out = append(out, edge)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemStore) CreateEdge(space string, edge *Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.spaces[space]; !ok {
		return fmt.Errorf("space %q: %w", space, ErrNotFound)
	}
	if _, ok := s.edges[space][edge.Name]; ok {
		return fmt.Errorf("edge %q: %w", edge.Name, ErrExists)
	}
	s.edges[space][edge.Name] = edge
	return nil
}

func (s *MemStore) DropEdge(space, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.edges[space][name]; !ok {
		return fmt.Errorf("edge %q: %w", name, ErrNotFound)
	}
	delete(s.edges[space], name)
	return nil
}

func (s *MemStore) GetIndex(space, name string) (*Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index, ok := s.indexes[space][name]
	if !ok {
		return nil, fmt.Errorf("index %q: %w", name, ErrNotFound)
	}
	return index, nil
}

func (s *MemStore) ListIndexes(space string, edge bool) ([]*Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.spaces[space]; !ok {
		return nil, fmt.Errorf("space %q: %w", space, ErrNotFound)
	}
	var out []*Index
	for _, index := range s.indexes[space] {
		if index.IsEdge == edge {
			out = append(out, index)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemStore) CreateIndex(space string, index *Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.spaces[space]; !ok {
		return fmt.Errorf("space %q: %w", space, ErrNotFound)
	}
	if _, ok := s.indexes[space][index.Name]; ok {
		return fmt.Errorf("index %q: %w", index.Name, ErrExists)
	}
	s.indexes[space][index.Name] = index
	return nil
}

func (s *MemStore) DropIndex(space, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.indexes[space][name]; !ok {
		return fmt.Errorf("index %q: %w", name, ErrNotFound)
	}
	delete(s.indexes[space], name)
	return nil
}
