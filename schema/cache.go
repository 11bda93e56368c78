package schema

import (
	arc "github.com/hashicorp/golang-lru/arc/v2"
)

// CachedManager wraps another Manager with ARC caches for the hot lookup
// paths (GetSpace/GetTag/GetEdge), which validators hit once or more per
// statement.  Writes go straight through and invalidate.  List and index
// calls are uncached; they are rare and their results are cheap to rebuild.
type CachedManager struct {
	Manager
	spaces *arc.ARCCache[string, *Space]
	tags   *arc.ARCCache[string, *Tag]
	edges  *arc.ARCCache[string, *Edge]
}

// NewCached wraps m with caches of the given size per record kind.
func NewCached(m Manager, size int) (*CachedManager, error) {
	spaces, err := arc.NewARC[string, *Space](size)
	if err != nil {
		return nil, err
	}
	tags, err := arc.NewARC[string, *Tag](size)
	if err != nil {
		return nil, err
	}
	edges, err := arc.NewARC[string, *Edge](size)
	if err != nil {
		return nil, err
	}
	return &CachedManager{Manager: m, spaces: spaces, tags: tags, edges: edges}, nil
}

func scopedKey(space, name string) string { return space + "\x00" + name }

func (c *CachedManager) GetSpace(name string) (*Space, error) {
	if space, ok := c.spaces.Get(name); ok {
		return space, nil
	}
	space, err := c.Manager.GetSpace(name)
	if err != nil {
		return nil, err
	}
	c.spaces.Add(name, space)
	return space, nil
}

func (c *CachedManager) CreateSpace(space *Space) error {
	if err := c.Manager.CreateSpace(space); err != nil {
		return err
	}
	c.spaces.Remove(space.Name)
	return nil
}

func (c *CachedManager) DropSpace(name string) error {
	if err := c.Manager.DropSpace(name); err != nil {
		return err
	}
	c.spaces.Remove(name)
	// Scoped records are keyed by space; purge wholesale.
	c.tags.Purge()
	c.edges.Purge()
	return nil
}

func (c *CachedManager) GetTag(space, name string) (*Tag, error) {
	key := scopedKey(space, name)
	if tag, ok := c.tags.Get(key); ok {
		return tag, nil
	}
	tag, err := c.Manager.GetTag(space, name)
	if err != nil {
		return nil, err
	}
	c.tags.Add(key, tag)
	return tag, nil
}

func (c *CachedManager) CreateTag(space string, tag *Tag) error {
	if err := c.Manager.CreateTag(space, tag); err != nil {
		return err
	}
	c.tags.Remove(scopedKey(space, tag.Name))
	return nil
}

func (c *CachedManager) DropTag(space, name string) error {
	if err := c.Manager.DropTag(space, name); err != nil {
		return err
	}
	c.tags.Remove(scopedKey(space, name))
	return nil
}

func (c *CachedManager) GetEdge(space, name string) (*Edge, error) {
	key := scopedKey(space, name)
	if edge, ok := c.edges.Get(key); ok {
		return edge, nil
	}
	edge, err := c.Manager.GetEdge(space, name)
	if err != nil {
		return nil, err
	}
	c.edges.Add(key, edge)
	return edge, nil
}

func (c *CachedManager) CreateEdge(space string, edge *Edge) error {
	if err := c.Manager.CreateEdge(space, edge); err != nil {
		return err
	}
	c.edges.Remove(scopedKey(space, edge.Name))
	return nil
}

func (c *CachedManager) DropEdge(space, name string) error {
	if err := c.Manager.DropEdge(space, name); err != nil {
		return err
	}
	c.edges.Remove(scopedKey(space, name))
	return nil
}
