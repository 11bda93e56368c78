package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Key layout: one keyspace per record kind, names joined with 0x00 so that
// prefix scans per space stay cheap.
//
//	space/<name>          -> JSON(Space)
//	tag/<space>\x00<name> -> JSON(Tag)
//	edge/<space>\x00<name>-> JSON(Edge)
//	index/<space>\x00<name>-> JSON(Index)
const (
	prefixSpace = "space/"
	prefixTag   = "tag/"
	prefixEdge  = "edge/"
	prefixIndex = "index/"
	keySep      = "\x00"
)

// BadgerStore is the persistent Manager.  Records are JSON-encoded; Badger
// transactions give each call atomicity.
type BadgerStore struct {
	db     *badger.DB
	logger *zap.Logger
}

var _ Manager = (*BadgerStore)(nil)

// OpenBadger opens (or creates) a metadata store at path.  An empty path
// opens an in-memory instance for tests.
func OpenBadger(path string, logger *zap.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open metadata store: %w", err)
	}
	logger.Info("metadata store opened", zap.String("path", path))
	return &BadgerStore{db: db, logger: logger}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) get(key string, out any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *BadgerStore) put(key string, rec any, mustNotExist bool) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if mustNotExist {
			if _, err := txn.Get([]byte(key)); err == nil {
				return ErrExists
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		val, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return txn.Set([]byte(key), val)
	})
}

func (s *BadgerStore) delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete([]byte(key))
	})
}

func (s *BadgerStore) scan(prefix string, visit func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := it.Item().Value(func(val []byte) error {
				return visit(val)
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func spaceKey(name string) string        { return prefixSpace + name }
func tagKey(space, name string) string   { return prefixTag + space + keySep + name }
func edgeKey(space, name string) string  { return prefixEdge + space + keySep + name }
func indexKey(space, name string) string { return prefixIndex + space + keySep + name }

func (s *BadgerStore) GetSpace(name string) (*Space, error) {
	var space Space
	if err := s.get(spaceKey(name), &space); err != nil {
		return nil, fmt.Errorf("space %q: %w", name, err)
	}
	return &space, nil
}

func (s *BadgerStore) ListSpaces() ([]*Space, error) {
	var out []*Space
	err := s.scan(prefixSpace, func(val []byte) error {
		var space Space
		if err := json.Unmarshal(val, &space); err != nil {
			return err
		}
		out = append(out, &space)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *BadgerStore) CreateSpace(space *Space) error {
	if space.ID == uuid.Nil {
		space.ID = uuid.New()
	}
	if err := s.put(spaceKey(space.Name), space, true); err != nil {
		return fmt.Errorf("space %q: %w", space.Name, err)
	}
	s.logger.Debug("space created", zap.String("space", space.Name))
	return nil
}

func (s *BadgerStore) DropSpace(name string) error {
	if err := s.delete(spaceKey(name)); err != nil {
		return fmt.Errorf("space %q: %w", name, err)
	}
	// Drop everything scoped to the space.
	scoped := name + keySep
	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		var doomed [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			for _, prefix := range []string{prefixTag, prefixEdge, prefixIndex} {
				if strings.HasPrefix(key, prefix+scoped) {
					doomed = append(doomed, it.Item().KeyCopy(nil))
				}
			}
		}
		for _, key := range doomed {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) requireSpace(name string) error {
	var space Space
	if err := s.get(spaceKey(name), &space); err != nil {
		return fmt.Errorf("space %q: %w", name, err)
	}
	return nil
}

func (s *BadgerStore) GetTag(space, name string) (*Tag, error) {
	var tag Tag
	if err := s.get(tagKey(space, name), &tag); err != nil {
		return nil, fmt.Errorf("tag %q: %w", name, err)
	}
	return &tag, nil
}

func (s *BadgerStore) ListTags(space string) ([]*Tag, error) {
	if err := s.requireSpace(space); err != nil {
		return nil, err
	}
	var out []*Tag
	err := s.scan(prefixTag+space+keySep, func(val []byte) error {
		var tag Tag
		if err := json.Unmarshal(val, &tag); err != nil {
			return err
		}
		out = append(out, &tag)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *BadgerStore) CreateTag(space string, tag *Tag) error {
	if err := s.requireSpace(space); err != nil {
		return err
	}
	if err := s.put(tagKey(space, tag.Name), tag, true); err != nil {
		return fmt.Errorf("tag %q: %w", tag.Name, err)
	}
	s.logger.Debug("tag created", zap.String("space", space), zap.String("tag", tag.Name))
	return nil
}

func (s *BadgerStore) DropTag(space, name string) error {
	if err := s.delete(tagKey(space, name)); err != nil {
		return fmt.Errorf("tag %q: %w", name, err)
	}
	return nil
}

func (s *BadgerStore) GetEdge(space, name string) (*Edge, error) {
	var edge Edge
	if err := s.get(edgeKey(space, name), &edge); err != nil {
		return nil, fmt.Errorf("edge %q: %w", name, err)
	}
	return &edge, nil
}

func (s *BadgerStore) ListEdges(space string) ([]*Edge, error) {
	if err := s.requireSpace(space); err != nil {
		return nil, err
	}
	var out []*Edge
	err := s.scan(prefixEdge+space+keySep, func(val []byte) error {
		var edge Edge
		if err := json.Unmarshal(val, &edge); err != nil {
			return err
		}
		out = append(out, &edge)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *BadgerStore) CreateEdge(space string, edge *Edge) error {
	if err := s.requireSpace(space); err != nil {
		return err
	}
	if err := s.put(edgeKey(space, edge.Name), edge, true); err != nil {
		return fmt.Errorf("edge %q: %w", edge.Name, err)
	}
	s.logger.Debug("edge created", zap.String("space", space), zap.String("edge", edge.Name))
	return nil
}

func (s *BadgerStore) DropEdge(space, name string) error {
	if err := s.delete(edgeKey(space, name)); err != nil {
		return fmt.Errorf("edge %q: %w", name, err)
	}
	return nil
}

func (s *BadgerStore) GetIndex(space, name string) (*Index, error) {
	var index Index
	if err := s.get(indexKey(space, name), &index); err != nil {
		return nil, fmt.Errorf("index %q: %w", name, err)
	}
	return &index, nil
}

func (s *BadgerStore) ListIndexes(space string, edge bool) ([]*Index, error) {
	if err := s.requireSpace(space); err != nil {
		return nil, err
	}
	var out []*Index
	err := s.scan(prefixIndex+space+keySep, func(val []byte) error {
		var index Index
		if err := json.Unmarshal(val, &index); err != nil {
			return err
		}
		if index.IsEdge == edge {
			out = append(out, &index)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *BadgerStore) CreateIndex(space string, index *Index) error {
	if err := s.requireSpace(space); err != nil {
		return err
	}
	if err := s.put(indexKey(space, index.Name), index, true); err != nil {
		return fmt.Errorf("index %q: %w", index.Name, err)
	}
	return nil
}

func (s *BadgerStore) DropIndex(space, name string) error {
	if err := s.delete(indexKey(space, name)); err != nil {
		return fmt.Errorf("index %q: %w", name, err)
	}
	return nil
}
