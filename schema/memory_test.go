package schema_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/schema"
)

func testSpace(name string) *schema.Space {
	return &schema.Space{
		ID:         uuid.New(),
		Name:       name,
		Partitions: 10,
		Replicas:   1,
		VidType:    volta.TypeInt64,
	}
}

func testManager(t *testing.T, m schema.Manager) {
	t.Helper()

	require.NoError(t, m.CreateSpace(testSpace("a")))
	require.NoError(t, m.CreateSpace(testSpace("b")))
	assert.ErrorIs(t, m.CreateSpace(testSpace("a")), schema.ErrExists)

	space, err := m.GetSpace("a")
	require.NoError(t, err)
	assert.Equal(t, "a", space.Name)
	_, err = m.GetSpace("missing")
	assert.ErrorIs(t, err, schema.ErrNotFound)

	spaces, err := m.ListSpaces()
	require.NoError(t, err)
	require.Len(t, spaces, 2)
	assert.Equal(t, "a", spaces[0].Name)
	assert.Equal(t, "b", spaces[1].Name)

	tag := &schema.Tag{
		Name: "person",
		Props: []schema.Property{
			{Name: "name", Type: volta.TypeString},
			{Name: "age", Type: volta.TypeInt64, Nullable: true},
		},
	}
	require.NoError(t, m.CreateTag("a", tag))
	assert.ErrorIs(t, m.CreateTag("a", tag), schema.ErrExists)
	assert.ErrorIs(t, m.CreateTag("missing", tag), schema.ErrNotFound)

	got, err := m.GetTag("a", "person")
	require.NoError(t, err)
	require.Len(t, got.Props, 2)
	assert.Equal(t, volta.TypeInt64, got.Props[1].Type)
	// The same name in another space is independent.
	_, err = m.GetTag("b", "person")
	assert.ErrorIs(t, err, schema.ErrNotFound)

	edge := &schema.Edge{
		Name:  "like",
		Props: []schema.Property{{Name: "likeness", Type: volta.TypeDouble}},
	}
	require.NoError(t, m.CreateEdge("a", edge))
	gotEdge, err := m.GetEdge("a", "like")
	require.NoError(t, err)
	assert.Equal(t, "like", gotEdge.Name)

	index := &schema.Index{Name: "person_name", Schema: "person", Fields: []string{"name"}}
	require.NoError(t, m.CreateIndex("a", index))
	edgeIndex := &schema.Index{Name: "like_idx", Schema: "like", IsEdge: true, Fields: []string{"likeness"}}
	require.NoError(t, m.CreateIndex("a", edgeIndex))

	tagIndexes, err := m.ListIndexes("a", false)
	require.NoError(t, err)
	require.Len(t, tagIndexes, 1)
	assert.Equal(t, "person_name", tagIndexes[0].Name)
	edgeIndexes, err := m.ListIndexes("a", true)
	require.NoError(t, err)
	require.Len(t, edgeIndexes, 1)

	require.NoError(t, m.DropTag("a", "person"))
	_, err = m.GetTag("a", "person")
	assert.ErrorIs(t, err, schema.ErrNotFound)
	assert.ErrorIs(t, m.DropTag("a", "person"), schema.ErrNotFound)

	// Dropping the space removes everything scoped to it.
	require.NoError(t, m.DropSpace("a"))
	_, err = m.GetEdge("a", "like")
	assert.ErrorIs(t, err, schema.ErrNotFound)
	_, err = m.GetIndex("a", "person_name")
	assert.ErrorIs(t, err, schema.ErrNotFound)
}

func TestMemStore(t *testing.T) {
	testManager(t, schema.NewMemStore())
}

func TestBadgerStore(t *testing.T) {
	store, err := schema.OpenBadger("", nil)
	require.NoError(t, err)
	defer store.Close()
	testManager(t, store)
}

func TestBadgerStorePersists(t *testing.T) {
	dir := t.TempDir()
	store, err := schema.OpenBadger(dir, nil)
	require.NoError(t, err)
	require.NoError(t, store.CreateSpace(testSpace("durable")))
	require.NoError(t, store.Close())

	store, err = schema.OpenBadger(dir, nil)
	require.NoError(t, err)
	defer store.Close()
	space, err := store.GetSpace("durable")
	require.NoError(t, err)
	assert.Equal(t, "durable", space.Name)
}

func TestCachedManager(t *testing.T) {
	cached, err := schema.NewCached(schema.NewMemStore(), 128)
	require.NoError(t, err)
	testManager(t, cached)
}

func TestCachedManagerInvalidation(t *testing.T) {
	inner := schema.NewMemStore()
	cached, err := schema.NewCached(inner, 128)
	require.NoError(t, err)
	require.NoError(t, cached.CreateSpace(testSpace("a")))
	tag := &schema.Tag{Name: "person", Props: []schema.Property{{Name: "name", Type: volta.TypeString}}}
	require.NoError(t, cached.CreateTag("a", tag))

	// Warm the cache, then drop through the cached layer; the read must
	// not serve the stale entry.
	_, err = cached.GetTag("a", "person")
	require.NoError(t, err)
	require.NoError(t, cached.DropTag("a", "person"))
	_, err = cached.GetTag("a", "person")
	assert.ErrorIs(t, err, schema.ErrNotFound)
}
