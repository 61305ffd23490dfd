package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	ID   string
	Tags []string
}

func newRowTable(seed ...testRow) *memoryTable[testRow] {
	return newMemoryTable(seed,
		func(r testRow) string { return r.ID },
		func(r testRow) testRow { r.Tags = cloneStrings(r.Tags); return r },
	)
}

func TestMemoryTableReturnsCopies(t *testing.T) {
	table := newRowTable(testRow{ID: "a", Tags: []string{"x"}})

	got, err := table.find("a")
	require.NoError(t, err)
	got.Tags[0] = "mutated"

	again, err := table.find("a")
	require.NoError(t, err)
	assert.Equal(t, "x", again.Tags[0])
}

func TestMemoryTableUpdateIsAtomic(t *testing.T) {
	table := newRowTable(testRow{ID: "a", Tags: []string{"x"}})

	_, err := table.update("a", func(r *testRow) error {
		r.Tags = append(r.Tags, "y")
		return errors.New("reject")
	})
	require.Error(t, err)

	got, _ := table.find("a")
	assert.Equal(t, []string{"x"}, got.Tags)

	_, err = table.update("missing", func(*testRow) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTableInsertUpsertRemove(t *testing.T) {
	table := newRowTable(testRow{ID: "a"})

	assert.ErrorIs(t, table.insert(testRow{ID: "a"}), ErrDuplicate)
	require.NoError(t, table.insert(testRow{ID: "b"}))
	table.upsert(testRow{ID: "b", Tags: []string{"z"}})
	table.upsert(testRow{ID: "c"})

	all := table.all()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, []string{"z"}, all[1].Tags)

	require.NoError(t, table.remove("a"))
	assert.ErrorIs(t, table.remove("a"), ErrNotFound)
	assert.Equal(t, 2, table.count(nil))
}
