package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type room struct {
	Name   string
	Type   string
	Status string
}

var rooms = []room{
	{Name: "Muhabura", Type: "classroom", Status: "operational"},
	{Name: "Chem Lab", Type: "laboratory", Status: "maintenance"},
	{Name: "Room B", Type: "classroom", Status: "maintenance"},
	{Name: "Library", Type: "library", Status: "operational"},
}

func byType(r room) string   { return r.Type }
func byStatus(r room) string { return r.Status }
func byName(r room) string   { return r.Name }

func TestWildcardsMatchEverything(t *testing.T) {
	for _, v := range []string{"", " ", "all", "ALL", "All"} {
		assert.True(t, IsWildcard(v), v)
		assert.Nil(t, Equal(v, byType))
	}
	assert.Equal(t, rooms, Apply(rooms, Equal("all", byType), Contains("", byName)))
}

func TestApplyIsCommutative(t *testing.T) {
	typeFirst := Apply(Apply(rooms, Equal("classroom", byType)), Equal("operational", byStatus))
	statusFirst := Apply(Apply(rooms, Equal("operational", byStatus)), Equal("classroom", byType))
	combined := Apply(rooms, Equal("operational", byStatus), Equal("classroom", byType))

	assert.Equal(t, typeFirst, statusFirst)
	assert.Equal(t, typeFirst, combined)
	assert.Equal(t, []room{rooms[0]}, combined)
}

func TestApplyIsIdempotent(t *testing.T) {
	preds := []Predicate[room]{Equal("maintenance", byStatus)}
	once := Apply(rooms, preds...)
	twice := Apply(once, preds...)
	assert.Equal(t, once, twice)
	assert.Len(t, once, 2)
}

func TestContainsIgnoresCaseAcrossFields(t *testing.T) {
	got := Apply(rooms, Contains("LAB", byName, byType))
	assert.Equal(t, []room{rooms[1]}, got)

	got = Apply(rooms, Contains("libr", byName, byType))
	assert.Equal(t, []room{rooms[3]}, got)
}

func TestOrAndIn(t *testing.T) {
	got := Apply(rooms, Or(Equal("library", byType), In([]string{"Room B"}, byName)))
	assert.Equal(t, []room{rooms[2], rooms[3]}, got)

	assert.Empty(t, Apply(rooms, Or[room]()))
	assert.Empty(t, Apply(rooms, In(nil, byName)))
}

func TestApplyNeverReturnsNil(t *testing.T) {
	assert.NotNil(t, Apply[room](nil))
}
