package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farmxchain/farmx/pkg/collection"
)

type item struct {
	name  string
	kind  string
	price int
}

var items = []item{
	{"wheat", "grain", 30},
	{"rice", "grain", 45},
	{"mango", "fruit", 80},
	{"barley", "grain", 30},
}

func TestFilterAndCount(t *testing.T) {
	grains := collection.Filter(items, func(i item) bool { return i.kind == "grain" })
	assert.Len(t, grains, 3)
	assert.Equal(t, 3, collection.Count(items, func(i item) bool { return i.kind == "grain" }))

	none := collection.Filter(items, func(item) bool { return false })
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMapAndReduce(t *testing.T) {
	names := collection.Map(items, func(i item) string { return i.name })
	assert.Equal(t, []string{"wheat", "rice", "mango", "barley"}, names)

	total := collection.Reduce(items, 0, func(acc int, i item) int { return acc + i.price })
	assert.Equal(t, 185, total)
}

func TestFirstAndContains(t *testing.T) {
	got, ok := collection.First(items, func(i item) bool { return i.kind == "fruit" })
	assert.True(t, ok)
	assert.Equal(t, "mango", got.name)

	assert.False(t, collection.Contains(items, func(i item) bool { return i.kind == "dairy" }))
}

func TestGroupBy(t *testing.T) {
	g := collection.GroupBy(items, func(i item) string { return i.kind })
	assert.Len(t, g["grain"], 3)
	assert.Len(t, g["fruit"], 1)
}

func TestSortByIsStableAndCopies(t *testing.T) {
	sorted := collection.SortBy(items, func(a, b item) bool { return a.price < b.price })
	assert.Equal(t, []string{"wheat", "barley", "rice", "mango"},
		collection.Map(sorted, func(i item) string { return i.name }))
	assert.Equal(t, "wheat", items[0].name)
	assert.Equal(t, "rice", items[1].name)
}
