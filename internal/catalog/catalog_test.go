package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubugingoapp/ubugingo-server/internal/domain"
)

func buildCatalog(t *testing.T, chapters ...int) *Catalog {
	t.Helper()
	entries := make([]domain.Chapter, 0, len(chapters))
	for _, n := range chapters {
		entries = append(entries, domain.Chapter{
			Book:    "Itangiriro",
			Chapter: n,
			VideoID: "dQw4w9WgXcQ",
		})
	}
	return New("Itangiriro", entries)
}

func TestNewCatalog_SortsAscending(t *testing.T) {
	c := buildCatalog(t, 3, 1, 2)

	var order []int
	for _, e := range c.Entries() {
		order = append(order, e.Chapter)
	}
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestNewCatalog_DedupesKeepingFirst(t *testing.T) {
	entries := []domain.Chapter{
		{Book: "Kuva", Chapter: 2, Verses: 10},
		{Book: "Kuva", Chapter: 2, Verses: 99},
		{Book: "Kuva", Chapter: 1, Verses: 5},
	}
	c := New("Kuva", entries)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, 10, c.FindByChapter(2).Verses)
}

func TestUpNext_ReturnsAtMostLimit(t *testing.T) {
	c := buildCatalog(t, 1, 2, 3, 4, 5, 6, 7)

	next := c.UpNext(1, 4)
	require.Len(t, next, 4)
	// Contiguous run immediately after the current chapter.
	for i, e := range next {
		assert.Equal(t, 2+i, e.Chapter)
	}
}

func TestUpNext_ShortTail(t *testing.T) {
	c := buildCatalog(t, 1, 2, 3)

	next := c.UpNext(2, 4)
	require.Len(t, next, 1)
	assert.Equal(t, 3, next[0].Chapter)

	assert.Empty(t, c.UpNext(3, 4))
}

func TestUpNext_AbsentCurrentChapter(t *testing.T) {
	c := buildCatalog(t, 1, 2, 3)
	assert.Empty(t, c.UpNext(42, 4))
}

func TestUpNext_DefaultLimit(t *testing.T) {
	c := buildCatalog(t, 1, 2, 3, 4, 5, 6, 7, 8)
	assert.Len(t, c.UpNext(1, 0), DefaultUpNextLimit)
}

func TestFindByChapter(t *testing.T) {
	c := buildCatalog(t, 1, 5, 9)

	require.NotNil(t, c.FindByChapter(5))
	assert.Equal(t, 5, c.FindByChapter(5).Chapter)
	assert.Nil(t, c.FindByChapter(2))
}

func TestHasAudio(t *testing.T) {
	c := buildCatalog(t, 1, 3)

	assert.True(t, c.HasAudio(1))
	assert.False(t, c.HasAudio(2))
	assert.True(t, c.HasAudio(3))
}

func TestHasAudio_IncludesNonPlayable(t *testing.T) {
	c := New("Kuva", []domain.Chapter{
		{Book: "Kuva", Chapter: 1}, // unresolved, no VideoID
	})

	// Still listed and enumerable, just not a navigation target.
	assert.True(t, c.HasAudio(1))
	assert.False(t, c.FindByChapter(1).Playable())
}

func TestNextPlayable_SkipsUnresolved(t *testing.T) {
	c := New("Kuva", []domain.Chapter{
		{Book: "Kuva", Chapter: 1, VideoID: "aaaaaaaaaaa"},
		{Book: "Kuva", Chapter: 2}, // non-playable
		{Book: "Kuva", Chapter: 3, VideoID: "ccccccccccc"},
	})

	next := c.NextPlayable(1)
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Chapter)
}

func TestNextPlayable_NoSuccessor(t *testing.T) {
	c := buildCatalog(t, 1, 2, 3)
	assert.Nil(t, c.NextPlayable(3))
}

func TestPrevPlayable(t *testing.T) {
	c := buildCatalog(t, 1, 2, 3)

	prev := c.PrevPlayable(3)
	require.NotNil(t, prev)
	assert.Equal(t, 2, prev.Chapter)

	assert.Nil(t, c.PrevPlayable(1))
}

func TestEmptyCatalog(t *testing.T) {
	c := Empty("Zaburi")

	assert.True(t, c.IsEmpty())
	assert.Equal(t, "Zaburi", c.Book())
	assert.Empty(t, c.UpNext(1, 4))
	assert.Nil(t, c.NextPlayable(0))
}
