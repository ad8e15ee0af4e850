package dayindex

import (
	"testing"
	"time"

	"personal-planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteKey(n models.Note) models.DateKey {
	return models.DateKeyOf(n.Timestamp, time.UTC)
}

func note(id, ts string) models.Note {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return models.Note{ID: id, Text: "task " + id, Timestamp: t, Priority: models.PriorityNormal}
}

func ids(notes []models.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestRebuild_Empty(t *testing.T) {
	ix := New(noteKey)
	ix.Rebuild(nil)

	assert.Empty(t, ix.Keys())
	assert.Equal(t, 0, ix.Len())
}

func TestRebuild_SameDayDifferentHours(t *testing.T) {
	ix := New(noteKey)
	ix.Rebuild([]models.Note{
		note("a", "2024-03-01T09:00:00Z"),
		note("b", "2024-03-01T23:00:00Z"),
	})

	day := models.MustParseDateKey("2024-03-01")
	assert.Equal(t, []models.DateKey{day}, ix.Keys())
	assert.Equal(t, []string{"a", "b"}, ids(ix.Day(day)))
}

func TestRebuild_OrderInsensitiveMembership(t *testing.T) {
	records := []models.Note{
		note("a", "2024-03-01T09:00:00Z"),
		note("b", "2024-03-02T10:00:00Z"),
		note("c", "2024-03-01T11:00:00Z"),
		note("d", "2024-03-03T08:00:00Z"),
	}
	reversed := []models.Note{records[3], records[2], records[1], records[0]}

	forward := New(noteKey)
	forward.Rebuild(records)
	backward := New(noteKey)
	backward.Rebuild(reversed)

	require.Equal(t, forward.Keys(), backward.Keys())
	for _, k := range forward.Keys() {
		assert.ElementsMatch(t, ids(forward.Day(k)), ids(backward.Day(k)), k.String())
	}

	// arrival order is kept within a day
	day := models.MustParseDateKey("2024-03-01")
	assert.Equal(t, []string{"a", "c"}, ids(forward.Day(day)))
	assert.Equal(t, []string{"c", "a"}, ids(backward.Day(day)))
}

func TestRebuild_DeduplicatesByID(t *testing.T) {
	ix := New(noteKey)
	first := note("a", "2024-03-01T09:00:00Z")
	again := first
	again.Completed = true

	ix.Rebuild([]models.Note{first, note("b", "2024-03-01T10:00:00Z"), again})

	day := models.MustParseDateKey("2024-03-01")
	got := ix.Day(day)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.True(t, got[0].Completed)
	assert.Equal(t, 2, ix.Len())
}

func TestRebuild_ReplacesPreviousContents(t *testing.T) {
	ix := New(noteKey)
	ix.Patch(note("old", "2024-01-01T09:00:00Z"))

	ix.Rebuild([]models.Note{note("new", "2024-02-01T09:00:00Z")})

	_, ok := ix.Find("old")
	assert.False(t, ok)
	assert.False(t, ix.Has(models.MustParseDateKey("2024-01-01")))
	assert.True(t, ix.Has(models.MustParseDateKey("2024-02-01")))
}

func TestPatch(t *testing.T) {
	day := models.MustParseDateKey("2024-05-10")

	t.Run("creates bucket when absent", func(t *testing.T) {
		ix := New(noteKey)
		ix.Patch(note("n1", "2024-05-10T08:00:00Z"))

		assert.Equal(t, []string{"n1"}, ids(ix.Day(day)))
	})

	t.Run("appends in arrival order, not time of day", func(t *testing.T) {
		ix := New(noteKey)
		ix.Patch(note("late", "2024-05-10T22:00:00Z"))
		ix.Patch(note("early", "2024-05-10T06:00:00Z"))

		assert.Equal(t, []string{"late", "early"}, ids(ix.Day(day)))
	})

	t.Run("same id is stored exactly once", func(t *testing.T) {
		ix := New(noteKey)
		n := note("n1", "2024-05-10T08:00:00Z")
		ix.Patch(n)
		ix.Patch(note("n2", "2024-05-10T09:00:00Z"))
		n.Text = "edited"
		ix.Patch(n)

		got := ix.Day(day)
		require.Len(t, got, 2)
		assert.Equal(t, "n1", got[0].ID)
		assert.Equal(t, "edited", got[0].Text)
	})

	t.Run("moved record leaves its old bucket", func(t *testing.T) {
		ix := New(noteKey)
		ix.Patch(note("n1", "2024-05-10T08:00:00Z"))
		ix.Patch(note("n1", "2024-05-11T08:00:00Z"))

		assert.False(t, ix.Has(day))
		assert.Equal(t, []string{"n1"}, ids(ix.Day(day.AddDays(1))))
		assert.Equal(t, 1, ix.Len())
	})
}

func TestMutate_AcrossAllDays(t *testing.T) {
	ix := New(noteKey)
	ix.Rebuild([]models.Note{
		note("n1", "2024-05-10T08:00:00Z"),
		note("n2", "2024-05-11T08:00:00Z"),
		note("n3", "2024-05-12T08:00:00Z"),
	})

	n := ix.Mutate(
		func(r models.Note) bool { return r.ID == "n3" },
		func(r models.Note) models.Note { r.Completed = !r.Completed; return r },
	)

	assert.Equal(t, 1, n)
	got, ok := ix.Find("n3")
	require.True(t, ok)
	assert.True(t, got.Completed)
	for _, id := range []string{"n1", "n2"} {
		other, _ := ix.Find(id)
		assert.False(t, other.Completed, id)
	}
}

func TestMutate_TwiceRestoresOriginal(t *testing.T) {
	ix := New(noteKey)
	ix.Patch(note("n1", "2024-05-10T08:00:00Z"))
	toggle := func(r models.Note) models.Note { r.Completed = !r.Completed; return r }
	match := func(r models.Note) bool { return r.ID == "n1" }

	ix.Mutate(match, toggle)
	ix.Mutate(match, toggle)

	got, _ := ix.Find("n1")
	assert.False(t, got.Completed)
}

func TestDay_ReturnsCopy(t *testing.T) {
	ix := New(noteKey)
	ix.Patch(note("n1", "2024-05-10T08:00:00Z"))
	day := models.MustParseDateKey("2024-05-10")

	got := ix.Day(day)
	got[0].Text = "changed"

	again, _ := ix.Find("n1")
	assert.Equal(t, "task n1", again.Text)
}
