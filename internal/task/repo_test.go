package task

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner/internal/clock"
	"planner/internal/storage"
)

func newRepoForTests(t *testing.T) (*Repository, *storage.Store, *clock.FakeClock) {
	t.Helper()
	store, err := storage.New(t.TempDir(), log.New(io.Discard, "", 0))
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	return NewRepository(store, clk), store, clk
}

func TestRepository_AddPrependsTask(t *testing.T) {
	repo, _, clk := newRepoForTests(t)

	first, ok := repo.Add("write report")
	require.True(t, ok)
	clk.Advance(time.Millisecond)
	second, ok := repo.Add("buy milk")
	require.True(t, ok)

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.False(t, list[0].Completed)
	assert.Equal(t, clk.Now(), list[0].CreatedAt)
}

func TestRepository_AddBlankTitleIsNoOp(t *testing.T) {
	repo, _, _ := newRepoForTests(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, ok := repo.Add(title)
		assert.False(t, ok, "title %q should be rejected", title)
	}
	assert.Empty(t, repo.List())
}

func TestRepository_ToggleIsInvolution(t *testing.T) {
	repo, _, _ := newRepoForTests(t)
	created, _ := repo.Add("stretch")

	require.True(t, repo.Toggle(created.ID))
	got, _ := repo.Get(created.ID)
	assert.True(t, got.Completed)

	require.True(t, repo.Toggle(created.ID))
	got, _ = repo.Get(created.ID)
	assert.False(t, got.Completed)
}

func TestRepository_ToggleUnknownIDIsNoOp(t *testing.T) {
	repo, _, _ := newRepoForTests(t)
	repo.Add("stretch")

	assert.False(t, repo.Toggle("nope"))
	assert.Len(t, repo.List(), 1)
}

func TestRepository_DeleteIsIdempotent(t *testing.T) {
	repo, _, _ := newRepoForTests(t)
	created, _ := repo.Add("stretch")

	assert.True(t, repo.Delete(created.ID))
	assert.False(t, repo.Delete(created.ID))
	assert.Empty(t, repo.List())
}

func TestRepository_UpdateTagsDropsExactDuplicates(t *testing.T) {
	repo, _, _ := newRepoForTests(t)
	created, _ := repo.Add("plan sprint")

	require.True(t, repo.UpdateTags(created.ID, []string{"work", "Work", "work", ""}))
	got, _ := repo.Get(created.ID)
	// Case-sensitive dedup: "work" and "Work" both survive.
	assert.Equal(t, []string{"work", "Work"}, got.Tags)
}

func TestRepository_UpdateDescription(t *testing.T) {
	repo, _, _ := newRepoForTests(t)
	created, _ := repo.Add("plan sprint")

	require.True(t, repo.UpdateDescription(created.ID, "before standup"))
	got, _ := repo.Get(created.ID)
	assert.Equal(t, "before standup", got.Description)

	assert.False(t, repo.UpdateDescription("nope", "x"))
}

func TestRepository_PersistsAcrossReopen(t *testing.T) {
	repo, store, clk := newRepoForTests(t)
	repo.Add("first")
	clk.Advance(time.Millisecond)
	repo.Add("second")

	reopened := NewRepository(store, clk)
	list := reopened.List()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
}
