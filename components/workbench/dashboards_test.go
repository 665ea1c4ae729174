package workbench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStoreSeedsProtectedDefault(t *testing.T) {
	store := NewDashboardStore()

	def, ok := store.Get(store.DefaultID())
	require.True(t, ok)
	assert.Equal(t, "Executive Overview", def.Name)
	assert.True(t, def.System)

	assert.ErrorIs(t, store.Rename(def.ID, "Mine"), ErrSystemOwned)
	assert.ErrorIs(t, store.Delete(def.ID), ErrSystemOwned)
}

func TestDashboardStoreCreateNamesIncrement(t *testing.T) {
	store := NewDashboardStore()
	first := store.Create()
	second := store.Create()

	assert.Equal(t, "Dashboard 1", first.Name)
	assert.Equal(t, "Dashboard 2", second.Name)
	assert.NotEqual(t, first.ID, second.ID)

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, store.DefaultID(), list[0].ID)
}

func TestDashboardStoreDeleteGuards(t *testing.T) {
	store := NewDashboardStore()
	d := store.Create()

	assert.ErrorIs(t, store.Delete("missing"), ErrDashboardNotFound)
	require.NoError(t, store.Delete(d.ID))
	_, ok := store.Get(d.ID)
	assert.False(t, ok)
}

func TestDashboardStoreRename(t *testing.T) {
	store := NewDashboardStore()
	d := store.Create()

	assert.ErrorIs(t, store.Rename(d.ID, " "), ErrEmptyName)
	require.NoError(t, store.Rename(d.ID, " Q4 Review "))

	got, _ := store.Get(d.ID)
	assert.Equal(t, "Q4 Review", got.Name)
}

func TestDashboardStoreHandsOutCopies(t *testing.T) {
	store := NewDashboardStore()
	d := store.Create()
	_, err := store.AddWidget(d.ID, WidgetBar, WidgetSeed{})
	require.NoError(t, err)

	got, _ := store.Get(d.ID)
	got.Widgets[0].Title = "tampered"

	again, _ := store.Get(d.ID)
	assert.NotEqual(t, "tampered", again.Widgets[0].Title)
}
