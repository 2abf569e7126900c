package services

import (
	"fmt"
	"testing"

	"groceryStore/models"
	"groceryStore/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPreferenceService(t *testing.T) PreferenceService {
	t.Helper()
	kv := repository.NewMemoryKVRepository()
	prefR, err := repository.NewPreferenceRepository(kv)
	require.NoError(t, err)
	return NewPreferenceService(prefR)
}

func TestThemeDefaultsToLight(t *testing.T) {
	ps := newTestPreferenceService(t)

	theme, err := ps.GetTheme("s1")
	require.NoError(t, err)
	assert.Equal(t, "light", theme)
}

func TestSetThemeRejectsUnknownValues(t *testing.T) {
	ps := newTestPreferenceService(t)

	assert.ErrorIs(t, ps.SetTheme("s1", "sepia"), models.ErrBadRequest)
	assert.NoError(t, ps.SetTheme("s1", "dark"))
}

func TestToggleTheme(t *testing.T) {
	ps := newTestPreferenceService(t)

	theme, err := ps.ToggleTheme("s1")
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	theme, err = ps.ToggleTheme("s1")
	require.NoError(t, err)
	assert.Equal(t, "light", theme)

	theme, err = ps.GetTheme("s1")
	require.NoError(t, err)
	assert.Equal(t, "light", theme)
}

func TestRecentlyViewedPrependsAndDedupes(t *testing.T) {
	ps := newTestPreferenceService(t)

	require.NoError(t, ps.AddRecentlyViewed("u1", testProduct(1, "Red Apples", 2.49)))
	require.NoError(t, ps.AddRecentlyViewed("u1", testProduct(2, "Bananas", 1.29)))
	require.NoError(t, ps.AddRecentlyViewed("u1", testProduct(1, "Red Apples", 2.49)))

	items, err := ps.GetRecentlyViewed("u1")
	require.NoError(t, err)
	require.Len(t, items, 2, "revisiting a product must not duplicate it")
	assert.Equal(t, 1, items[0].Id, "most recently viewed first")
	assert.Equal(t, 2, items[1].Id)
}

func TestRecentlyViewedCapsAtTen(t *testing.T) {
	ps := newTestPreferenceService(t)

	for i := 1; i <= 12; i++ {
		p := testProduct(i, fmt.Sprintf("Product %d", i), float64(i))
		require.NoError(t, ps.AddRecentlyViewed("u1", p))
	}

	items, err := ps.GetRecentlyViewed("u1")
	require.NoError(t, err)
	require.Len(t, items, 10)
	assert.Equal(t, 12, items[0].Id)
	assert.Equal(t, 3, items[9].Id, "oldest entries fall off the end")
}

func TestClearRecentlyViewed(t *testing.T) {
	ps := newTestPreferenceService(t)
	require.NoError(t, ps.AddRecentlyViewed("u1", testProduct(1, "Red Apples", 2.49)))

	require.NoError(t, ps.ClearRecentlyViewed("u1"))

	items, err := ps.GetRecentlyViewed("u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
