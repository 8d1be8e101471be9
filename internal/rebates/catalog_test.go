package rebates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogReturnsAllPrograms(t *testing.T) {
	entries := Catalog("")
	require.Len(t, entries, 8)

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		assert.NotEmpty(t, entry.Name)
		assert.NotEmpty(t, entry.Provider)
		assert.NotEmpty(t, entry.WebsiteURL)
		assert.False(t, seen[entry.ID], "duplicate id %s", entry.ID)
		seen[entry.ID] = true
	}
}

func TestCatalogSearchIsCaseInsensitive(t *testing.T) {
	byName := Catalog("enbridge")
	require.Len(t, byName, 2)
	assert.Equal(t, "RB-001", byName[0].ID)
	assert.Equal(t, "RB-006", byName[1].ID)

	byID := Catalog("rb-004")
	require.Len(t, byID, 1)
	assert.Equal(t, "Renovate Lanark", byID[0].Name)

	assert.Empty(t, Catalog("no such program"))
}

func TestCatalogEntryByID(t *testing.T) {
	entry, ok := CatalogEntryByID(" rb-007 ")
	require.True(t, ok)
	assert.Equal(t, "Better Homes Kingston", entry.Name)

	_, ok = CatalogEntryByID("RB-099")
	assert.False(t, ok)
}

func TestCatalogReturnsCopy(t *testing.T) {
	first := Catalog("")
	first[0].Name = "mutated"

	fresh := Catalog("")
	assert.Equal(t, "Enbridge HER+ Program", fresh[0].Name)
}
