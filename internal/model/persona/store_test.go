package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreFindsSeededAssistant(t *testing.T) {
	store := NewMemoryStore(Seed())

	p, ok := store.FindByID(DefaultID)
	require.True(t, ok)
	assert.Equal(t, "EagleChat", p.Name)
	assert.NotEmpty(t, p.Directives)

	_, ok = store.FindByID("missing")
	assert.False(t, ok)
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	store := NewMemoryStore(Seed())

	list := store.List()
	list[0].Name = "changed"

	assert.Equal(t, "EagleChat", store.List()[0].Name)
}
