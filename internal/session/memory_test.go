package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiamF-2261667/fruckr-sub001/internal/cart"
)

func TestMemoryStore_CartRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c, err := store.LoadCart(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, c)

	saved := cart.New()
	require.NoError(t, saved.AddItem("ft-1", cart.Item{Name: "Taco", Quantity: 2, Price: 3.50}))
	require.NoError(t, store.SaveCart(ctx, "u1", saved))

	loaded, err := store.LoadCart(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "ft-1", loaded.FoodtruckID)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)

	require.NoError(t, store.DeleteCart(ctx, "u1"))
	loaded, err = store.LoadCart(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStore_ValuesAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.SetValue(ctx, "u1", KeyCurrentFoodtruck, "ft-9"))
	require.NoError(t, store.SetValue(ctx, "u2", KeyCurrentFoodtruck, "ft-3"))

	var ftID string
	ok, err := store.GetValue(ctx, "u1", KeyCurrentFoodtruck, &ftID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ft-9", ftID)

	require.NoError(t, store.Clear(ctx, "u1"))

	ok, err = store.GetValue(ctx, "u1", KeyCurrentFoodtruck, &ftID)
	require.NoError(t, err)
	assert.False(t, ok)

	// other identities untouched
	ok, err = store.GetValue(ctx, "u2", KeyCurrentFoodtruck, &ftID)
	require.NoError(t, err)
	assert.True(t, ok)
}
