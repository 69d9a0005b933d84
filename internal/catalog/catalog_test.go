package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/kitchenboard/pkg/backend"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	restaurants []backend.Restaurant
	items       []backend.MenuItem
	itemsErr    error
}

func (f *fakeSource) ListRestaurants(context.Context) ([]backend.Restaurant, error) {
	return f.restaurants, nil
}

func (f *fakeSource) ListMenuItems(context.Context) ([]backend.MenuItem, error) {
	return f.items, f.itemsErr
}

func TestCatalogResolvesNamesWithFallbacks(t *testing.T) {
	source := &fakeSource{
		restaurants: []backend.Restaurant{{RestaurantID: "1", Name: "Casa Lupe"}},
		items:       []backend.MenuItem{{ItemID: "7", Name: "Tacos al pastor"}, {ItemID: "8"}},
	}
	cat, err := New(source, logger.New(logger.Options{ServiceName: "catalog-test"}))
	require.NoError(t, err)

	assert.Equal(t, "Restaurant #1", cat.RestaurantName("1"))
	require.NoError(t, cat.Refresh(context.Background()))

	assert.Equal(t, "Casa Lupe", cat.RestaurantName("1"))
	assert.Equal(t, "Restaurant #2", cat.RestaurantName("2"))
	assert.Equal(t, "Tacos al pastor", cat.ItemName("7"))
	assert.Equal(t, "Item #8", cat.ItemName("8"))
}

func TestCatalogPartialFailureKeepsPreviousTable(t *testing.T) {
	source := &fakeSource{items: []backend.MenuItem{{ItemID: "7", Name: "Pozole"}}}
	cat, err := New(source, logger.New(logger.Options{ServiceName: "catalog-test"}))
	require.NoError(t, err)
	require.NoError(t, cat.Refresh(context.Background()))

	source.itemsErr = errors.New("timeout")
	source.items = nil
	source.restaurants = []backend.Restaurant{{RestaurantID: "1", Name: "Casa"}}

	err = cat.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Pozole", cat.ItemName("7"))
	assert.Equal(t, "Casa", cat.RestaurantName("1"))
}
