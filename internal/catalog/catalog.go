package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/kitchenboard/pkg/backend"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
	"go.uber.org/multierr"
)

// Source lists the restaurants and menu items used for display names.
type Source interface {
	ListRestaurants(ctx context.Context) ([]backend.Restaurant, error)
	ListMenuItems(ctx context.Context) ([]backend.MenuItem, error)
}

// Catalog caches id to name lookups. Lookups never fail; unknown ids fall back to a label.
type Catalog struct {
	source Source
	logg   *logger.Logger

	mu          sync.RWMutex
	restaurants map[string]string
	items       map[string]string
}

// New builds an empty catalog.
func New(source Source, logg *logger.Logger) (*Catalog, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Catalog{
		source:      source,
		logg:        logg,
		restaurants: map[string]string{},
		items:       map[string]string{},
	}, nil
}

// Refresh reloads both lookup tables. A table that fails to load keeps its previous contents.
func (c *Catalog) Refresh(ctx context.Context) error {
	var errs error

	restaurants, err := c.source.ListRestaurants(ctx)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("list restaurants: %w", err))
	} else {
		names := make(map[string]string, len(restaurants))
		for _, r := range restaurants {
			names[r.RestaurantID.String()] = r.Name
		}
		c.mu.Lock()
		c.restaurants = names
		c.mu.Unlock()
	}

	items, err := c.source.ListMenuItems(ctx)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("list menu items: %w", err))
	} else {
		names := make(map[string]string, len(items))
		for _, item := range items {
			names[item.ItemID.String()] = item.Name
		}
		c.mu.Lock()
		c.items = names
		c.mu.Unlock()
	}

	if errs != nil {
		c.logg.Warn(ctx, "catalog refresh incomplete: "+errs.Error())
	}
	return errs
}

// RestaurantName resolves a restaurant id.
func (c *Catalog) RestaurantName(id string) string {
	c.mu.RLock()
	name, ok := c.restaurants[id]
	c.mu.RUnlock()
	if !ok || name == "" {
		return "Restaurant #" + id
	}
	return name
}

// ItemName resolves a menu item id.
func (c *Catalog) ItemName(id string) string {
	c.mu.RLock()
	name, ok := c.items[id]
	c.mu.RUnlock()
	if !ok || name == "" {
		return "Item #" + id
	}
	return name
}
