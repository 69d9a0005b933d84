package board

import (
	"fmt"
	"sort"
	"time"

	"github.com/angelmondragon/kitchenboard/pkg/enums"
	"github.com/shopspring/decimal"
)

// Sentinels used in group keys when an order has no table or phone. Guests with neither
// collide into one group.
const (
	NoTable = "no-table"
	NoPhone = "no-phone"
)

// Group is the set of orders sharing a table number and customer phone; it prints as one ticket.
type Group struct {
	Key            string    `json:"key"`
	TableNumber    string    `json:"tableNumber"`
	CustomerPhone  string    `json:"customerPhone"`
	CustomerName   string    `json:"customerName"`
	RestaurantID   string    `json:"restaurantId"`
	FirstOrderTime time.Time `json:"firstOrderTime"`
	Orders         []Order   `json:"orders"`
}

// GroupKeyFor builds the grouping key of an order.
func GroupKeyFor(order Order) string {
	table := order.TableNumber
	if table == "" {
		table = NoTable
	}
	phone := order.CustomerPhone
	if phone == "" {
		phone = NoPhone
	}
	return fmt.Sprintf("table-%s-phone-%s", table, phone)
}

// GroupOrders groups in a single pass. Groups come out in first-seen order and members keep
// source order. The first order of a key seeds the group's display fields and first order time.
func GroupOrders(orders []Order) []Group {
	index := make(map[string]int, len(orders))
	groups := make([]Group, 0)
	for _, order := range orders {
		key := GroupKeyFor(order)
		if i, ok := index[key]; ok {
			groups[i].Orders = append(groups[i].Orders, order)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{
			Key:            key,
			TableNumber:    order.TableNumber,
			CustomerPhone:  order.CustomerPhone,
			CustomerName:   order.CreatedBy,
			RestaurantID:   order.RestaurantID,
			FirstOrderTime: order.CreatedAt,
			Orders:         []Order{order},
		})
	}
	return groups
}

// SortGroups returns a copy ordered by first order time. Ties keep their input order.
func SortGroups(groups []Group, direction enums.SortDirection) []Group {
	sorted := make([]Group, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		if direction == enums.SortDescending {
			return sorted[i].FirstOrderTime.After(sorted[j].FirstOrderTime)
		}
		return sorted[i].FirstOrderTime.Before(sorted[j].FirstOrderTime)
	})
	return sorted
}

// FindGroup returns the group with the given key.
func FindGroup(groups []Group, key string) (Group, bool) {
	for _, group := range groups {
		if group.Key == key {
			return group, true
		}
	}
	return Group{}, false
}

// OrderIDs lists member ids in member order.
func (g Group) OrderIDs() []string {
	ids := make([]string, 0, len(g.Orders))
	for _, order := range g.Orders {
		ids = append(ids, order.ID)
	}
	return ids
}

// Subtotal sums line totals of every member.
func (g Group) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, order := range g.Orders {
		total = total.Add(order.LineTotal())
	}
	return total
}

// withOrders copies the group header over a different member list.
func (g Group) withOrders(orders []Order) Group {
	out := g
	out.Orders = orders
	return out
}
