package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/kitchenboard/pkg/enums"
)

// PrintTicket archives a rendered kitchen ticket so it can be reprinted.
type PrintTicket struct {
	ID            uuid.UUID       `gorm:"type:varchar(36);primaryKey"`
	GroupKey      string          `gorm:"type:varchar(255);not null"`
	RestaurantID  string          `gorm:"type:varchar(64)"`
	TableNumber   string          `gorm:"type:varchar(64)"`
	CustomerName  string          `gorm:"type:varchar(255)"`
	CustomerPhone string          `gorm:"type:varchar(64)"`
	Trigger       enums.Trigger   `gorm:"column:print_trigger;type:varchar(16);not null"`
	AutoStatus    bool            `gorm:"not null;default:false"`
	OrderIDs      string          `gorm:"column:order_ids;type:text;not null"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	BodyText      string          `gorm:"type:text;not null"`
	BodyHTML      string          `gorm:"column:body_html;type:text;not null"`
	PrintedAt     time.Time       `gorm:"not null"`
	CreatedAt     time.Time
}

// OrderIDList splits the stored member ids.
func (p PrintTicket) OrderIDList() []string {
	if p.OrderIDs == "" {
		return nil
	}
	return strings.Split(p.OrderIDs, ",")
}
