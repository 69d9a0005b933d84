package tickets

import (
	"context"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/repo"
	"github.com/angelmondragon/kitchenboard/pkg/db/models"
	"github.com/angelmondragon/kitchenboard/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists printed tickets.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, ticket *models.PrintTicket) error
	Get(ctx context.Context, id uuid.UUID) (*models.PrintTicket, error)
	List(ctx context.Context, params listTicketsParams) ([]models.PrintTicket, *pagination.Cursor, error)
	DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a ticket repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

type listTicketsParams struct {
	Limit    int
	Cursor   *pagination.Cursor
	GroupKey string
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{Base: r.Bind(tx)}
}

func (r *repositoryImpl) Create(ctx context.Context, ticket *models.PrintTicket) error {
	return r.DB(ctx).Create(ticket).Error
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.PrintTicket, error) {
	var ticket models.PrintTicket
	if err := r.DB(ctx).Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listTicketsParams) ([]models.PrintTicket, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	query := r.DB(ctx).Model(&models.PrintTicket{})
	if params.GroupKey != "" {
		query = query.Where("group_key = ?", params.GroupKey)
	}
	if params.Cursor != nil {
		query = query.Where("created_at < ? OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var tickets []models.PrintTicket
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&tickets).Error; err != nil {
		return nil, nil, err
	}
	page, next := pagination.Page(tickets, params.Limit, func(t models.PrintTicket) pagination.Cursor {
		return pagination.Cursor{CreatedAt: t.CreatedAt, ID: t.ID}
	})
	return page, next, nil
}

func (r *repositoryImpl) DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	result := r.Conn(ctx, tx).Where("printed_at < ?", cutoff).Delete(&models.PrintTicket{})
	return result.RowsAffected, result.Error
}
