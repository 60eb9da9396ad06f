package inquiries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenacres/greenacres-backend/pkg/db/models"
	"github.com/greenacres/greenacres-backend/pkg/enums"
	"github.com/greenacres/greenacres-backend/pkg/pagination"
)

// Repository exposes inquiry persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an inquiries repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists an inquiry and its items atomically. Item positions are
// assigned from slice order.
func (r *Repository) Create(ctx context.Context, inquiry *models.Inquiry, items []models.InquiryItem) (*models.Inquiry, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(inquiry).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InquiryID = inquiry.ID
			items[i].Position = i
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	inquiry.Items = items
	return inquiry, nil
}

// FindByID loads an inquiry with its items in submission order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&inquiry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// ListByUser returns one cursor page of the user's inquiries, newest first.
// It fetches one extra row to detect whether a next page exists.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Inquiry, *string, error) {
	return r.list(ctx, params, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", userID)
	})
}

// ListAll returns one cursor page across all users, newest first, optionally
// filtered by status.
func (r *Repository) ListAll(ctx context.Context, status *enums.InquiryStatus, params pagination.Params) ([]models.Inquiry, *string, error) {
	return r.list(ctx, params, func(q *gorm.DB) *gorm.DB {
		if status != nil {
			q = q.Where("status = ?", *status)
		}
		return q
	})
}

func (r *Repository) list(ctx context.Context, params pagination.Params, filter func(*gorm.DB) *gorm.DB) ([]models.Inquiry, *string, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, err
	}

	q := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))
	q = filter(q)
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Inquiry
	if err := q.Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var next *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		encoded := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		next = &encoded
	}
	return rows, next, nil
}

// UpdateStatus persists a status change. The caller is responsible for
// transition rules.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.InquiryStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Inquiry{}).
		Where("id = ?", id).
		Update("status", status).Error
}
