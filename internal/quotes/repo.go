package quotes

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
	"github.com/jmcalloway/insuquote-backend/pkg/pagination"
)

// Repository encapsulates quote persistence. Every query is scoped to the
// owning user; there is no path that reads another user's rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a quotes repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the quote and returns the persisted model.
func (r *Repository) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// FindByID loads a quote owned by userID.
func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// List returns a cursor page of the user's quotes, newest first.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, params ListParams) (QuotePageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursorValue := strings.TrimSpace(params.Cursor)
	decodedCursor, err := pagination.ParseCursor(cursorValue)
	if err != nil {
		return QuotePageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("user_id = ?", userID)
	query = applyFilters(query, params)

	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []models.Quote
	err = query.Order("created_at DESC").Order("id DESC").
		Limit(limitWithBuffer).
		Find(&records).Error
	if err != nil {
		return QuotePageDTO{}, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > normalizedLimit {
		resultRows = records[:normalizedLimit]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	total, err := r.count(ctx, userID, params)
	if err != nil {
		return QuotePageDTO{}, err
	}

	items := make([]QuoteDTO, 0, len(resultRows))
	for i := range resultRows {
		items = append(items, FromModel(&resultRows[i]))
	}

	return QuotePageDTO{
		Items:      items,
		Total:      total,
		NextCursor: nextCursor,
	}, nil
}

// Update persists the changed columns of an already-loaded quote.
func (r *Repository) Update(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("user_id = ? AND id = ?", quote.UserID, quote.ID).
		Updates(map[string]any{
			"client_name":    quote.ClientName,
			"client_email":   quote.ClientEmail,
			"client_phone":   quote.ClientPhone,
			"address":        quote.Address,
			"postal_code":    quote.PostalCode,
			"project_name":   quote.ProjectName,
			"project_type":   quote.ProjectType,
			"square_footage": quote.SquareFootage,
			"material_cost":  quote.MaterialCost,
			"labor_cost":     quote.LaborCost,
			"rebate_amount":  quote.RebateAmount,
			"amount":         quote.Amount,
			"notes":          quote.Notes,
			"updated_at":     time.Now().UTC(),
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, quote.UserID, quote.ID)
}

// UpdateStatus flips the status of an owned quote. Returns the affected count
// so the caller can distinguish "not found" from success.
func (r *Repository) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

// Delete removes an owned quote and reports whether a row was deleted.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.Quote{})
	return result.RowsAffected, result.Error
}

// ListStatsRecords loads the projection the dashboard aggregators consume.
func (r *Repository) ListStatsRecords(ctx context.Context, userID uuid.UUID) ([]StatsRecord, error) {
	var records []StatsRecord
	err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Select("id", "client_name", "amount", "status", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) count(ctx context.Context, userID uuid.UUID, params ListParams) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("user_id = ?", userID)
	query = applyFilters(query, params)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
