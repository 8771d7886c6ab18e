package product

import (
	"context"

	"github.com/Harshalkatakiya/invoice-maker/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together product catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new catalog row. Duplicate names are permitted.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// List returns the full catalog ordered by product id.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).Order("product_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// MissingIDs performs a single batched existence lookup and returns the ids
// from the request that have no catalog row, preserving the request order.
// An empty result means every referenced product exists.
func (r *Repository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("product_id IN ?", ids).
		Pluck("product_id", &found).
		Error
	if err != nil {
		return nil, err
	}

	existing := make(map[int64]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}

	var missing []int64
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
