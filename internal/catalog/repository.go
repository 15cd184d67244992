package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nexcommerce/catalogd/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository is the persistence boundary for catalog records.
// Lookups used by the sync engine span soft-deleted rows because the
// uniqueness of external id and sku does too.
type ProductRepository interface {
	// FindByExternalID retrieves a product by its source-assigned id,
	// including soft-deleted rows. Returns ErrNotFound when absent.
	FindByExternalID(ctx context.Context, externalID string) (*domain.Product, error)

	// FindBySku retrieves a product by business key, including
	// soft-deleted rows. Returns ErrNotFound when absent.
	FindBySku(ctx context.Context, sku string) (*domain.Product, error)

	// FindByID retrieves a non-deleted product by primary key.
	FindByID(ctx context.Context, id int64) (*domain.Product, error)

	// Insert creates a new product. Returns ErrConstraint on a
	// duplicate external id or sku.
	Insert(ctx context.Context, p *domain.Product) error

	// Update persists every field of an existing product, soft-deleted
	// or not. Returns ErrNotFound if the row no longer exists.
	Update(ctx context.Context, p *domain.Product) error

	// SoftDelete marks a product deleted without removing it.
	SoftDelete(ctx context.Context, id int64) error

	// Restore clears the deletion mark and returns the row.
	Restore(ctx context.Context, id int64) (*domain.Product, error)

	// List returns a filtered, sorted page of non-deleted products plus
	// the total match count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error)
}

// SyncLogRepository persists per-run outcome records
type SyncLogRepository interface {
	Create(ctx context.Context, log *domain.SyncLog) error
}

// ProductFilter carries the read-path query parameters
type ProductFilter struct {
	Name      string
	Category  string
	Brand     string
	Color     string
	MinPrice  *float64
	MaxPrice  *float64
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Unscoped().Where("external_id = ?", externalID).First(&p).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *GormProductRepository) FindBySku(ctx context.Context, sku string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Unscoped().Where("sku = ?", sku).First(&p).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *GormProductRepository) Insert(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return translateErr(err)
	}
	return nil
}

func (r *GormProductRepository) Update(ctx context.Context, p *domain.Product) error {
	res := r.db.WithContext(ctx).Unscoped().Save(p)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update product %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (r *GormProductRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete product %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GormProductRepository) Restore(ctx context.Context, id int64) (*domain.Product, error) {
	res := r.db.WithContext(ctx).Unscoped().Model(&domain.Product{}).
		Where("id = ?", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return nil, translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("restore product %d: %w", id, ErrNotFound)
	}
	return r.FindByID(ctx, id)
}

// listSortColumns whitelists sortable columns to keep user input out of
// the ORDER BY clause
var listSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"category":   "category",
	"brand":      "brand",
	"created_at": "created_at",
}

func (r *GormProductRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{})

	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Category != "" {
		query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(filter.Category)+"%")
	}
	if filter.Brand != "" {
		query = query.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(filter.Brand)+"%")
	}
	if filter.Color != "" {
		query = query.Where("LOWER(color) LIKE ?", "%"+strings.ToLower(filter.Color)+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	sortCol, ok := listSortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var rows []domain.Product
	err := query.Order(sortCol + " " + order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return rows, total, nil
}

// GormSyncLogRepository is the GORM implementation of SyncLogRepository
type GormSyncLogRepository struct {
	db *gorm.DB
}

func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

func (r *GormSyncLogRepository) Create(ctx context.Context, log *domain.SyncLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// translateErr maps driver errors onto the package taxonomy so callers
// never depend on gorm sentinel values
func translateErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%v: %w", err, ErrConstraint)
	default:
		return err
	}
}
