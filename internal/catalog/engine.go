package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/nexcommerce/catalogd/internal/domain"
	"github.com/nexcommerce/catalogd/pkg/common"
	"github.com/nexcommerce/catalogd/pkg/metrics"
	"go.uber.org/zap"
)

// SyncOutcome tallies one reconciliation run
type SyncOutcome struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

// ReconciliationEngine drives one fetch-map-upsert pass over the external
// catalog. Records are processed sequentially in source order; every
// record-level failure is absorbed into the Errors counter, and only a
// source-level fetch failure aborts the run.
type ReconciliationEngine struct {
	source Source
	repo   ProductRepository
	now    func() time.Time
}

func NewReconciliationEngine(source Source, repo ProductRepository) *ReconciliationEngine {
	return &ReconciliationEngine{
		source: source,
		repo:   repo,
		now:    time.Now,
	}
}

// Run reconciles the full fetched record set against the store. It fails
// only when the source is unreachable; overlapping runs are tolerated
// because classification is computed fresh per record and the store's
// unique constraints reject any duplicate insert that slips through.
func (e *ReconciliationEngine) Run(ctx context.Context) (SyncOutcome, error) {
	var out SyncOutcome

	entries, err := e.source.FetchAll(ctx)
	if err != nil {
		return out, err
	}

	for _, entry := range entries {
		e.reconcile(ctx, entry, &out)
	}

	metrics.SetGauge("catalog_sync_created", int64(out.Created))
	metrics.SetGauge("catalog_sync_updated", int64(out.Updated))
	metrics.SetGauge("catalog_sync_errors", int64(out.Errors))

	zap.L().Info("catalog sync completed",
		zap.Int("created", out.Created),
		zap.Int("updated", out.Updated),
		zap.Int("errors", out.Errors),
	)
	return out, nil
}

func (e *ReconciliationEngine) reconcile(ctx context.Context, entry Entry, out *SyncOutcome) {
	data, err := ToProduct(entry)
	if err != nil {
		out.Errors++
		zap.L().Warn("record mapping failed",
			zap.String("external_id", entry.Sys.ID),
			zap.Error(err),
		)
		return
	}

	existing, err := e.match(ctx, data)
	if err != nil {
		out.Errors++
		zap.L().Warn("record lookup failed",
			zap.String("external_id", data.ExternalID),
			zap.String("sku", data.Sku),
			zap.Error(err),
		)
		return
	}

	now := e.now()
	if existing != nil {
		apply(existing, data, now)
		if err := e.repo.Update(ctx, existing); err != nil {
			out.Errors++
			zap.L().Warn("record update failed",
				zap.String("external_id", data.ExternalID),
				zap.String("sku", data.Sku),
				zap.Error(err),
			)
			return
		}
		out.Updated++
		return
	}

	p := newProduct(data, now)
	if err := e.repo.Insert(ctx, p); err != nil {
		out.Errors++
		zap.L().Warn("record insert failed",
			zap.String("external_id", data.ExternalID),
			zap.String("sku", data.Sku),
			zap.Error(err),
		)
		return
	}
	out.Created++
}

// match classifies a record against the current store state: external id
// first, business key as fallback so an identifier rotation at the source
// does not duplicate a product that kept its sku. When both keys match
// different rows the record is rejected with a ConflictError instead of
// silently updating one of them.
func (e *ReconciliationEngine) match(ctx context.Context, data ProductData) (*domain.Product, error) {
	byExternal, err := e.repo.FindByExternalID(ctx, data.ExternalID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	bySku, err := e.repo.FindBySku(ctx, data.Sku)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if byExternal != nil && bySku != nil && byExternal.ID != bySku.ID {
		return nil, &ConflictError{
			ExternalID:    data.ExternalID,
			Sku:           data.Sku,
			ExternalRowID: byExternal.ID,
			SkuRowID:      bySku.ID,
		}
	}

	if byExternal != nil {
		return byExternal, nil
	}
	return bySku, nil
}

// apply overwrites every mutable attribute from the mapped record.
// LastSyncAt only moves forward; deletion state and system identity are
// untouched because the engine never restores or hard-deletes.
func apply(p *domain.Product, data ProductData, now time.Time) {
	p.ExternalID = data.ExternalID
	p.Sku = data.Sku
	p.Name = data.Name
	p.Brand = data.Brand
	p.Model = data.Model
	p.Category = data.Category
	p.Color = data.Color
	p.Price = data.Price
	p.Currency = data.Currency
	p.Stock = data.Stock
	p.ExternalCreatedAt = data.ExternalCreatedAt
	p.ExternalUpdatedAt = data.ExternalUpdatedAt
	if now.After(p.LastSyncAt) {
		p.LastSyncAt = now
	}
	p.UpdatedAt = now
}

func newProduct(data ProductData, now time.Time) *domain.Product {
	return &domain.Product{
		ID:                common.UUIDint64(),
		ExternalID:        data.ExternalID,
		Sku:               data.Sku,
		Name:              data.Name,
		Brand:             data.Brand,
		Model:             data.Model,
		Category:          data.Category,
		Color:             data.Color,
		Price:             data.Price,
		Currency:          data.Currency,
		Stock:             data.Stock,
		CreatedAt:         now,
		UpdatedAt:         now,
		ExternalCreatedAt: data.ExternalCreatedAt,
		ExternalUpdatedAt: data.ExternalUpdatedAt,
		LastSyncAt:        now,
	}
}
