package adminapi

import (
	"math"
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/nexcommerce/catalogd/internal/domain"
	"github.com/nexcommerce/catalogd/internal/webserver"
	"gorm.io/gorm"
)

// registerReportRoutes registers the token-protected analytical reports
func registerReportRoutes(ws *webserver.WebServer) {
	ws.SecureGET("/reports/product-stats", productStatsReport)
	ws.SecureGET("/reports/price-stats", priceStatsReport)
	ws.SecureGET("/reports/category-report", categoryReport)
	ws.SecureGET("/reports/custom-report", customReport)
}

func productStatsReport(c echo.Context) error {
	active := applyDateFilter(c, GetDB(c).Model(&domain.Product{}))
	all := applyDateFilter(c, GetDB(c).Unscoped().Model(&domain.Product{}))

	var activeCount, allCount int64
	if err := active.Count(&activeCount).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute product stats", err.Error())
	}
	if err := all.Count(&allCount).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute product stats", err.Error())
	}

	deleted := allCount - activeCount
	var deletedPct float64
	if allCount > 0 {
		deletedPct = float64(deleted) / float64(allCount) * 100
	}

	return ok(c, map[string]interface{}{
		"total_products":     allCount,
		"active_products":    activeCount,
		"deleted_products":   deleted,
		"deleted_percentage": round2(deletedPct),
		"active_percentage":  round2(100 - deletedPct),
	})
}

func priceStatsReport(c echo.Context) error {
	base := applyDateFilter(c, GetDB(c).Model(&domain.Product{}))

	var total, withPrice int64
	if err := base.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute price stats", err.Error())
	}
	priced := applyDateFilter(c, GetDB(c).Model(&domain.Product{})).Where("price IS NOT NULL")
	if err := priced.Count(&withPrice).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute price stats", err.Error())
	}

	var agg struct {
		AvgPrice *float64
		MinPrice *float64
		MaxPrice *float64
	}
	err := GetDB(c).Model(&domain.Product{}).
		Select("AVG(price) AS avg_price, MIN(price) AS min_price, MAX(price) AS max_price").
		Where("price IS NOT NULL").
		Scan(&agg).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute price stats", err.Error())
	}

	var withPct float64
	if total > 0 {
		withPct = float64(withPrice) / float64(total) * 100
	}

	return ok(c, map[string]interface{}{
		"total_active_products":    total,
		"products_with_price":      withPrice,
		"products_without_price":   total - withPrice,
		"with_price_percentage":    round2(withPct),
		"without_price_percentage": round2(100 - withPct),
		"average_price":            deref(agg.AvgPrice),
		"min_price":                deref(agg.MinPrice),
		"max_price":                deref(agg.MaxPrice),
	})
}

func categoryReport(c echo.Context) error {
	type categoryRow struct {
		Category        string   `json:"category"`
		TotalProducts   int64    `json:"total_products"`
		ActiveProducts  int64    `json:"active_products"`
		DeletedProducts int64    `json:"deleted_products"`
		AveragePrice    *float64 `json:"average_price"`
	}

	var rows []categoryRow
	err := GetDB(c).Unscoped().Model(&domain.Product{}).
		Select("category, " +
			"COUNT(*) AS total_products, " +
			"COUNT(CASE WHEN deleted_at IS NULL THEN 1 END) AS active_products, " +
			"COUNT(CASE WHEN deleted_at IS NOT NULL THEN 1 END) AS deleted_products, " +
			"AVG(price) AS average_price").
		Group("category").
		Order("category").
		Scan(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute category report", err.Error())
	}
	return ok(c, rows)
}

func customReport(c echo.Context) error {
	db := GetDB(c)

	type brandRow struct {
		Brand        string   `json:"brand"`
		ProductCount int64    `json:"product_count"`
		AveragePrice *float64 `json:"average_price"`
	}
	var topBrands []brandRow
	if err := db.Model(&domain.Product{}).
		Select("brand, COUNT(*) AS product_count, AVG(price) AS average_price").
		Group("brand").
		Order("COUNT(*) DESC").
		Limit(10).
		Scan(&topBrands).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute custom report", err.Error())
	}

	var lowStock []domain.Product
	if err := db.Where("stock < ?", 10).
		Order("stock ASC").
		Limit(10).
		Find(&lowStock).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute custom report", err.Error())
	}

	var recent []domain.Product
	if err := db.Where("created_at >= ?", time.Now().Add(-30*24*time.Hour)).
		Order("created_at DESC").
		Limit(10).
		Find(&recent).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute custom report", err.Error())
	}

	type bucketRow struct {
		Range string `json:"range"`
		Count int64  `json:"count"`
	}
	var buckets []bucketRow
	if err := db.Model(&domain.Product{}).
		Select("CASE " +
			"WHEN price < 100 THEN '$0-$99' " +
			"WHEN price < 500 THEN '$100-$499' " +
			"WHEN price < 1000 THEN '$500-$999' " +
			"WHEN price < 2000 THEN '$1000-$1999' " +
			"ELSE '$2000+' END AS range, " +
			"COUNT(*) AS count").
		Where("price IS NOT NULL").
		Group("range").
		Order("MIN(price) ASC").
		Scan(&buckets).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute custom report", err.Error())
	}

	return ok(c, map[string]interface{}{
		"top_brands":               topBrands,
		"low_stock_products":       lowStock,
		"recently_added_products":  recent,
		"price_distribution":       buckets,
	})
}

// applyDateFilter narrows a product query to a created_at window when
// start_date / end_date query params are present
func applyDateFilter(c echo.Context, db *gorm.DB) *gorm.DB {
	if v := c.QueryParam("start_date"); v != "" {
		if t, err := dateparse.ParseAny(v); err == nil {
			db = db.Where("created_at >= ?", t)
		}
	}
	if v := c.QueryParam("end_date"); v != "" {
		if t, err := dateparse.ParseAny(v); err == nil {
			db = db.Where("created_at <= ?", t)
		}
	}
	return db
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
