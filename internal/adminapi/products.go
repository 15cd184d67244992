package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nexcommerce/catalogd/internal/catalog"
	"github.com/nexcommerce/catalogd/internal/domain"
	"github.com/nexcommerce/catalogd/internal/webserver"
	"github.com/nexcommerce/catalogd/pkg/common"
)

// registerProductRoutes registers the catalog read path and the manual
// sync trigger
func registerProductRoutes(ws *webserver.WebServer) {
	ws.ApiGET("/products", listProducts)
	ws.ApiGET("/products/:id", getProduct)
	ws.ApiDELETE("/products/:id", deleteProduct)
	ws.ApiPOST("/products/:id/restore", restoreProduct)
	ws.ApiPOST("/products/sync", manualSync)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	filter := catalog.ProductFilter{
		Name:      strings.TrimSpace(c.QueryParam("name")),
		Category:  strings.TrimSpace(c.QueryParam("category")),
		Brand:     strings.TrimSpace(c.QueryParam("brand")),
		Color:     strings.TrimSpace(c.QueryParam("color")),
		Page:      page,
		PageSize:  pageSize,
		SortBy:    strings.TrimSpace(c.QueryParam("sort")),
		SortOrder: strings.TrimSpace(c.QueryParam("order")),
	}
	if v := c.QueryParam("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}

	rows, total, err := GetAppContext(c).ProductRepo().List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := GetAppContext(c).ProductRepo().FindByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetAppContext(c).ProductRepo().SoftDelete(c.Request().Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	logOprAction(c, "delete_product", "product "+c.Param("id")+" soft-deleted")
	return ok(c, map[string]interface{}{"id": id})
}

func restoreProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := GetAppContext(c).ProductRepo().Restore(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to restore product", err.Error())
	}
	logOprAction(c, "restore_product", "product "+c.Param("id")+" restored")
	return ok(c, p)
}

// manualSync triggers a reconciliation run and returns its counts.
// Record-level errors are reflected in the counters, not in the status;
// only an unreachable source fails the request.
func manualSync(c echo.Context) error {
	outcome, err := GetAppContext(c).SyncScheduler().TriggerManual(c.Request().Context())
	if err != nil {
		if errors.Is(err, catalog.ErrSourceUnavailable) {
			return fail(c, http.StatusBadGateway, "SOURCE_UNAVAILABLE", "Catalog source unreachable", err.Error())
		}
		return fail(c, http.StatusInternalServerError, "SYNC_FAILED", "Catalog sync failed", err.Error())
	}
	return ok(c, outcome)
}

func logOprAction(c echo.Context, action, desc string) {
	GetDB(c).Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   "api",
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	})
}
