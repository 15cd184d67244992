package adminapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nexcommerce/catalogd/internal/app"
	"github.com/nexcommerce/catalogd/internal/webserver"
	"gorm.io/gorm"
)

const appContextKey = "catalogd_appctx"

// InitRouter injects the application context into every request and
// registers all API routes
func InitRouter(ws *webserver.WebServer, appCtx app.AppContext) {
	ws.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appCtx)
			return next(c)
		}
	})
	registerAuthRoutes(ws)
	registerProductRoutes(ws)
	registerReportRoutes(ws)
}

// GetAppContext retrieves the application context from the request
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}

// GetDB retrieves the database handle from the request
func GetDB(c echo.Context) *gorm.DB {
	return GetAppContext(c).DB()
}

type errorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(200, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, errorBody{Code: code, Message: message, Detail: detail})
}

// ListResponse is the paged list envelope
type ListResponse struct {
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(200, ListResponse{Data: rows, Total: total, Page: page, PageSize: pageSize})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.QueryParam("perPage"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
