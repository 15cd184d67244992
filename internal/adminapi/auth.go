package adminapi

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/nexcommerce/catalogd/internal/domain"
	"github.com/nexcommerce/catalogd/internal/webserver"
	"github.com/nexcommerce/catalogd/pkg/common"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func registerAuthRoutes(ws *webserver.WebServer) {
	ws.ApiPOST("/auth/login", login)
}

// login verifies operator credentials and issues a bearer token for the
// protected report endpoints
func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}
	if payload.Username == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	var opr domain.SysOpr
	err := GetDB(c).
		Where("username = ? and status = ?", payload.Username, common.ENABLED).
		First(&opr).Error
	if err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	}

	if bcrypt.CompareHashAndPassword([]byte(opr.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	}

	cfg := GetAppContext(c).Config()
	claims := jwt.MapClaims{
		"sub":      opr.ID,
		"username": opr.Username,
		"level":    opr.Level,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.Web.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token", err.Error())
	}

	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", opr.ID).
		Update("last_login", time.Now())

	return ok(c, map[string]interface{}{
		"access_token": token,
		"user": map[string]interface{}{
			"id":       opr.ID,
			"username": opr.Username,
			"level":    opr.Level,
		},
	})
}
