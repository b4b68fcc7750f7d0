package middleware

import (
	"crypto/subtle"
	"net/http"

	"creditline-service/internal/handler/httperr"
	"creditline-service/internal/pkg/config"
	"creditline-service/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const AdminKeyHeader = "X-Admin-Key"

var errAdminKeyInvalid = errs.New("admin key missing or invalid")

// AdminAuthMiddleware gates mutation endpoints behind a shared-secret header.
// The core components stay unaware of authentication; this either calls the
// operation or doesn't.
type AdminAuthMiddleware struct {
	key []byte
}

func NewAdminAuthMiddleware(cfg config.Config) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{key: []byte(cfg.Admin.Key)}
}

func (m *AdminAuthMiddleware) RequireAdminKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := []byte(c.GetHeader(AdminKeyHeader))
		if subtle.ConstantTimeCompare(provided, m.key) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errAdminKeyInvalid, "Unauthorized", nil)
			return
		}
		c.Next()
	}
}
