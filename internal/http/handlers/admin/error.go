package admin

import (
	handlershared "github.com/sellerdesk/internal/http/handlers/shared"
	"github.com/sellerdesk/internal/i18n"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

func resolveLocale(c *gin.Context) string {
	return i18n.ResolveLocale(c)
}

func translate(locale, key string) string {
	return i18n.T(locale, key)
}
