package partner

import (
	handlershared "github.com/adnex-platform/partner-api/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "invalid user id", "invalid user id type")
}

func getPartnerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "partner_id", "invalid partner id", "invalid partner id type")
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}
