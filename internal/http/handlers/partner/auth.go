package partner

import (
	"time"

	"github.com/adnex-platform/partner-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a partner account and returns a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "email and password are required", err)
		return
	}

	result, err := h.PartnerAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "login failed")
		return
	}

	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
		"user": gin.H{
			"id":           result.User.ID,
			"email":        result.User.Email,
			"display_name": result.User.DisplayName,
		},
		"partner": gin.H{
			"id":           result.Partner.ID,
			"company_name": result.Partner.CompanyName,
			"contact_name": result.Partner.ContactName,
			"status":       result.Partner.Status,
		},
	})
}

// GetMe returns the authenticated partner profile.
func (h *Handler) GetMe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, partner, err := h.PartnerAuthService.GetProfile(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load profile", err)
		return
	}
	response.Success(c, gin.H{
		"user":    user,
		"partner": partner,
	})
}
