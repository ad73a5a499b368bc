package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/models"
	"github.com/adnex-platform/partner-api/internal/repository"
	"github.com/adnex-platform/partner-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func setupAuthMiddlewareTest(t *testing.T) (*gorm.DB, repository.UserRepository, repository.PartnerRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Partner{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db, repository.NewUserRepository(db), repository.NewPartnerRepository(db)
}

func seedAuthUser(t *testing.T, db *gorm.DB, status string, tokenVersion uint64) (*models.User, *models.Partner) {
	t.Helper()
	user := models.User{
		Email:        "partner@acme.example.com",
		PasswordHash: "x",
		DisplayName:  "Acme",
		Status:       status,
		TokenVersion: tokenVersion,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	partner := models.Partner{
		UserID:      user.ID,
		CompanyName: "Acme Media",
		ContactName: "Jordan",
		Email:       user.Email,
		Status:      constants.PartnerStatusActive,
	}
	if err := db.Create(&partner).Error; err != nil {
		t.Fatalf("seed partner failed: %v", err)
	}
	return &user, &partner
}

func signPartnerToken(t *testing.T, secret string, userID, partnerID uint, tokenVersion uint64) string {
	t.Helper()
	claims := service.PartnerJWTClaims{
		UserID:       userID,
		PartnerID:    partnerID,
		Email:        "partner@acme.example.com",
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

func newAuthTestRouter(secret string, userRepo repository.UserRepository, partnerRepo repository.PartnerRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PartnerJWTAuthMiddleware(secret, userRepo, partnerRepo))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status_code": 200,
			"partner_id":  c.GetUint("partner_id"),
		})
	})
	return r
}

func authStatusCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestPartnerJWTAuthMiddlewareMissingSecret(t *testing.T) {
	r := newAuthTestRouter("", nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if code := authStatusCode(t, w); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestPartnerJWTAuthMiddleware(t *testing.T) {
	const secret = "test-secret"
	db, userRepo, partnerRepo := setupAuthMiddlewareTest(t)
	user, partner := seedAuthUser(t, db, constants.UserStatusActive, 3)
	r := newAuthTestRouter(secret, userRepo, partnerRepo)

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signPartnerToken(t, secret, user.ID, partner.ID, 3))
		r.ServeHTTP(w, req)

		if code := authStatusCode(t, w); code != 200 {
			t.Fatalf("status_code want 200 got %d body %s", code, w.Body.String())
		}
		var resp struct {
			PartnerID uint `json:"partner_id"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response failed: %v", err)
		}
		if resp.PartnerID != partner.ID {
			t.Fatalf("partner_id want %d got %d", partner.ID, resp.PartnerID)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		if code := authStatusCode(t, w); code != 401 {
			t.Fatalf("status_code want 401 got %d", code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		r.ServeHTTP(w, req)
		if code := authStatusCode(t, w); code != 401 {
			t.Fatalf("status_code want 401 got %d", code)
		}
	})

	t.Run("wrong signature", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signPartnerToken(t, "other-secret", user.ID, partner.ID, 3))
		r.ServeHTTP(w, req)
		if code := authStatusCode(t, w); code != 401 {
			t.Fatalf("status_code want 401 got %d", code)
		}
	})

	t.Run("stale token version", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signPartnerToken(t, secret, user.ID, partner.ID, 2))
		r.ServeHTTP(w, req)
		if code := authStatusCode(t, w); code != 401 {
			t.Fatalf("status_code want 401 got %d", code)
		}
	})

	t.Run("mismatched partner id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signPartnerToken(t, secret, user.ID, partner.ID+10, 3))
		r.ServeHTTP(w, req)
		if code := authStatusCode(t, w); code != 401 {
			t.Fatalf("status_code want 401 got %d", code)
		}
	})
}

func TestPartnerJWTAuthMiddlewareDisabledUser(t *testing.T) {
	const secret = "test-secret"
	db, userRepo, partnerRepo := setupAuthMiddlewareTest(t)
	user, partner := seedAuthUser(t, db, "disabled", 0)
	r := newAuthTestRouter(secret, userRepo, partnerRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signPartnerToken(t, secret, user.ID, partner.ID, 0))
	r.ServeHTTP(w, req)

	if code := authStatusCode(t, w); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}
