package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/models"
	"github.com/adnex-platform/partner-api/internal/repository"

	"github.com/shopspring/decimal"
)

// Fallbacks used when the settings table has no value.
const (
	defaultMinimumPayout  = 50
	defaultProcessingDays = 3
	defaultPlatformName   = "AdNex Advertising Platform"
	defaultSupportEmail   = "support@adnex.example.com"
	defaultWebsite        = "https://adnex.example.com"
)

// PlatformBranding is the identity block printed on receipts.
type PlatformBranding struct {
	Name         string
	SupportEmail string
	Website      string
}

// SettingService reads and writes platform settings.
type SettingService struct {
	repo repository.SettingRepository
}

func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetByKey returns the raw setting value, or nil when absent.
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update stores a setting value.
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	setting, err := s.repo.Upsert(key, value)
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// GetMinimumPayout returns the smallest allowed payout amount.
func (s *SettingService) GetMinimumPayout() (decimal.Decimal, error) {
	fallback := decimal.NewFromInt(defaultMinimumPayout)
	if s == nil {
		return fallback, nil
	}
	value, err := s.GetByKey(constants.SettingKeyCommissionRates)
	if err != nil {
		return fallback, err
	}
	if value == nil {
		return fallback, nil
	}
	raw, ok := value[constants.SettingFieldMinimumPayout]
	if !ok {
		return fallback, nil
	}
	minimum, err := parseSettingDecimal(raw)
	if err != nil {
		return fallback, err
	}
	if minimum.LessThanOrEqual(decimal.Zero) {
		return fallback, nil
	}
	return minimum, nil
}

// GetProcessingDays returns the expected payout processing time in business days.
func (s *SettingService) GetProcessingDays() (int, error) {
	if s == nil {
		return defaultProcessingDays, nil
	}
	value, err := s.GetByKey(constants.SettingKeyCommissionRates)
	if err != nil {
		return defaultProcessingDays, err
	}
	if value == nil {
		return defaultProcessingDays, nil
	}
	raw, ok := value[constants.SettingFieldProcessingDays]
	if !ok {
		return defaultProcessingDays, nil
	}
	days, err := parseSettingInt(raw)
	if err != nil {
		return defaultProcessingDays, err
	}
	if days <= 0 {
		return defaultProcessingDays, nil
	}
	return days, nil
}

// GetPlatformBranding returns the platform identity with defaults filled in.
func (s *SettingService) GetPlatformBranding() (PlatformBranding, error) {
	branding := PlatformBranding{
		Name:         defaultPlatformName,
		SupportEmail: defaultSupportEmail,
		Website:      defaultWebsite,
	}
	if s == nil {
		return branding, nil
	}
	value, err := s.GetByKey(constants.SettingKeyGeneralSettings)
	if err != nil {
		return branding, err
	}
	if value == nil {
		return branding, nil
	}
	if name, ok := value[constants.SettingFieldPlatformName].(string); ok && strings.TrimSpace(name) != "" {
		branding.Name = strings.TrimSpace(name)
	}
	if email, ok := value[constants.SettingFieldSupportEmail].(string); ok && strings.TrimSpace(email) != "" {
		branding.SupportEmail = strings.TrimSpace(email)
	}
	if website, ok := value[constants.SettingFieldWebsite].(string); ok && strings.TrimSpace(website) != "" {
		branding.Website = strings.TrimSpace(website)
	}
	return branding, nil
}

// SupportEmail is a convenience accessor used in rejection messages.
func (s *SettingService) SupportEmail() string {
	branding, err := s.GetPlatformBranding()
	if err != nil {
		return defaultSupportEmail
	}
	return branding.SupportEmail
}

func parseSettingInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		if f, err := v.Float64(); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("invalid json number")
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}

func parseSettingDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Zero, fmt.Errorf("empty string")
		}
		return decimal.NewFromString(trimmed)
	default:
		return decimal.Zero, fmt.Errorf("unsupported value type")
	}
}
