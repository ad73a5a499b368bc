package provider

import (
	"github.com/adnex-platform/partner-api/internal/cache"
	"github.com/adnex-platform/partner-api/internal/config"
	"github.com/adnex-platform/partner-api/internal/logger"
	"github.com/adnex-platform/partner-api/internal/models"
	"github.com/adnex-platform/partner-api/internal/repository"
	"github.com/adnex-platform/partner-api/internal/service"
)

// Container wires repositories and services for the HTTP layer.
type Container struct {
	Config *config.Config

	// Repositories
	UserRepo          repository.UserRepository
	PartnerRepo       repository.PartnerRepository
	WalletRepo        repository.WalletRepository
	EarningRepo       repository.EarningRepository
	PaymentMethodRepo repository.PaymentMethodRepository
	SettingRepo       repository.SettingRepository

	// Services
	SettingService     *service.SettingService
	PartnerAuthService *service.PartnerAuthService
	PayoutService      *service.PayoutService
	ReceiptService     *service.ReceiptService
}

// NewContainer initializes the dependency container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.PartnerRepo = repository.NewPartnerRepository(db)
	c.WalletRepo = repository.NewWalletRepository(db)
	c.EarningRepo = repository.NewEarningRepository(db)
	c.PaymentMethodRepo = repository.NewPaymentMethodRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.PartnerAuthService = service.NewPartnerAuthService(c.Config, c.UserRepo, c.PartnerRepo)
	c.PayoutService = service.NewPayoutService(c.WalletRepo, c.EarningRepo, c.PaymentMethodRepo, c.PartnerRepo, c.SettingService)
	c.ReceiptService = service.NewReceiptService(c.PayoutService, c.PartnerRepo, c.UserRepo, c.SettingService)
}
