package repository

import (
	"errors"

	"github.com/adnex-platform/partner-api/internal/models"

	"gorm.io/gorm"
)

// PaymentMethodRepository is the data access surface for payout destinations.
type PaymentMethodRepository interface {
	GetByID(id uint) (*models.PaymentMethod, error)
	GetByIDAndWallet(id uint, walletID uint) (*models.PaymentMethod, error)
	GetByIDs(ids []uint) ([]models.PaymentMethod, error)
	ListByWallet(walletID uint) ([]models.PaymentMethod, error)
	Create(method *models.PaymentMethod) error
	Update(method *models.PaymentMethod) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormPaymentMethodRepository
}

// GormPaymentMethodRepository GORM implementation of PaymentMethodRepository.
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// WithTx binds the repository to a running transaction.
func (r *GormPaymentMethodRepository) WithTx(tx *gorm.DB) *GormPaymentMethodRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentMethodRepository{db: tx}
}

func (r *GormPaymentMethodRepository) GetByID(id uint) (*models.PaymentMethod, error) {
	if id == 0 {
		return nil, nil
	}
	var method models.PaymentMethod
	if err := r.db.Where("id = ?", id).First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

// GetByIDAndWallet scopes the lookup to the owning wallet.
func (r *GormPaymentMethodRepository) GetByIDAndWallet(id uint, walletID uint) (*models.PaymentMethod, error) {
	if id == 0 || walletID == 0 {
		return nil, nil
	}
	var method models.PaymentMethod
	if err := r.db.Where("id = ? AND wallet_id = ?", id, walletID).First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

func (r *GormPaymentMethodRepository) GetByIDs(ids []uint) ([]models.PaymentMethod, error) {
	if len(ids) == 0 {
		return []models.PaymentMethod{}, nil
	}
	var methods []models.PaymentMethod
	if err := r.db.Where("id IN ?", ids).Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *GormPaymentMethodRepository) ListByWallet(walletID uint) ([]models.PaymentMethod, error) {
	if walletID == 0 {
		return []models.PaymentMethod{}, nil
	}
	var methods []models.PaymentMethod
	if err := r.db.Where("wallet_id = ?", walletID).Order("id ASC").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *GormPaymentMethodRepository) Create(method *models.PaymentMethod) error {
	return r.db.Create(method).Error
}

func (r *GormPaymentMethodRepository) Update(method *models.PaymentMethod) error {
	return r.db.Save(method).Error
}

func (r *GormPaymentMethodRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.PaymentMethod{}, id).Error
}
