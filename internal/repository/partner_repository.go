package repository

import (
	"errors"

	"github.com/adnex-platform/partner-api/internal/models"

	"gorm.io/gorm"
)

// PartnerRepository is the data access surface for partner profiles.
type PartnerRepository interface {
	GetByID(id uint) (*models.Partner, error)
	GetByUserID(userID uint) (*models.Partner, error)
	Create(partner *models.Partner) error
	Update(partner *models.Partner) error
	WithTx(tx *gorm.DB) *GormPartnerRepository
}

// GormPartnerRepository GORM implementation of PartnerRepository.
type GormPartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// WithTx binds the repository to a running transaction.
func (r *GormPartnerRepository) WithTx(tx *gorm.DB) *GormPartnerRepository {
	if tx == nil {
		return r
	}
	return &GormPartnerRepository{db: tx}
}

func (r *GormPartnerRepository) GetByID(id uint) (*models.Partner, error) {
	if id == 0 {
		return nil, nil
	}
	var partner models.Partner
	if err := r.db.Where("id = ?", id).First(&partner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &partner, nil
}

func (r *GormPartnerRepository) GetByUserID(userID uint) (*models.Partner, error) {
	if userID == 0 {
		return nil, nil
	}
	var partner models.Partner
	if err := r.db.Where("user_id = ?", userID).First(&partner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &partner, nil
}

func (r *GormPartnerRepository) Create(partner *models.Partner) error {
	return r.db.Create(partner).Error
}

func (r *GormPartnerRepository) Update(partner *models.Partner) error {
	return r.db.Save(partner).Error
}
