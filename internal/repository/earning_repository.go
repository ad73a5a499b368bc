package repository

import (
	"errors"

	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EarningRepository is the data access surface for partner earnings.
type EarningRepository interface {
	GetByID(id uint) (*models.PartnerEarning, error)
	GetByIDForUpdate(id uint) (*models.PartnerEarning, error)
	GetByTransactionIDForUpdate(transactionID uint) (*models.PartnerEarning, error)
	GetByTransactionID(transactionID uint) (*models.PartnerEarning, error)
	ListByTransactionIDs(transactionIDs []uint) ([]models.PartnerEarning, error)
	ListPendingByPartner(partnerID uint) ([]models.PartnerEarning, error)
	List(filter EarningListFilter) ([]models.PartnerEarning, int64, error)
	Create(earning *models.PartnerEarning) error
	Update(earning *models.PartnerEarning) error
	WithTx(tx *gorm.DB) *GormEarningRepository
}

// GormEarningRepository GORM implementation of EarningRepository.
type GormEarningRepository struct {
	db *gorm.DB
}

func NewEarningRepository(db *gorm.DB) *GormEarningRepository {
	return &GormEarningRepository{db: db}
}

// WithTx binds the repository to a running transaction.
func (r *GormEarningRepository) WithTx(tx *gorm.DB) *GormEarningRepository {
	if tx == nil {
		return r
	}
	return &GormEarningRepository{db: tx}
}

func (r *GormEarningRepository) GetByID(id uint) (*models.PartnerEarning, error) {
	if id == 0 {
		return nil, nil
	}
	var earning models.PartnerEarning
	if err := r.db.Where("id = ?", id).First(&earning).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &earning, nil
}

// GetByIDForUpdate locks the earning row for the current transaction.
func (r *GormEarningRepository) GetByIDForUpdate(id uint) (*models.PartnerEarning, error) {
	if id == 0 {
		return nil, nil
	}
	var earning models.PartnerEarning
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&earning).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &earning, nil
}

// GetByTransactionIDForUpdate locks the earning linked to a payout, if any.
func (r *GormEarningRepository) GetByTransactionIDForUpdate(transactionID uint) (*models.PartnerEarning, error) {
	if transactionID == 0 {
		return nil, nil
	}
	var earning models.PartnerEarning
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("transaction_id = ?", transactionID).
		First(&earning).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &earning, nil
}

// GetByTransactionID reads the earning linked to a payout without locking.
func (r *GormEarningRepository) GetByTransactionID(transactionID uint) (*models.PartnerEarning, error) {
	if transactionID == 0 {
		return nil, nil
	}
	var earning models.PartnerEarning
	if err := r.db.Where("transaction_id = ?", transactionID).First(&earning).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &earning, nil
}

// ListByTransactionIDs reads the earnings linked to a set of payouts.
func (r *GormEarningRepository) ListByTransactionIDs(transactionIDs []uint) ([]models.PartnerEarning, error) {
	if len(transactionIDs) == 0 {
		return []models.PartnerEarning{}, nil
	}
	var earnings []models.PartnerEarning
	if err := r.db.Where("transaction_id IN ?", transactionIDs).Find(&earnings).Error; err != nil {
		return nil, err
	}
	return earnings, nil
}

func (r *GormEarningRepository) ListPendingByPartner(partnerID uint) ([]models.PartnerEarning, error) {
	if partnerID == 0 {
		return []models.PartnerEarning{}, nil
	}
	var earnings []models.PartnerEarning
	if err := r.db.
		Where("partner_id = ? AND status = ?", partnerID, constants.EarningStatusPending).
		Order("period_start ASC").
		Find(&earnings).Error; err != nil {
		return nil, err
	}
	return earnings, nil
}

func (r *GormEarningRepository) List(filter EarningListFilter) ([]models.PartnerEarning, int64, error) {
	query := r.db.Model(&models.PartnerEarning{})
	if filter.PartnerID != 0 {
		query = query.Where("partner_id = ?", filter.PartnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var earnings []models.PartnerEarning
	if err := query.Order("period_start DESC").Find(&earnings).Error; err != nil {
		return nil, 0, err
	}
	return earnings, total, nil
}

func (r *GormEarningRepository) Create(earning *models.PartnerEarning) error {
	return r.db.Create(earning).Error
}

func (r *GormEarningRepository) Update(earning *models.PartnerEarning) error {
	return r.db.Save(earning).Error
}
