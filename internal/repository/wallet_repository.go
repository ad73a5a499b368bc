package repository

import (
	"errors"
	"strings"

	"github.com/adnex-platform/partner-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// payoutSortColumns whitelists sortable wallet transaction columns. The
// camelCase keys are the public query-parameter spellings.
var payoutSortColumns = map[string]string{
	"amount":       "amount",
	"status":       "status",
	"processed_at": "processed_at",
	"processedAt":  "processed_at",
	"requested_at": "requested_at",
	"date":         "requested_at",
}

// WalletRepository is the data access surface for partner wallets and
// their transactions.
type WalletRepository interface {
	GetByPartnerID(partnerID uint) (*models.Wallet, error)
	GetByPartnerIDForUpdate(partnerID uint) (*models.Wallet, error)
	Create(wallet *models.Wallet) error
	Update(wallet *models.Wallet) error
	CreateTransaction(txn *models.WalletTransaction) error
	UpdateTransaction(txn *models.WalletTransaction) error
	GetTransactionByID(id uint) (*models.WalletTransaction, error)
	GetTransactionByIDForUpdate(id uint) (*models.WalletTransaction, error)
	GetTransactionByReference(reference string) (*models.WalletTransaction, error)
	ListTransactions(filter PayoutListFilter) ([]models.WalletTransaction, int64, error)
	ListAllTransactionsByWallet(walletID uint, txnType string) ([]models.WalletTransaction, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormWalletRepository
}

// GormWalletRepository GORM implementation of WalletRepository.
type GormWalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// WithTx binds the repository to a running transaction.
func (r *GormWalletRepository) WithTx(tx *gorm.DB) *GormWalletRepository {
	if tx == nil {
		return r
	}
	return &GormWalletRepository{db: tx}
}

// Transaction runs fn inside a database transaction.
func (r *GormWalletRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormWalletRepository) GetByPartnerID(partnerID uint) (*models.Wallet, error) {
	if partnerID == 0 {
		return nil, nil
	}
	var wallet models.Wallet
	if err := r.db.Where("partner_id = ?", partnerID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wallet, nil
}

// GetByPartnerIDForUpdate locks the wallet row for the current transaction.
func (r *GormWalletRepository) GetByPartnerIDForUpdate(partnerID uint) (*models.Wallet, error) {
	if partnerID == 0 {
		return nil, nil
	}
	var wallet models.Wallet
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("partner_id = ?", partnerID).
		First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *GormWalletRepository) Create(wallet *models.Wallet) error {
	return r.db.Create(wallet).Error
}

func (r *GormWalletRepository) Update(wallet *models.Wallet) error {
	return r.db.Save(wallet).Error
}

func (r *GormWalletRepository) CreateTransaction(txn *models.WalletTransaction) error {
	return r.db.Create(txn).Error
}

func (r *GormWalletRepository) UpdateTransaction(txn *models.WalletTransaction) error {
	return r.db.Save(txn).Error
}

func (r *GormWalletRepository) GetTransactionByID(id uint) (*models.WalletTransaction, error) {
	if id == 0 {
		return nil, nil
	}
	var txn models.WalletTransaction
	if err := r.db.Where("id = ?", id).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// GetTransactionByIDForUpdate locks the transaction row for the current transaction.
func (r *GormWalletRepository) GetTransactionByIDForUpdate(id uint) (*models.WalletTransaction, error) {
	if id == 0 {
		return nil, nil
	}
	var txn models.WalletTransaction
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *GormWalletRepository) GetTransactionByReference(reference string) (*models.WalletTransaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	var txn models.WalletTransaction
	if err := r.db.Where("reference = ?", reference).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// ListTransactions pages wallet transactions with an optional status set and
// a whitelisted sort column. Unknown sort fields fall back to requested_at.
func (r *GormWalletRepository) ListTransactions(filter PayoutListFilter) ([]models.WalletTransaction, int64, error) {
	query := r.db.Model(&models.WalletTransaction{})
	if filter.WalletID != 0 {
		query = query.Where("wallet_id = ?", filter.WalletID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.PaymentMethodID != 0 {
		query = query.Where("payment_method_id = ?", filter.PaymentMethodID)
	}
	if filter.StartDate != nil {
		query = query.Where("requested_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("requested_at <= ?", *filter.EndDate)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := payoutSortColumns[filter.SortBy]
	if !ok {
		column = "requested_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var txns []models.WalletTransaction
	if err := query.Order(column + " " + direction).Order("id DESC").Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// ListAllTransactionsByWallet returns every transaction of a wallet, newest
// first, optionally restricted to a type. Used by the statistics aggregator.
func (r *GormWalletRepository) ListAllTransactionsByWallet(walletID uint, txnType string) ([]models.WalletTransaction, error) {
	if walletID == 0 {
		return []models.WalletTransaction{}, nil
	}
	query := r.db.Where("wallet_id = ?", walletID)
	if txnType != "" {
		query = query.Where("type = ?", txnType)
	}
	var txns []models.WalletTransaction
	if err := query.Order("requested_at DESC").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}
