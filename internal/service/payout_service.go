package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/models"
	"github.com/adnex-platform/partner-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayoutService owns the partner payout ledger.
type PayoutService struct {
	walletRepo  repository.WalletRepository
	earningRepo repository.EarningRepository
	methodRepo  repository.PaymentMethodRepository
	partnerRepo repository.PartnerRepository
	settingSvc  *SettingService
}

// CreatePayoutInput is a partner withdrawal request.
type CreatePayoutInput struct {
	Amount          models.Money
	PaymentMethodID uint
	EarningID       *uint
	Description     string
}

func NewPayoutService(
	walletRepo repository.WalletRepository,
	earningRepo repository.EarningRepository,
	methodRepo repository.PaymentMethodRepository,
	partnerRepo repository.PartnerRepository,
	settingSvc *SettingService,
) *PayoutService {
	return &PayoutService{
		walletRepo:  walletRepo,
		earningRepo: earningRepo,
		methodRepo:  methodRepo,
		partnerRepo: partnerRepo,
		settingSvc:  settingSvc,
	}
}

// GetWallet returns the partner wallet, creating an empty one on first use.
func (s *PayoutService) GetWallet(partnerID uint) (*models.Wallet, error) {
	if partnerID == 0 {
		return nil, ErrWalletNotFound
	}
	wallet, err := s.walletRepo.GetByPartnerID(partnerID)
	if err != nil {
		return nil, err
	}
	if wallet != nil {
		return wallet, nil
	}
	now := time.Now()
	wallet = &models.Wallet{
		PartnerID: partnerID,
		Balance:   models.NewMoneyFromDecimal(decimal.Zero),
		Currency:  constants.DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.walletRepo.Create(wallet); err != nil {
		created, queryErr := s.walletRepo.GetByPartnerID(partnerID)
		if queryErr == nil && created != nil {
			return created, nil
		}
		return nil, ErrWalletCreateFailed
	}
	return wallet, nil
}

// AvailableBalance returns the amount a partner may withdraw. Unpaid
// earnings count toward availability even before they settle into the
// wallet, so the larger of the two figures wins.
func (s *PayoutService) AvailableBalance(partnerID uint) (decimal.Decimal, error) {
	_, _, available, err := s.WalletOverview(partnerID)
	return available, err
}

// WalletOverview returns the wallet together with the pending-earnings
// total and the withdrawable amount.
func (s *PayoutService) WalletOverview(partnerID uint) (*models.Wallet, decimal.Decimal, decimal.Decimal, error) {
	wallet, err := s.GetWallet(partnerID)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	earnings, err := s.earningRepo.ListPendingByPartner(partnerID)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	pending := decimal.Zero
	for _, earning := range earnings {
		pending = pending.Add(earning.Amount.Decimal)
	}
	return wallet, pending.Round(2), availableBalance(wallet, earnings), nil
}

func availableBalance(wallet *models.Wallet, pending []models.PartnerEarning) decimal.Decimal {
	balance := wallet.Balance.Decimal.Round(2)
	sum := decimal.Zero
	for _, earning := range pending {
		sum = sum.Add(earning.Amount.Decimal)
	}
	sum = sum.Round(2)
	if sum.GreaterThan(balance) {
		return sum
	}
	return balance
}

// CreatePayout validates and records a withdrawal request atomically.
func (s *PayoutService) CreatePayout(partnerID uint, input CreatePayoutInput) (*models.WalletTransaction, error) {
	if partnerID == 0 {
		return nil, ErrPartnerNotFound
	}
	amount := input.Amount.Decimal.Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrPayoutInvalidAmount
	}
	if input.PaymentMethodID == 0 {
		return nil, ErrPayoutPaymentMethodRequired
	}

	var txnResult *models.WalletTransaction
	if err := s.walletRepo.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		walletRepo := s.walletRepo.WithTx(tx)
		earningRepo := s.earningRepo.WithTx(tx)
		methodRepo := s.methodRepo.WithTx(tx)

		wallet, err := s.ensureWalletForUpdate(walletRepo, partnerID, now)
		if err != nil {
			return err
		}

		method, err := methodRepo.GetByIDAndWallet(input.PaymentMethodID, wallet.ID)
		if err != nil {
			return err
		}
		if method == nil {
			return ErrPayoutPaymentMethodInvalid
		}

		pending, err := earningRepo.ListPendingByPartner(partnerID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(availableBalance(wallet, pending)) {
			return ErrPayoutInsufficientBalance
		}

		var earning *models.PartnerEarning
		if input.EarningID != nil {
			earning, err = earningRepo.GetByIDForUpdate(*input.EarningID)
			if err != nil {
				return err
			}
			if earning == nil || earning.PartnerID != partnerID {
				return ErrPayoutEarningInvalid
			}
			if earning.Status != constants.EarningStatusPending {
				return ErrPayoutEarningInvalid
			}
			if !earning.Amount.Decimal.Round(2).Equal(amount) {
				return ErrPayoutEarningInvalid
			}
		}

		minimum, err := s.settingSvc.GetMinimumPayout()
		if err != nil {
			return err
		}
		if amount.LessThan(minimum) {
			return fmt.Errorf("%w: minimum payout is %s %s",
				ErrPayoutBelowMinimum, minimum.StringFixed(2), wallet.Currency)
		}

		if err := s.debitWalletIfCovered(walletRepo, wallet, amount, now); err != nil {
			return err
		}

		txn := &models.WalletTransaction{
			WalletID:        wallet.ID,
			Type:            constants.TxnTypeWithdrawal,
			Amount:          models.NewMoneyFromDecimal(amount),
			Fee:             models.NewMoneyFromDecimal(decimal.Zero),
			Status:          constants.TxnStatusPending,
			Reference:       buildPayoutReference(partnerID),
			Description:     buildPayoutDescription(strings.TrimSpace(input.Description), earning),
			PaymentMethodID: &method.ID,
			RequestedAt:     now,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := walletRepo.CreateTransaction(txn); err != nil {
			return ErrTransactionCreateFailed
		}

		if earning != nil {
			earning.Status = constants.EarningStatusProcessed
			earning.TransactionID = &txn.ID
			earning.UpdatedAt = now
			if err := earningRepo.Update(earning); err != nil {
				return ErrEarningUpdateFailed
			}
		}

		txnResult = txn
		return nil
	}); err != nil {
		return nil, err
	}
	return txnResult, nil
}

// CancelPayout cancels a pending withdrawal and returns its funds.
func (s *PayoutService) CancelPayout(partnerID uint, payoutID uint) (*models.WalletTransaction, error) {
	if partnerID == 0 || payoutID == 0 {
		return nil, ErrPayoutNotFound
	}

	var txnResult *models.WalletTransaction
	if err := s.walletRepo.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		walletRepo := s.walletRepo.WithTx(tx)
		earningRepo := s.earningRepo.WithTx(tx)

		txn, err := walletRepo.GetTransactionByIDForUpdate(payoutID)
		if err != nil {
			return err
		}
		if txn == nil || txn.Type != constants.TxnTypeWithdrawal {
			return ErrPayoutNotFound
		}
		wallet, err := walletRepo.GetByPartnerIDForUpdate(partnerID)
		if err != nil {
			return err
		}
		if wallet == nil || txn.WalletID != wallet.ID {
			return ErrPayoutNotFound
		}
		if txn.Status != constants.TxnStatusPending {
			return ErrPayoutNotCancellable
		}

		if err := s.refundWalletOnCancel(walletRepo, wallet, txn.Amount.Decimal.Round(2), now); err != nil {
			return err
		}

		txn.Status = constants.TxnStatusCancelled
		txn.Description = appendDescriptionNote(txn.Description,
			"Cancelled by partner on "+now.Format("2006-01-02"))
		txn.ProcessedAt = &now
		txn.UpdatedAt = now
		if err := walletRepo.UpdateTransaction(txn); err != nil {
			return ErrTransactionUpdateFailed
		}

		earning, err := earningRepo.GetByTransactionIDForUpdate(txn.ID)
		if err != nil {
			return err
		}
		if earning != nil {
			earning.Status = constants.EarningStatusPending
			earning.TransactionID = nil
			earning.UpdatedAt = now
			if err := earningRepo.Update(earning); err != nil {
				return ErrEarningUpdateFailed
			}
		}

		txnResult = txn
		return nil
	}); err != nil {
		return nil, err
	}
	return txnResult, nil
}

// debitWalletIfCovered deducts the payout amount only when the settled
// balance covers it. Requests backed by pending earnings alone leave the
// balance untouched until settlement.
func (s *PayoutService) debitWalletIfCovered(repo *repository.GormWalletRepository, wallet *models.Wallet, amount decimal.Decimal, now time.Time) error {
	balance := wallet.Balance.Decimal.Round(2)
	if balance.LessThan(amount) {
		return nil
	}
	wallet.Balance = models.NewMoneyFromDecimal(balance.Sub(amount).Round(2))
	wallet.UpdatedAt = now
	if err := repo.Update(wallet); err != nil {
		return ErrWalletUpdateFailed
	}
	return nil
}

// refundWalletOnCancel returns the full payout amount to the wallet.
// Cancellation always reconciles the balance even when the original
// request was covered by pending earnings.
func (s *PayoutService) refundWalletOnCancel(repo *repository.GormWalletRepository, wallet *models.Wallet, amount decimal.Decimal, now time.Time) error {
	wallet.Balance = models.NewMoneyFromDecimal(wallet.Balance.Decimal.Round(2).Add(amount).Round(2))
	wallet.UpdatedAt = now
	if err := repo.Update(wallet); err != nil {
		return ErrWalletUpdateFailed
	}
	return nil
}

func (s *PayoutService) ensureWalletForUpdate(repo *repository.GormWalletRepository, partnerID uint, now time.Time) (*models.Wallet, error) {
	wallet, err := repo.GetByPartnerIDForUpdate(partnerID)
	if err != nil {
		return nil, err
	}
	if wallet != nil {
		return wallet, nil
	}
	wallet = &models.Wallet{
		PartnerID: partnerID,
		Balance:   models.NewMoneyFromDecimal(decimal.Zero),
		Currency:  constants.DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(wallet); err != nil {
		created, queryErr := repo.GetByPartnerIDForUpdate(partnerID)
		if queryErr == nil && created != nil {
			return created, nil
		}
		return nil, ErrWalletCreateFailed
	}
	return wallet, nil
}

func buildPayoutReference(partnerID uint) string {
	return fmt.Sprintf("WD-%d-%d", partnerID, time.Now().UnixNano())
}

// buildPayoutDescription records the funding earning on the transaction
// so the ledger stays auditable without a join.
func buildPayoutDescription(desc string, earning *models.PartnerEarning) string {
	if earning == nil {
		return desc
	}
	note := fmt.Sprintf("Funded by earning #%d (%s - %s)",
		earning.ID,
		earning.PeriodStart.Format("2006-01-02"),
		earning.PeriodEnd.Format("2006-01-02"))
	return appendDescriptionNote(desc, note)
}

func appendDescriptionNote(desc, note string) string {
	if desc == "" {
		return note
	}
	return desc + " | " + note
}
