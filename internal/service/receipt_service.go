package service

import (
	"strings"
	"time"

	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/models"
	"github.com/adnex-platform/partner-api/internal/repository"
)

// ReceiptService renders payout receipts for completed withdrawals.
type ReceiptService struct {
	payoutSvc   *PayoutService
	partnerRepo repository.PartnerRepository
	userRepo    repository.UserRepository
	settingSvc  *SettingService
}

func NewReceiptService(
	payoutSvc *PayoutService,
	partnerRepo repository.PartnerRepository,
	userRepo repository.UserRepository,
	settingSvc *SettingService,
) *ReceiptService {
	return &ReceiptService{
		payoutSvc:   payoutSvc,
		partnerRepo: partnerRepo,
		userRepo:    userRepo,
		settingSvc:  settingSvc,
	}
}

// ReceiptParty identifies the paid partner on a receipt.
type ReceiptParty struct {
	CompanyName string `json:"company_name,omitempty"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Address     string `json:"address,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
}

// ReceiptPlatform identifies the paying platform on a receipt.
type ReceiptPlatform struct {
	Name         string `json:"name"`
	SupportEmail string `json:"support_email"`
	Website      string `json:"website"`
}

// ReceiptEarning names the earning period a payout settled.
type ReceiptEarning struct {
	EarningID   uint      `json:"earning_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

// PayoutReceipt is the printable record of a completed payout.
type PayoutReceipt struct {
	ReceiptNumber string               `json:"receipt_number"`
	PayoutID      uint                 `json:"payout_id"`
	Reference     string               `json:"reference"`
	IssuedAt      time.Time            `json:"issued_at"`
	CompletedAt   *time.Time           `json:"completed_at"`
	RequestedAt   time.Time            `json:"requested_at"`
	Amount        models.Money         `json:"amount"`
	Fee           models.Money         `json:"fee"`
	NetAmount     models.Money         `json:"net_amount"`
	Currency      string               `json:"currency"`
	PaymentMethod *MaskedPaymentMethod `json:"payment_method"`
	Earning       *ReceiptEarning      `json:"earning,omitempty"`
	Partner       ReceiptParty         `json:"partner"`
	Platform      ReceiptPlatform      `json:"platform"`
}

// GenerateReceipt builds a receipt for a completed payout owned by the
// partner. Payouts in any other state have no receipt.
func (s *ReceiptService) GenerateReceipt(partnerID uint, payoutID uint) (*PayoutReceipt, error) {
	wallet, err := s.payoutSvc.GetWallet(partnerID)
	if err != nil {
		return nil, err
	}
	txn, err := s.payoutSvc.walletRepo.GetTransactionByID(payoutID)
	if err != nil {
		return nil, err
	}
	if txn == nil || txn.WalletID != wallet.ID || txn.Type != constants.TxnTypeWithdrawal {
		return nil, ErrPayoutNotFound
	}
	if txn.Status != constants.TxnStatusCompleted {
		return nil, ErrReceiptNotAvailable
	}

	partner, err := s.partnerRepo.GetByID(partnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrPartnerNotFound
	}

	party := ReceiptParty{
		CompanyName: partner.CompanyName,
		ContactName: partner.ContactName,
		Email:       partner.Email,
		Address:     partner.Address,
		TaxID:       partner.TaxID,
	}
	if party.ContactName == "" || party.Email == "" {
		user, err := s.userRepo.GetByID(partner.UserID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			if party.ContactName == "" {
				party.ContactName = user.DisplayName
			}
			if party.Email == "" {
				party.Email = user.Email
			}
		}
	}

	branding, err := s.settingSvc.GetPlatformBranding()
	if err != nil {
		return nil, err
	}

	receipt := &PayoutReceipt{
		ReceiptNumber: buildReceiptNumber(txn.Reference),
		PayoutID:      txn.ID,
		Reference:     txn.Reference,
		IssuedAt:      time.Now(),
		CompletedAt:   txn.ProcessedAt,
		RequestedAt:   txn.RequestedAt,
		Amount:        txn.Amount,
		Fee:           txn.Fee,
		NetAmount:     models.NewMoneyFromDecimal(txn.Amount.Decimal.Sub(txn.Fee.Decimal).Round(2)),
		Currency:      wallet.Currency,
		Partner:       party,
		Platform: ReceiptPlatform{
			Name:         branding.Name,
			SupportEmail: branding.SupportEmail,
			Website:      branding.Website,
		},
	}

	if txn.PaymentMethodID != nil {
		method, err := s.payoutSvc.methodRepo.GetByID(*txn.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if method != nil && method.WalletID == wallet.ID {
			masked := maskPaymentMethod(method)
			receipt.PaymentMethod = &masked
		}
	}

	earning, err := s.payoutSvc.earningRepo.GetByTransactionID(txn.ID)
	if err != nil {
		return nil, err
	}
	if earning != nil {
		receipt.Earning = &ReceiptEarning{
			EarningID:   earning.ID,
			PeriodStart: earning.PeriodStart,
			PeriodEnd:   earning.PeriodEnd,
		}
	}
	return receipt, nil
}

// buildReceiptNumber derives a stable receipt number from the payout
// reference so regenerating a receipt never changes its identity.
func buildReceiptNumber(reference string) string {
	suffix := strings.TrimPrefix(reference, "WD-")
	if suffix == "" {
		suffix = reference
	}
	return "RCP-" + suffix
}
