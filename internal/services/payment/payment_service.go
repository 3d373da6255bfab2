package payment

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
	sports "github.com/threadline/pos-service/internal/services/ports"
	"github.com/threadline/pos-service/pkg/observability"
	"github.com/threadline/pos-service/pkg/timeutil"
)

// Service implements sports.PaymentService. Every mutation that touches a
// bank-account running balance runs inside one database transaction with the
// payment row change, so the journal and the ledger cannot diverge.
type Service struct {
	db       ports.DBPort
	payments ports.PaymentRepository
	orders   ports.OrderRepository
	accounts ports.BankAccountRepository
	logger   ports.Logger
}

// NewService creates a new payment service
func NewService(
	db ports.DBPort,
	payments ports.PaymentRepository,
	orders ports.OrderRepository,
	accounts ports.BankAccountRepository,
	logger ports.Logger,
) *Service {
	return &Service{
		db:       db,
		payments: payments,
		orders:   orders,
		accounts: accounts,
		logger:   logger,
	}
}

// CreatePayment validates and records a payment. When the payment targets an
// order, the recorded amount is capped at the order's final amount and the
// excess is returned as change, never stored. Completed bank-linked payments
// credit their account's running balance in the same transaction.
func (s *Service) CreatePayment(ctx context.Context, req sports.CreatePaymentRequest) (*sports.PaymentResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationAmountInvalid,
			"payment amount must be positive").
			WithDetail("payment_amount", req.Amount.String())
	}
	if req.PaymentDate.IsZero() {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField,
			"payment date is required").WithDetail("field", "payment_date")
	}

	method, fellBack := domain.NormalizePaymentMethod(req.Method)
	if fellBack {
		s.logger.Warn("unknown payment method, recording as other",
			ports.String("payment_method", req.Method),
			ports.Int64("shop_id", req.ShopID))
	}
	if method.IsBankLinked() && req.BankAccountID == nil {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField,
			"bank account is required for bank-linked payment methods").
			WithDetail("field", "bank_account_id").
			WithDetail("payment_method", string(method))
	}
	if method == domain.PaymentMethodBankDeposit && req.BranchName == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField,
			"branch name is required for bank deposits").
			WithDetail("field", "branch_name")
	}

	status := domain.PaymentStatusCompleted
	if req.Status != "" {
		if !domain.ValidPaymentStatus(req.Status) {
			return nil, domain.NewDomainError(domain.ErrorCodeValidationFailed,
				"unknown payment status").WithDetail("payment_status", req.Status)
		}
		status = domain.PaymentStatus(req.Status)
	}

	pmt := &domain.Payment{
		ShopID:        req.ShopID,
		OrderID:       req.OrderID,
		CustomerID:    req.CustomerID,
		Amount:        req.Amount,
		Method:        method,
		Status:        status,
		BankAccountID: req.BankAccountID,
		BranchName:    req.BranchName,
		TransactionID: uniqueTransactionID(req.TransactionID),
		PaymentDate:   req.PaymentDate,
		Notes:         req.Notes,
	}

	result := &sports.PaymentResult{MethodFellBack: fellBack, ChangeGiven: decimal.Zero}

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if pmt.OrderID != nil {
			order, err := s.orders.GetByID(ctx, tx, *pmt.OrderID, pmt.ShopID)
			if err != nil {
				return err
			}
			// A zero cap basis means no amount has been fixed for the
			// order yet; capping against it would swallow the payment.
			if order.FinalAmount.GreaterThan(decimal.Zero) && pmt.Amount.GreaterThan(order.FinalAmount) {
				result.ChangeGiven = pmt.Amount.Sub(order.FinalAmount)
				pmt.Amount = order.FinalAmount
			}
		}

		id, err := s.payments.Create(ctx, tx, pmt)
		if err != nil {
			return err
		}
		pmt.ID = id

		if pmt.AffectsBankLedger() {
			if err := s.accounts.AdjustBalance(ctx, tx, *pmt.BankAccountID, pmt.Amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("create payment failed",
			ports.Int64("shop_id", req.ShopID),
			ports.Err(err))
		return nil, err
	}

	s.logger.Info("payment recorded",
		ports.Int64("payment_id", pmt.ID),
		ports.Int64("shop_id", pmt.ShopID),
		ports.Decimal("payment_amount", pmt.Amount),
		ports.Decimal("change_given", result.ChangeGiven),
		ports.String("payment_method", string(pmt.Method)))
	observability.RecordPayment(string(pmt.Method), pmt.Amount)
	if pmt.AffectsBankLedger() {
		observability.RecordLedgerAdjustment(pmt.Amount)
	}

	result.Payment = pmt
	return result, nil
}

// UpdatePayment edits a stored payment. Bank-ledger effects are reversed
// before the merge and reapplied after it, so an edit leaves a net delta of
// minus(old) plus(new) on whichever accounts are involved.
func (s *Service) UpdatePayment(ctx context.Context, req sports.UpdatePaymentRequest) (*domain.Payment, error) {
	if req.Amount != nil && req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationAmountInvalid,
			"payment amount must be positive").
			WithDetail("payment_amount", req.Amount.String())
	}

	var merged *domain.Payment
	var reversed, reapplied decimal.Decimal
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		original, err := s.payments.GetByID(ctx, tx, req.PaymentID, req.ShopID)
		if err != nil {
			return err
		}

		if original.AffectsBankLedger() {
			if err := s.accounts.AdjustBalance(ctx, tx, *original.BankAccountID, original.Amount.Neg()); err != nil {
				return err
			}
			reversed = original.Amount
		}

		merged, err = s.mergePayment(original, req)
		if err != nil {
			return err
		}
		if err := s.payments.Update(ctx, tx, merged); err != nil {
			return err
		}

		if merged.AffectsBankLedger() {
			if err := s.accounts.AdjustBalance(ctx, tx, *merged.BankAccountID, merged.Amount); err != nil {
				return err
			}
			reapplied = merged.Amount
		}
		return nil
	})
	if err != nil {
		s.logger.Error("update payment failed",
			ports.Int64("payment_id", req.PaymentID),
			ports.Int64("shop_id", req.ShopID),
			ports.Err(err))
		return nil, err
	}

	s.logger.Info("payment updated",
		ports.Int64("payment_id", merged.ID),
		ports.Int64("shop_id", merged.ShopID),
		ports.Decimal("payment_amount", merged.Amount))
	if reversed.IsPositive() {
		observability.RecordLedgerAdjustment(reversed.Neg())
	}
	if reapplied.IsPositive() {
		observability.RecordLedgerAdjustment(reapplied)
	}
	return merged, nil
}

// DeletePayment removes a payment, reversing its bank-ledger effect first
func (s *Service) DeletePayment(ctx context.Context, paymentID, shopID int64) error {
	var reversed decimal.Decimal
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		pmt, err := s.payments.GetByID(ctx, tx, paymentID, shopID)
		if err != nil {
			return err
		}
		if pmt.AffectsBankLedger() {
			if err := s.accounts.AdjustBalance(ctx, tx, *pmt.BankAccountID, pmt.Amount.Neg()); err != nil {
				return err
			}
			reversed = pmt.Amount
		}
		return s.payments.Delete(ctx, tx, paymentID, shopID)
	})
	if err != nil {
		s.logger.Error("delete payment failed",
			ports.Int64("payment_id", paymentID),
			ports.Int64("shop_id", shopID),
			ports.Err(err))
		return err
	}

	s.logger.Info("payment deleted",
		ports.Int64("payment_id", paymentID),
		ports.Int64("shop_id", shopID))
	if reversed.IsPositive() {
		observability.RecordLedgerAdjustment(reversed.Neg())
	}
	return nil
}

// GetPayment retrieves a single payment
func (s *Service) GetPayment(ctx context.Context, paymentID, shopID int64) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, nil, paymentID, shopID)
}

// ListPaymentsByShop lists a shop's payments
func (s *Service) ListPaymentsByShop(ctx context.Context, shopID int64) ([]*domain.Payment, error) {
	return s.payments.ListByShop(ctx, nil, shopID)
}

// ListPaymentsByOrder lists the payments recorded against an order
func (s *Service) ListPaymentsByOrder(ctx context.Context, orderID int64) ([]*domain.Payment, error) {
	return s.payments.ListByOrder(ctx, nil, orderID)
}

// ListPaymentsByDateRange lists a shop's payments within [from, to]
func (s *Service) ListPaymentsByDateRange(ctx context.Context, shopID int64, from, to time.Time) ([]*domain.Payment, error) {
	return s.payments.ListByDateRange(ctx, nil, shopID, from, to)
}

// ListPaymentsByMethod lists a shop's payments made with one method
func (s *Service) ListPaymentsByMethod(ctx context.Context, shopID int64, method string) ([]*domain.Payment, error) {
	normalized, _ := domain.NormalizePaymentMethod(method)
	return s.payments.ListByMethod(ctx, nil, shopID, normalized)
}

// PaymentSummary aggregates a shop's completed payments
func (s *Service) PaymentSummary(ctx context.Context, shopID int64) (*domain.PaymentSummary, error) {
	return s.payments.Summary(ctx, nil, shopID)
}

// uniqueTransactionID generates a transaction id when the caller supplied
// none, and suffixes caller-supplied ids with a millisecond timestamp so
// retried submissions cannot collide on the unique column.
func uniqueTransactionID(callerID string) string {
	if callerID == "" {
		return "TXN-" + uuid.New().String()
	}
	return callerID + "-" + strconv.FormatInt(timeutil.Now().UnixMilli(), 10)
}

// mergePayment overlays the request's set fields on the stored payment,
// holding updates to the same method and branch rules as creation
func (s *Service) mergePayment(original *domain.Payment, req sports.UpdatePaymentRequest) (*domain.Payment, error) {
	merged := *original
	if req.Amount != nil {
		merged.Amount = *req.Amount
	}
	if req.Method != nil {
		method, fellBack := domain.NormalizePaymentMethod(*req.Method)
		if fellBack {
			s.logger.Warn("unknown payment method, recording as other",
				ports.String("payment_method", *req.Method),
				ports.Int64("shop_id", original.ShopID))
		}
		merged.Method = method
	}
	if req.Status != nil {
		if !domain.ValidPaymentStatus(*req.Status) {
			return nil, domain.NewDomainError(domain.ErrorCodeValidationFailed,
				"unknown payment status").WithDetail("payment_status", *req.Status)
		}
		merged.Status = domain.PaymentStatus(*req.Status)
	}
	if req.BankAccountID != nil {
		merged.BankAccountID = req.BankAccountID
	}
	if req.BranchName != nil {
		merged.BranchName = *req.BranchName
	}
	if req.Notes != nil {
		merged.Notes = *req.Notes
	}
	if req.PaymentDate != nil {
		merged.PaymentDate = *req.PaymentDate
	}
	if merged.Method.IsBankLinked() && merged.BankAccountID == nil {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField,
			"bank account is required for bank-linked payment methods").
			WithDetail("field", "bank_account_id").
			WithDetail("payment_method", string(merged.Method))
	}
	if merged.Method == domain.PaymentMethodBankDeposit && merged.BranchName == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField,
			"branch name is required for bank deposits").
			WithDetail("field", "branch_name")
	}
	return &merged, nil
}
