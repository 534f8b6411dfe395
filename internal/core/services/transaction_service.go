package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/monitoring"
	"github.com/google/uuid"
)

// ErrNoOperativeClient is returned when a transaction cannot be attributed to any client.
var ErrNoOperativeClient = fmt.Errorf("%w: no operative client selected", apperrors.ErrValidation)

// TransactionService records exchange operations with the quote frozen at creation.
type TransactionService struct {
	BaseService
	txnRepo          portsrepo.TransactionRepository
	clientRepo       portsrepo.ClientReader
	paymentMethods   portsrepo.PaymentMethodRepository
	accounts         portsrepo.AccreditationAccountRepository
	simulation       portssvc.SimulationSvc
	operativeClients portssvc.OperativeClientSvc
	metrics          monitoring.MetricsService
}

type TransactionServiceDeps struct {
	TransactionRepo  portsrepo.TransactionRepository
	ClientRepo       portsrepo.ClientReader
	PaymentMethods   portsrepo.PaymentMethodRepository
	Accounts         portsrepo.AccreditationAccountRepository
	Simulation       portssvc.SimulationSvc
	OperativeClients portssvc.OperativeClientSvc
	Authorizer       portssvc.PermissionChecker
	Metrics          monitoring.MetricsService
}

func NewTransactionService(deps TransactionServiceDeps) *TransactionService {
	metrics := deps.Metrics
	if metrics == nil {
		metrics = monitoring.NoopMetrics{}
	}
	return &TransactionService{
		BaseService:      BaseService{Authorizer: deps.Authorizer},
		txnRepo:          deps.TransactionRepo,
		clientRepo:       deps.ClientRepo,
		paymentMethods:   deps.PaymentMethods,
		accounts:         deps.Accounts,
		simulation:       deps.Simulation,
		operativeClients: deps.OperativeClients,
		metrics:          metrics,
	}
}

// resolveClient picks the explicit client of the request, or the operative client of userID.
func (s *TransactionService) resolveClient(ctx context.Context, userID string, clientID *string) (*domain.Client, error) {
	if clientID == nil || *clientID == "" {
		client, err := s.operativeClients.GetOperativeClient(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve operative client: %w", err)
		}
		if client == nil {
			return nil, ErrNoOperativeClient
		}
		return client, nil
	}

	client, err := s.clientRepo.FindClientByID(ctx, *clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client %s: %w", *clientID, err)
	}
	assigned, err := s.clientRepo.IsUserAssigned(ctx, userID, client.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check client assignment: %w", err)
	}
	if !assigned {
		canManage, err := s.HasPermission(ctx, userID, domain.PermTransactionsManage)
		if err != nil {
			return nil, fmt.Errorf("failed to check permissions: %w", err)
		}
		if !canManage {
			return nil, fmt.Errorf("%w: user does not operate for client %s", apperrors.ErrForbidden, client.ClientID)
		}
	}
	if !client.IsActive() {
		return nil, fmt.Errorf("%w: client %s is inactive", apperrors.ErrValidation, client.ClientID)
	}
	return client, nil
}

func (s *TransactionService) requirePaymentMethod(ctx context.Context, id string) error {
	pm, err := s.paymentMethods.FindPaymentMethodByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: payment method %s not found", apperrors.ErrValidation, id)
		}
		return fmt.Errorf("failed to load payment method %s: %w", id, err)
	}
	if !pm.IsActive {
		return fmt.Errorf("%w: payment method %s is inactive", apperrors.ErrValidation, id)
	}
	return nil
}

func (s *TransactionService) requireAccount(ctx context.Context, clientID, accountID string) error {
	acc, err := s.accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: accreditation account %s not found", apperrors.ErrValidation, accountID)
		}
		return fmt.Errorf("failed to load accreditation account %s: %w", accountID, err)
	}
	if acc.ClientID != clientID {
		return fmt.Errorf("%w: accreditation account %s does not belong to client %s", apperrors.ErrValidation, accountID, clientID)
	}
	if !acc.IsActive {
		return fmt.Errorf("%w: accreditation account %s is inactive", apperrors.ErrValidation, accountID)
	}
	return nil
}

func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	client, err := s.resolveClient(ctx, userID, req.ClienteID)
	if err != nil {
		return nil, err
	}
	if req.PaymentMethodID != nil {
		if err := s.requirePaymentMethod(ctx, *req.PaymentMethodID); err != nil {
			return nil, err
		}
	}
	if req.AccreditationAccountID != nil {
		if err := s.requireAccount(ctx, client.ClientID, *req.AccreditationAccountID); err != nil {
			return nil, err
		}
	}

	quote, err := s.simulation.QuoteForClient(ctx, client, req.SimulateConversionRequest)
	if err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	txn := domain.Transaction{
		TransactionID:           uuid.NewString(),
		OwnerUserID:             userID,
		ClientID:                client.ClientID,
		Amount:                  quote.Amount,
		Operation:               quote.Operation,
		Status:                  domain.TransactionPending,
		OriginCurrencyCode:      quote.OriginCurrencyCode,
		DestinationCurrencyCode: quote.DestinationCurrencyCode,
		RateApplied:             quote.EffectiveRate,
		RateReferenceID:         quote.Rate.ExchangeRateID,
		DiscountPercent:         quote.DiscountPercent,
		ResultAmount:            quote.Result,
		Margin:                  quote.Margin,
		PaymentMethodID:         req.PaymentMethodID,
		AccreditationAccountID:  req.AccreditationAccountID,
		CreatedAt:               now,
		LastUpdatedAt:           now,
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("client_id", client.ClientID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	s.metrics.RecordTransaction(string(txn.Operation), string(txn.Status))
	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("client_id", txn.ClientID),
		slog.String("rate_id", txn.RateReferenceID))
	return &txn, nil
}

// GetTransaction hides transactions of other users unless userID holds transactions.manage.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	if _, err := uuid.Parse(transactionID); err != nil {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	if txn.OwnerUserID == userID {
		return txn, nil
	}
	canManage, err := s.HasPermission(ctx, userID, domain.PermTransactionsManage)
	if err != nil {
		return nil, fmt.Errorf("failed to check permissions: %w", err)
	}
	if !canManage {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return txn, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	txns, next, err := s.txnRepo.ListTransactionsByOwner(ctx, userID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, next, nil
}

func (s *TransactionService) UpdateTransactionStatus(ctx context.Context, userID, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move transaction from %s to %s", apperrors.ErrValidation, txn.Status, status)
	}

	now := s.CurrentTime()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, txn.Status, status, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction %s is no longer %s", apperrors.ErrValidation, transactionID, txn.Status)
		}
		s.LogError(ctx, err, "Failed to update transaction status", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	txn.Status = status
	txn.LastUpdatedAt = now
	s.metrics.RecordTransaction(string(txn.Operation), string(status))
	s.LogInfo(ctx, "Transaction status updated", slog.String("transaction_id", transactionID), slog.String("status", string(status)))
	return txn, nil
}
