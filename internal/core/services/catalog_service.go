package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
)

// PaymentMethodService manages the payment method catalog.
type PaymentMethodService struct {
	BaseService
	repo portsrepo.PaymentMethodRepository
}

func NewPaymentMethodService(repo portsrepo.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{repo: repo}
}

func (s *PaymentMethodService) GetPaymentMethodByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: payment method %s", apperrors.ErrNotFound, id)
	}
	pm, err := s.repo.FindPaymentMethodByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method %s: %w", id, err)
	}
	return pm, nil
}

func (s *PaymentMethodService) ListPaymentMethods(ctx context.Context, onlyActive bool) ([]domain.PaymentMethod, error) {
	pms, err := s.repo.ListPaymentMethods(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	if pms == nil {
		return []domain.PaymentMethod{}, nil
	}
	return pms, nil
}

func (s *PaymentMethodService) CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, creatorUserID string) (*domain.PaymentMethod, error) {
	pmType := domain.PaymentMethodType(strings.ToUpper(req.Type))
	if !pmType.IsValid() {
		return nil, fmt.Errorf("%w: invalid payment method type '%s'", apperrors.ErrValidation, req.Type)
	}
	pm := domain.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		Name:            strings.TrimSpace(req.Name),
		Type:            pmType,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(creatorUserID, s.CurrentTime()),
	}
	if err := s.repo.SavePaymentMethod(ctx, pm); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save payment method", slog.String("name", pm.Name))
		}
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}
	s.LogInfo(ctx, "Payment method created", slog.String("payment_method_id", pm.PaymentMethodID))
	return &pm, nil
}

func (s *PaymentMethodService) UpdatePaymentMethod(ctx context.Context, id string, req dto.UpdatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error) {
	pm, err := s.GetPaymentMethodByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		pm.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		pmType := domain.PaymentMethodType(strings.ToUpper(*req.Type))
		if !pmType.IsValid() {
			return nil, fmt.Errorf("%w: invalid payment method type '%s'", apperrors.ErrValidation, *req.Type)
		}
		pm.Type = pmType
	}
	if req.IsActive != nil {
		pm.IsActive = *req.IsActive
	}
	pm.Touch(userID, s.CurrentTime())
	if err := s.repo.UpdatePaymentMethod(ctx, *pm); err != nil {
		return nil, fmt.Errorf("failed to update payment method %s: %w", id, err)
	}
	return pm, nil
}

// AccreditationAccountService manages the accounts a client is credited through.
type AccreditationAccountService struct {
	BaseService
	repo         portsrepo.AccreditationAccountRepository
	clientRepo   portsrepo.ClientReader
	currencyRepo portsrepo.CurrencyReader
}

func NewAccreditationAccountService(repo portsrepo.AccreditationAccountRepository, clientRepo portsrepo.ClientReader, currencyRepo portsrepo.CurrencyReader) *AccreditationAccountService {
	return &AccreditationAccountService{repo: repo, clientRepo: clientRepo, currencyRepo: currencyRepo}
}

func (s *AccreditationAccountService) requireClient(ctx context.Context, clientID string) error {
	if _, err := uuid.Parse(clientID); err != nil {
		return fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
	}
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		return fmt.Errorf("failed to load client %s: %w", clientID, err)
	}
	return nil
}

// GetAccountByID only returns accounts belonging to clientID.
func (s *AccreditationAccountService) GetAccountByID(ctx context.Context, clientID, accountID string) (*domain.AccreditationAccount, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil, fmt.Errorf("%w: accreditation account %s", apperrors.ErrNotFound, accountID)
	}
	acc, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accreditation account %s: %w", accountID, err)
	}
	if acc.ClientID != clientID {
		return nil, fmt.Errorf("%w: accreditation account %s", apperrors.ErrNotFound, accountID)
	}
	return acc, nil
}

func (s *AccreditationAccountService) ListAccounts(ctx context.Context, clientID string) ([]domain.AccreditationAccount, error) {
	if err := s.requireClient(ctx, clientID); err != nil {
		return nil, err
	}
	accs, err := s.repo.ListAccountsByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accreditation accounts of client %s: %w", clientID, err)
	}
	if accs == nil {
		return []domain.AccreditationAccount{}, nil
	}
	return accs, nil
}

func (s *AccreditationAccountService) CreateAccount(ctx context.Context, clientID string, req dto.CreateAccreditationAccountRequest, creatorUserID string) (*domain.AccreditationAccount, error) {
	if err := s.requireClient(ctx, clientID); err != nil {
		return nil, err
	}
	accType := domain.AccreditationAccountType(strings.ToUpper(req.Type))
	if !accType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type '%s'", apperrors.ErrValidation, req.Type)
	}
	code := strings.ToUpper(req.CurrencyCode)
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, code)
		}
		return nil, fmt.Errorf("failed to load currency %s: %w", code, err)
	}

	acc := domain.AccreditationAccount{
		AccountID:     uuid.NewString(),
		ClientID:      clientID,
		Type:          accType,
		Provider:      strings.TrimSpace(req.Provider),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		HolderName:    strings.TrimSpace(req.HolderName),
		CurrencyCode:  code,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(creatorUserID, s.CurrentTime()),
	}
	if err := s.repo.SaveAccount(ctx, acc); err != nil {
		s.LogError(ctx, err, "Failed to save accreditation account", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to create accreditation account: %w", err)
	}
	s.LogInfo(ctx, "Accreditation account created", slog.String("account_id", acc.AccountID), slog.String("client_id", clientID))
	return &acc, nil
}

func (s *AccreditationAccountService) UpdateAccount(ctx context.Context, clientID, accountID string, req dto.UpdateAccreditationAccountRequest, userID string) (*domain.AccreditationAccount, error) {
	acc, err := s.GetAccountByID(ctx, clientID, accountID)
	if err != nil {
		return nil, err
	}
	if req.Provider != nil {
		acc.Provider = strings.TrimSpace(*req.Provider)
	}
	if req.AccountNumber != nil {
		acc.AccountNumber = strings.TrimSpace(*req.AccountNumber)
	}
	if req.HolderName != nil {
		acc.HolderName = strings.TrimSpace(*req.HolderName)
	}
	if req.IsActive != nil {
		acc.IsActive = *req.IsActive
	}
	acc.Touch(userID, s.CurrentTime())
	if err := s.repo.UpdateAccount(ctx, *acc); err != nil {
		return nil, fmt.Errorf("failed to update accreditation account %s: %w", accountID, err)
	}
	return acc, nil
}
