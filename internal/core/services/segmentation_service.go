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
	"github.com/shopspring/decimal"
)

var maxDiscount = decimal.NewFromInt(100)

type SegmentationService struct {
	BaseService
	segmentationRepo portsrepo.SegmentationRepository
}

func NewSegmentationService(segmentationRepo portsrepo.SegmentationRepository) *SegmentationService {
	return &SegmentationService{segmentationRepo: segmentationRepo}
}

func validateDiscount(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(maxDiscount) {
		return fmt.Errorf("%w: discount must be between 0 and 100", apperrors.ErrValidation)
	}
	return nil
}

func parseStatus(raw *string, fallback domain.Status) (domain.Status, error) {
	if raw == nil {
		return fallback, nil
	}
	status := domain.Status(strings.ToUpper(*raw))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: invalid status '%s'", apperrors.ErrValidation, *raw)
	}
	return status, nil
}

func (s *SegmentationService) CreateSegmentation(ctx context.Context, req dto.CreateSegmentationRequest, creatorUserID string) (*domain.Segmentation, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if err := validateDiscount(req.DiscountPercent); err != nil {
		return nil, err
	}
	status, err := parseStatus(req.Status, domain.StatusActive)
	if err != nil {
		return nil, err
	}

	seg := domain.Segmentation{
		SegmentationID:  uuid.NewString(),
		Name:            name,
		DiscountPercent: req.DiscountPercent,
		Status:          status,
		AuditFields:     domain.NewAuditFields(creatorUserID, s.CurrentTime()),
	}
	if err := s.segmentationRepo.SaveSegmentation(ctx, seg); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save segmentation", slog.String("name", name))
		}
		return nil, fmt.Errorf("failed to create segmentation %s: %w", name, err)
	}
	s.LogInfo(ctx, "Segmentation created", slog.String("segmentation_id", seg.SegmentationID))
	return &seg, nil
}

func (s *SegmentationService) GetSegmentationByID(ctx context.Context, segmentationID string) (*domain.Segmentation, error) {
	seg, err := s.segmentationRepo.FindSegmentationByID(ctx, segmentationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get segmentation %s: %w", segmentationID, err)
	}
	return seg, nil
}

func (s *SegmentationService) ListSegmentations(ctx context.Context) ([]domain.Segmentation, error) {
	segs, err := s.segmentationRepo.ListSegmentations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list segmentations: %w", err)
	}
	if segs == nil {
		return []domain.Segmentation{}, nil
	}
	return segs, nil
}

func (s *SegmentationService) UpdateSegmentation(ctx context.Context, segmentationID string, req dto.UpdateSegmentationRequest, userID string) (*domain.Segmentation, error) {
	seg, err := s.GetSegmentationByID(ctx, segmentationID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		seg.Name = name
	}
	if req.DiscountPercent != nil {
		if err := validateDiscount(*req.DiscountPercent); err != nil {
			return nil, err
		}
		seg.DiscountPercent = *req.DiscountPercent
	}
	if seg.Status, err = parseStatus(req.Status, seg.Status); err != nil {
		return nil, err
	}

	seg.Touch(userID, s.CurrentTime())
	if err := s.segmentationRepo.UpdateSegmentation(ctx, *seg); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update segmentation", slog.String("segmentation_id", segmentationID))
		}
		return nil, fmt.Errorf("failed to update segmentation %s: %w", segmentationID, err)
	}
	return seg, nil
}
