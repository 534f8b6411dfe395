package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/currency_exchange_app/internal/models"
	"github.com/SscSPs/currency_exchange_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSegmentationRepository struct {
	BaseRepository
}

func newPgxSegmentationRepository(db *pgxpool.Pool) *PgxSegmentationRepository {
	return &PgxSegmentationRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SegmentationRepository = (*PgxSegmentationRepository)(nil)

const segmentationColumns = `segmentation_id, name, discount_percent, status, created_at, created_by, last_updated_at, last_updated_by`

func scanSegmentation(row pgx.Row) (models.Segmentation, error) {
	var m models.Segmentation
	err := row.Scan(&m.SegmentationID, &m.Name, &m.DiscountPercent, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxSegmentationRepository) FindSegmentationByID(ctx context.Context, segmentationID string) (*domain.Segmentation, error) {
	m, err := scanSegmentation(r.Pool.QueryRow(ctx,
		`SELECT `+segmentationColumns+` FROM segmentations WHERE segmentation_id = $1;`, segmentationID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find segmentation %s", segmentationID)
	}
	seg := mapping.ToDomainSegmentation(m)
	return &seg, nil
}

func (r *PgxSegmentationRepository) ListSegmentations(ctx context.Context) ([]domain.Segmentation, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+segmentationColumns+` FROM segmentations ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query segmentations: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Segmentation, error) {
		return scanSegmentation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan segmentations: %w", err)
	}
	segs := make([]domain.Segmentation, len(ms))
	for i, m := range ms {
		segs[i] = mapping.ToDomainSegmentation(m)
	}
	return segs, nil
}

func (r *PgxSegmentationRepository) SaveSegmentation(ctx context.Context, seg domain.Segmentation) error {
	m := mapping.ToModelSegmentation(seg)
	_, err := r.Pool.Exec(ctx, `INSERT INTO segmentations (`+segmentationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.SegmentationID, m.Name, m.DiscountPercent, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return translateWriteError(err, "segmentation "+m.Name)
	}
	return nil
}

func (r *PgxSegmentationRepository) UpdateSegmentation(ctx context.Context, seg domain.Segmentation) error {
	m := mapping.ToModelSegmentation(seg)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE segmentations
		SET name = $1, discount_percent = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE segmentation_id = $6;`,
		m.Name, m.DiscountPercent, m.Status, m.LastUpdatedAt, m.LastUpdatedBy, m.SegmentationID)
	if err != nil {
		return translateWriteError(err, "segmentation "+m.Name)
	}
	return requireAffected(tag, "segmentation "+m.SegmentationID)
}
