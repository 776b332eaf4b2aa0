package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

type chargeRepository struct {
	db *gorm.DB
}

func (r *chargeRepository) FindByExternalID(ctx context.Context, externalID string) (domain.Charge, error) {
	var rec chargeModel
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Charge{}, domain.ErrNotFound
		}
		return domain.Charge{}, err
	}
	return toDomainCharge(rec), nil
}

func (r *chargeRepository) Create(ctx context.Context, charge domain.Charge) (domain.Charge, error) {
	rec := toChargeModel(charge)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Charge{}, domain.ErrConflict
		}
		return domain.Charge{}, err
	}
	return toDomainCharge(rec), nil
}

// Update rewrites the full row. Select("*") forces zero values through,
// since a remote field going empty must clear the local column too.
func (r *chargeRepository) Update(ctx context.Context, charge domain.Charge) error {
	rec := toChargeModel(charge)
	res := r.db.WithContext(ctx).
		Model(&chargeModel{}).
		Where("external_id = ?", charge.ExternalID).
		Select("*").
		Omit("external_id", "created_at", "sale_order_name").
		Updates(&rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *chargeRepository) UpdateFields(ctx context.Context, externalID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&chargeModel{}).
		Where("external_id = ?", externalID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *chargeRepository) List(ctx context.Context, query ports.ChargeQuery) ([]domain.Charge, error) {
	q := r.db.WithContext(ctx).Model(&chargeModel{})
	if len(query.NotInExternalIDs) > 0 {
		q = q.Where("external_id NOT IN ?", query.NotInExternalIDs)
	}
	if query.PaymentDateFrom != nil {
		q = q.Where("payment_date >= ?", *query.PaymentDateFrom)
	}
	if query.PaymentDateTo != nil {
		q = q.Where("payment_date <= ?", *query.PaymentDateTo)
	}
	if query.Unlinked {
		q = q.Where("sale_order_name = ''")
	}
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}
	if query.Offset > 0 {
		q = q.Offset(query.Offset)
	}

	var rows []chargeModel
	if err := q.Order("payment_date DESC NULLS LAST, external_id").Find(&rows).Error; err != nil {
		return nil, err
	}

	charges := make([]domain.Charge, 0, len(rows))
	for _, row := range rows {
		charges = append(charges, toDomainCharge(row))
	}
	return charges, nil
}

func (r *chargeRepository) DeleteByExternalIDs(ctx context.Context, externalIDs []string) (int64, error) {
	if len(externalIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("external_id IN ?", externalIDs).
		Delete(&chargeModel{})
	return res.RowsAffected, res.Error
}

func (r *chargeRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&chargeModel{})
	return res.RowsAffected, res.Error
}
