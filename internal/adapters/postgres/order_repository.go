package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/paymentrails/monei-sync/internal/domain"
)

// orderRepository reads the host application's sale_orders table. The sync
// service never writes orders; linkage is matched by order name only, and
// only confirmed orders participate.
type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) GetByName(ctx context.Context, name string) (domain.Order, error) {
	var rec orderModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Where("state IN ?", []string{"sale", "done"}).
		Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, err
	}
	return toDomainOrder(rec), nil
}
