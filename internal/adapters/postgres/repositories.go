package postgres

import (
	"gorm.io/gorm"

	"github.com/paymentrails/monei-sync/internal/ports"
)

type Repositories struct {
	Charges  ports.ChargeRepository
	Orders   ports.OrderRepository
	Settings ports.SettingsRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Charges:  &chargeRepository{db: db},
		Orders:   &orderRepository{db: db},
		Settings: &settingsRepository{db: db},
	}
}
