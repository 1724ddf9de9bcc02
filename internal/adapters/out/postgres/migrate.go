package postgres

import (
	"bookdesk/internal/adapters/out/postgres/orderrepo"
	"bookdesk/internal/adapters/out/postgres/outboxrepo"
	"bookdesk/internal/adapters/out/postgres/productrepo"
	"bookdesk/internal/adapters/out/postgres/studentrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns. Parents go first
// so the orders foreign keys can be created.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&studentrepo.StudentDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&outboxrepo.OutboxDTO{},
	)
}
