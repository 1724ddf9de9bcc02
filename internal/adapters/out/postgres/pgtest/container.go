// Package pgtest starts a throwaway PostgreSQL for integration suites and
// seeds the reference rows orders depend on.
package pgtest

import (
	"context"
	"time"

	"bookdesk/internal/adapters/out/postgres"
	"bookdesk/internal/adapters/out/postgres/productrepo"
	"bookdesk/internal/adapters/out/postgres/studentrepo"
	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/product"
	"bookdesk/internal/core/domain/model/student"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a migrated PostgreSQL container.
type Database struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and applies the schema.
func Start(ctx context.Context, t require.TestingT) *Database {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	return &Database{Container: container, DB: db}
}

// Truncate empties every table.
func (d *Database) Truncate(t require.TestingT) {
	require.NoError(t, d.DB.Exec("TRUNCATE TABLE outbox, orders, products, students").Error)
}

// Terminate stops the container.
func (d *Database) Terminate(t require.TestingT) {
	if d != nil && d.Container != nil {
		require.NoError(t, d.Container.Terminate(context.Background()))
	}
}

// SeedStudent inserts a student of classID with a unique seat id.
func (d *Database) SeedStudent(t require.TestingT, name string, classID int) *student.Student {
	id := kernel.NewUUID()
	s, err := student.NewStudent(id, name, "seat-"+id.String()[:8], classID)
	require.NoError(t, err)

	_, err = studentrepo.NewGormStudentRepository(d.DB).UpsertBySeatID(context.Background(), s)
	require.NoError(t, err)
	return s
}

// SeedProduct inserts an active BOOK product owned by ownerID.
func (d *Database) SeedProduct(t require.TestingT, ownerID kernel.UUID, name string, classID int) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), ownerID, name, decimal.NewFromInt(100),
		classID, product.KindBook, product.DefaultPaymentOptions("01000000000"), time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, productrepo.NewGormProductRepository(d.DB).Add(context.Background(), p))
	return p
}

