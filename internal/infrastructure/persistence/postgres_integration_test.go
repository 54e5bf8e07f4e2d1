package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/catalog"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/migration"
	"github.com/hmehmood121/ZuhaSurgical/migrations"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newPostgresDB starts a postgres container and applies the embedded migrations
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("zuha_store_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	m, err := migration.New(migrationDB, migrations.FS, nil)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Positive(t, version)
	require.NoError(t, m.Close())

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db
}

func TestPostgres_MigratedSchemaSupportsRepositories(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()

	categories := NewGormCategoryRepository(db)
	products := NewGormProductRepository(db)
	orders := NewGormOrderRepository(db)

	cat, err := catalog.NewCategory("Diagnostics", "Thermometers and monitors", "https://cdn.example.com/d.jpg")
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, cat))

	old := dec(1200)
	p, err := catalog.NewProduct(catalog.ProductDetails{
		Name:       "Digital Thermometer",
		CategoryID: cat.ID,
		Price:      dec(800),
		OldPrice:   &old,
		Stock:      5,
		Sizes:      []string{"Adult", "Child"},
	})
	require.NoError(t, err)
	require.NoError(t, products.Save(ctx, p))

	under, _ := catalog.ParsePriceRange("under-1000")
	found, total, err := products.FindAll(ctx, catalog.ProductFilter{
		Filter:     shared.Filter{Search: "thermo"},
		PriceRange: under,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"Adult", "Child"}, found[0].Sizes)
	assert.True(t, found[0].OldPrice.Decimal.Equal(old))

	o := newTestOrder(t, "ORD-20260114-PGTEST", "ayesha@example.com", 1800, time.Now().UTC())
	require.NoError(t, orders.Create(ctx, o))
	require.NoError(t, o.UpdateStatus(order.StatusShipped))
	require.NoError(t, orders.Update(ctx, o))

	stats, err := orders.Stats(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.Shipped)
	assert.True(t, stats.TotalRevenue.Equal(dec(1800)))

	require.NoError(t, orders.Delete(ctx, o.ID))
	_, err = orders.FindByNumber(ctx, o.OrderNumber)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
