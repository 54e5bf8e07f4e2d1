package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/catalog"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database with every table migrated.
// One connection keeps the in-memory database alive across queries.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func mustCategory(t *testing.T, db *gorm.DB, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(name, name+" for clinics", "https://cdn.example.com/"+uuid.NewString()+".jpg")
	require.NoError(t, err)
	require.NoError(t, db.Create(c).Error)
	return c
}

func mustProduct(t *testing.T, db *gorm.DB, name string, categoryID uuid.UUID, price int64, createdAt time.Time) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{
		Name:             name,
		CategoryID:       categoryID,
		Price:            dec(price),
		ShortDescription: name + " for everyday use",
		Stock:            10,
		Colors:           []string{"Blue"},
		Sizes:            []string{"M", "L"},
		Images:           []string{"https://cdn.example.com/" + uuid.NewString() + ".jpg"},
	})
	require.NoError(t, err)
	p.CreatedAt = createdAt
	p.UpdatedAt = createdAt
	require.NoError(t, db.Omit("Category").Create(p).Error)
	return p
}

func newTestOrder(t *testing.T, number, email string, total int64, createdAt time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(number, order.Customer{
		Name:    "Ayesha Khan",
		Email:   email,
		Phone:   "03001234567",
		Address: "12 Mall Road",
		City:    "Lahore",
	}, order.PaymentCashOnDelivery, []order.Item{
		{ProductID: uuid.NewString(), Name: "Stethoscope", Price: dec(total - 200), Quantity: 1, Size: "no-size", Color: "no-color"},
		{ProductID: uuid.NewString(), Name: "Gloves", Price: dec(0), Quantity: 3},
	}, dec(200))
	require.NoError(t, err)
	o.CreatedAt = createdAt
	o.UpdatedAt = createdAt
	return o
}
