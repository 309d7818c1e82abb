package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"invoice-extract/database"
	"invoice-extract/models"
	"invoice-extract/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testStore struct {
	db            *gorm.DB
	registrations *repository.RegistrationRepository
	transactions  *repository.TransactionRepository
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return &testStore{
		db:            db,
		registrations: repository.NewRegistrationRepository(db),
		transactions:  repository.NewTransactionRepository(db),
	}
}

func (s *testStore) register(t *testing.T, phone, taxID string) {
	t.Helper()
	require.NoError(t, s.registrations.PutRegistration(context.Background(), phone, taxID))
}

func (s *testStore) note(t *testing.T, id, taxID string, total, date *string, capturedAt time.Time) {
	t.Helper()
	require.NoError(t, s.transactions.PutTransaction(context.Background(), &models.Transaction{
		ID:         id,
		TaxID:      taxID,
		TotalValue: total,
		Date:       date,
		CapturedAt: capturedAt,
	}))
}

func str(s string) *string { return &s }
