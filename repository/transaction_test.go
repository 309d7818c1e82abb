package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-extract/models"
)

func seedTransactions(t *testing.T, repo *TransactionRepository) {
	t.Helper()
	notes := []models.Transaction{
		{ID: "tx-1", TaxID: "123.456.789-00", TotalValue: strPtr("10,00"), CapturedAt: mustTime(t, "2024-01-01T10:00:00Z")},
		{ID: "tx-2", TaxID: "123.456.789-00", TotalValue: strPtr("20,00"), CapturedAt: mustTime(t, "2024-01-02T10:00:00Z")},
		{ID: "tx-3", TaxID: "123.456.789-00", TotalValue: strPtr("30,00"), CapturedAt: mustTime(t, "2024-01-03T10:00:00Z")},
		{ID: "tx-4", TaxID: "999.999.999-99", TotalValue: strPtr("40,00"), CapturedAt: mustTime(t, "2024-01-04T10:00:00Z")},
	}
	for i := range notes {
		require.NoError(t, repo.PutTransaction(ctx(), &notes[i]))
	}
}

func TestTransactionRepository_PutTransaction(t *testing.T) {
	t.Run("stores optional fields as given", func(t *testing.T) {
		repo := NewTransactionRepository(newTestDB(t))
		tx := &models.Transaction{
			ID:          "tx-1",
			TaxID:       "123.456.789-00",
			TotalValue:  strPtr("1.234.56"),
			IssuerTaxID: strPtr("12.345.678/0001-90"),
			CapturedAt:  mustTime(t, "2024-05-10T12:00:00Z"),
		}
		require.NoError(t, repo.PutTransaction(ctx(), tx))

		all, err := repo.AllByTaxID(ctx(), "123.456.789-00")
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "1.234.56", *all[0].TotalValue)
		assert.Nil(t, all[0].Date)
		assert.Equal(t, "12.345.678/0001-90", *all[0].IssuerTaxID)
	})

	t.Run("missing tax id is rejected", func(t *testing.T) {
		repo := NewTransactionRepository(newTestDB(t))
		err := repo.PutTransaction(ctx(), &models.Transaction{ID: "tx-1"})
		assert.ErrorIs(t, err, ErrMissingTaxID)
	})

	t.Run("duplicate id fails", func(t *testing.T) {
		repo := NewTransactionRepository(newTestDB(t))
		require.NoError(t, repo.PutTransaction(ctx(), &models.Transaction{ID: "tx-1", TaxID: "1"}))
		err := repo.PutTransaction(ctx(), &models.Transaction{ID: "tx-1", TaxID: "1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save transaction")
	})
}

func TestTransactionRepository_ListByTaxID(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	seedTransactions(t, repo)

	txs, total, err := repo.ListByTaxID(ctx(), "123.456.789-00", Page{Number: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, txs, 2)
	assert.Equal(t, "tx-3", txs[0].ID)
	assert.Equal(t, "tx-2", txs[1].ID)

	txs, _, err = repo.ListByTaxID(ctx(), "123.456.789-00", Page{Number: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "tx-1", txs[0].ID)

	txs, total, err = repo.ListByTaxID(ctx(), "000", Page{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, txs)
}

func TestTransactionRepository_AllByTaxID(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	seedTransactions(t, repo)

	txs, err := repo.AllByTaxID(ctx(), "123.456.789-00")
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, []string{"tx-1", "tx-2", "tx-3"}, []string{txs[0].ID, txs[1].ID, txs[2].ID})
}

func TestTransactionRepository_Stats(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	seedTransactions(t, repo)

	stats, err := repo.Stats(ctx(), "123.456.789-00")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)
	require.NotNil(t, stats.LastCapturedAt)
	assert.True(t, stats.LastCapturedAt.Equal(mustTime(t, "2024-01-03T10:00:00Z")))

	stats, err = repo.Stats(ctx(), "000")
	require.NoError(t, err)
	assert.Zero(t, stats.Count)
	assert.Nil(t, stats.LastCapturedAt)
}
