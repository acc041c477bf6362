package tests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/service"
)

func setupDebts(t *testing.T) (service.DebtService, *mockDebtRepository, *mockEventDispatcher) {
	repo := newMockDebtRepository()
	dispatcher := &mockEventDispatcher{}
	debts := service.NewDebtService(repo, dispatcher)
	return debts, repo, dispatcher
}

func TestRecordDebt(t *testing.T) {
	debts, repo, dispatcher := setupDebts(t)

	t.Run("Success with default due date", func(t *testing.T) {
		debt, err := debts.RecordDebt("Budi", 50000, "rokok dan kopi", nil)

		require.NoError(t, err)
		require.NotNil(t, debt)
		assert.Equal(t, "Budi", debt.CustomerName)
		assert.Equal(t, model.DebtStatusActive, debt.Status)
		assert.WithinDuration(t, debt.CreatedAt.Add(model.DefaultDebtTerm), debt.DueDate, time.Second)

		saved, err := repo.Find(debt.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(50000), saved.Amount)

		require.Len(t, dispatcher.events, 1)
		event := dispatcher.events[0].(model.DebtRecorded)
		assert.Equal(t, int64(50000), event.Amount)
	})

	t.Run("Explicit due date is kept", func(t *testing.T) {
		due := time.Now().UTC().AddDate(0, 1, 0)
		debt, err := debts.RecordDebt("Siti", 25000, "", &due)

		require.NoError(t, err)
		assert.True(t, debt.DueDate.Equal(due))
	})

	t.Run("Fail on empty customer name", func(t *testing.T) {
		_, err := debts.RecordDebt("   ", 1000, "", nil)
		assert.ErrorIs(t, err, model.ErrEmptyCustomer)
	})

	t.Run("Fail on non-positive amount", func(t *testing.T) {
		_, err := debts.RecordDebt("Budi", 0, "", nil)
		assert.ErrorIs(t, err, model.ErrInvalidDebtValue)
	})
}

func TestMarkPaid(t *testing.T) {
	debts, repo, dispatcher := setupDebts(t)
	debt, _ := debts.RecordDebt("Budi", 50000, "", nil)
	debts.RecordDebt("Siti", 20000, "", nil)

	totalBefore, _ := debts.TotalActiveDebt()
	require.Equal(t, int64(70000), totalBefore)

	dispatcher.Reset()
	require.NoError(t, debts.MarkPaid(debt.ID))

	paid, _ := repo.Find(debt.ID)
	assert.Equal(t, model.DebtStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	firstPaidAt := *paid.PaidAt

	active, _ := debts.ActiveDebts()
	require.Len(t, active, 1)
	assert.Equal(t, "Siti", active[0].CustomerName)

	totalAfter, _ := debts.TotalActiveDebt()
	assert.Equal(t, totalBefore-50000, totalAfter)

	require.Len(t, dispatcher.events, 1)
	_, ok := dispatcher.events[0].(model.DebtSettled)
	assert.True(t, ok)

	t.Run("Marking paid twice keeps the original timestamp", func(t *testing.T) {
		dispatcher.Reset()
		require.NoError(t, debts.MarkPaid(debt.ID))

		again, _ := repo.Find(debt.ID)
		assert.Equal(t, model.DebtStatusPaid, again.Status)
		assert.True(t, again.PaidAt.Equal(firstPaidAt))
		assert.Empty(t, dispatcher.events)
	})
}

func TestDeleteDebt(t *testing.T) {
	debts, repo, _ := setupDebts(t)
	active, _ := debts.RecordDebt("Budi", 50000, "", nil)
	paid, _ := debts.RecordDebt("Siti", 20000, "", nil)
	require.NoError(t, debts.MarkPaid(paid.ID))

	// Deletable in any state.
	require.NoError(t, debts.DeleteDebt(active.ID))
	require.NoError(t, debts.DeleteDebt(paid.ID))

	all, _ := repo.List()
	assert.Empty(t, all)
}

func TestPaidDebts(t *testing.T) {
	debts, _, _ := setupDebts(t)
	first, _ := debts.RecordDebt("Budi", 50000, "", nil)
	debts.RecordDebt("Siti", 20000, "", nil)
	require.NoError(t, debts.MarkPaid(first.ID))

	paid, err := debts.PaidDebts()
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, "Budi", paid[0].CustomerName)
}
