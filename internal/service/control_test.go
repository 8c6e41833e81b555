package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrbot/internal/constants"
	"hrbot/internal/models"
)

func seedPayout(t *testing.T, svc *PayoutService, p models.Payout) models.Payout {
	t.Helper()
	created, err := svc.repo.Create(p)
	require.NoError(t, err)
	return created
}

func controlRowByID(t *testing.T, rows []ControlRow, id string) ControlRow {
	t.Helper()
	for _, r := range rows {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("строка контрольного отчета с ID %s не найдена", id)
	return ControlRow{}
}

func TestListControl_Warnings(t *testing.T) {
	lookup := fakeLookup{
		"100": {ID: "100", Name: "Иванов Сергей", Bank: "Сбербанк"},
		"200": {ID: "200", Name: "Петрова Анна", Status: "inactive"},
	}
	svc := newTestService(t, lookup, nil, nil)
	// Лимит 50000, "сейчас" — 2025-07-10 12:00:00 (см. newTestService).

	old := seedPayout(t, svc, models.Payout{
		ID: "1", EmployeeID: "100", Bank: "Тинькофф", Amount: 30000,
		Status: constants.STATUS_PENDING, Timestamp: "2025-07-05 10:00:00", IsManual: true,
	})
	recent := seedPayout(t, svc, models.Payout{
		ID: "2", EmployeeID: "100", Bank: "Сбербанк", Amount: 25000,
		Status: constants.STATUS_APPROVED, Timestamp: "2025-07-07 09:00:00",
	})
	inactive := seedPayout(t, svc, models.Payout{
		ID: "3", EmployeeID: "200", Amount: 1000,
		Status: constants.STATUS_APPROVED, Timestamp: "2025-07-09 09:00:00",
	})
	unknown := seedPayout(t, svc, models.Payout{
		ID: "4", EmployeeID: "999", Amount: 1000,
		Status: constants.STATUS_APPROVED, Timestamp: "2025-07-09 10:00:00",
	})

	rows := svc.ListControl(models.PayoutFilter{})
	require.Len(t, rows, 4)

	oldRow := controlRowByID(t, rows, old.ID)
	assert.ElementsMatch(t, []string{"limit_exceeded", "pending_too_long", "changed_bank_data", "manual_created"}, oldRow.Warnings)
	assert.Equal(t, 55000.0, oldRow.PreviousTotalMonth)
	assert.Equal(t, 0, oldRow.PreviousRequestsCount)
	assert.True(t, oldRow.IsEmployeeActive)

	recentRow := controlRowByID(t, rows, recent.ID)
	assert.ElementsMatch(t, []string{"limit_exceeded", "frequent_request"}, recentRow.Warnings)
	assert.Equal(t, 1, recentRow.PreviousRequestsCount)

	inactiveRow := controlRowByID(t, rows, inactive.ID)
	assert.Contains(t, inactiveRow.Warnings, "inactive_employee")
	assert.False(t, inactiveRow.IsEmployeeActive)

	// Сотрудник вне справочника считается действующим.
	unknownRow := controlRowByID(t, rows, unknown.ID)
	assert.True(t, unknownRow.IsEmployeeActive)
	assert.NotContains(t, unknownRow.Warnings, "inactive_employee")
}

func TestListControl_PendingWithinThresholdIsClean(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	fresh := seedPayout(t, svc, models.Payout{
		ID: "1", EmployeeID: "100", Amount: 1000,
		Status: constants.STATUS_PENDING, Timestamp: "2025-07-09 12:00:00",
	})

	rows := svc.ListControl(models.PayoutFilter{})
	row := controlRowByID(t, rows, fresh.ID)
	assert.NotContains(t, row.Warnings, "pending_too_long")
}

func TestListControl_UnreadableTimestampSkipsTimeChecks(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	broken := seedPayout(t, svc, models.Payout{
		ID: "1", EmployeeID: "100", Amount: 100000,
		Status: constants.STATUS_PENDING, Timestamp: "когда-то",
	})

	rows := svc.ListControl(models.PayoutFilter{})
	row := controlRowByID(t, rows, broken.ID)
	assert.NotContains(t, row.Warnings, "pending_too_long")
	assert.NotContains(t, row.Warnings, "limit_exceeded")
	assert.Equal(t, 0.0, row.PreviousTotalMonth)
}

func TestListControl_RespectsFilter(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	seedPayout(t, svc, models.Payout{
		ID: "1", EmployeeID: "100", Amount: 1000,
		Status: constants.STATUS_PENDING, Timestamp: "2025-07-09 12:00:00",
	})
	seedPayout(t, svc, models.Payout{
		ID: "2", EmployeeID: "200", Amount: 2000,
		Status: constants.STATUS_APPROVED, Timestamp: "2025-07-09 13:00:00",
	})

	rows := svc.ListControl(models.PayoutFilter{EmployeeID: "200"})
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].ID)
}
