package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrbot/internal/models"
)

type fakeEmployeeLister []models.Employee

func (f fakeEmployeeLister) ListEmployees() []models.Employee { return f }

func newTestBirthdayService(employees []models.Employee, now time.Time) *BirthdayService {
	svc := NewBirthdayService(fakeEmployeeLister(employees))
	svc.now = func() time.Time { return now }
	return svc
}

func TestTodayBirthdays(t *testing.T) {
	now := time.Date(2025, 7, 10, 15, 30, 0, 0, time.Local)
	svc := newTestBirthdayService([]models.Employee{
		{ID: "1", Name: "Иванов", Birthdate: "1990-07-10"},
		{ID: "2", Name: "Петрова", Birthdate: "1987-07-11"},
		{ID: "3", Name: "Смирнов", Birthdate: "1995-01-01"},
		{ID: "4", Name: "Без даты"},
	}, now)

	got := svc.TodayBirthdays()
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, 0, got[0].InDays)
	assert.Equal(t, 35, got[0].Age)
}

func TestUpcomingBirthdays_ExcludesTodayAndSorts(t *testing.T) {
	now := time.Date(2025, 7, 10, 9, 0, 0, 0, time.Local)
	svc := newTestBirthdayService([]models.Employee{
		{ID: "1", Name: "Иванов", Birthdate: "1990-07-10"},
		{ID: "2", Name: "Петрова", Birthdate: "1987-07-25"},
		{ID: "3", Name: "Смирнов", Birthdate: "1995-07-12"},
		{ID: "4", Name: "Кузнецов", Birthdate: "2000-09-01"},
	}, now)

	got := svc.UpcomingBirthdays(30)
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, 2, got[0].InDays)
	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, 15, got[1].InDays)
}

func TestUpcomingBirthdays_YearRollover(t *testing.T) {
	now := time.Date(2025, 12, 28, 12, 0, 0, 0, time.Local)
	svc := newTestBirthdayService([]models.Employee{
		{ID: "1", Name: "Иванов", Birthdate: "1990-01-03"},
	}, now)

	got := svc.UpcomingBirthdays(10)
	require.Len(t, got, 1)
	assert.Equal(t, 6, got[0].InDays)
	assert.Equal(t, 36, got[0].Age)
}

func TestAllBirthdays_SkipsUnparsableDates(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.Local)
	svc := newTestBirthdayService([]models.Employee{
		{ID: "1", Name: "Иванов", Birthdate: "1990-07-20"},
		{ID: "2", Name: "Петрова", Birthdate: "не дата"},
		{ID: "3", Name: "Смирнов", Birthdate: "1995-02-14"},
	}, now)

	got := svc.AllBirthdays()
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestBirthdays_UsesFullNameWhenPresent(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.Local)
	svc := newTestBirthdayService([]models.Employee{
		{ID: "1", Name: "Иванов", FullName: "Иванов Сергей Петрович", Birthdate: "1990-07-10"},
	}, now)

	got := svc.TodayBirthdays()
	require.Len(t, got, 1)
	assert.Equal(t, "Иванов Сергей Петрович", got[0].FullName)
}
