package service

import (
	"log"
	"sort"
	"time"

	"hrbot/internal/constants"
	"hrbot/internal/models"
)

// EmployeeLister отдает полный список сотрудников для обхода дней рождения.
type EmployeeLister interface {
	ListEmployees() []models.Employee
}

// Birthday — день рождения сотрудника с обратным отсчетом.
type Birthday struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Birthdate string `json:"birthdate"`
	Age       int    `json:"age"` // Возраст на ближайший день рождения
	InDays    int    `json:"in_days"`
}

// BirthdayService считает ближайшие дни рождения по справочнику сотрудников.
type BirthdayService struct {
	employees EmployeeLister
	now       func() time.Time
}

// NewBirthdayService создает сервис дней рождения.
func NewBirthdayService(employees EmployeeLister) *BirthdayService {
	return &BirthdayService{employees: employees, now: time.Now}
}

// nextBirthday возвращает ближайшую (сегодня или позже) годовщину birthdate.
// 29 февраля в невисокосный год нормализуется в 1 марта средствами time.Date.
func nextBirthday(birthdate, today time.Time) time.Time {
	next := time.Date(today.Year(), birthdate.Month(), birthdate.Day(), 0, 0, 0, 0, time.Local)
	if next.Before(today) {
		next = time.Date(today.Year()+1, birthdate.Month(), birthdate.Day(), 0, 0, 0, 0, time.Local)
	}
	return next
}

func (s *BirthdayService) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.Local)
}

func (s *BirthdayService) collect(minDays, maxDays int) []Birthday {
	today := s.today()
	var items []Birthday
	for _, emp := range s.employees.ListEmployees() {
		if emp.Birthdate == "" {
			continue
		}
		bd, err := time.ParseInLocation(constants.BirthdateLayout, emp.Birthdate, time.Local)
		if err != nil {
			log.Printf("BirthdayService: некорректная дата рождения '%s' у сотрудника %s: %v", emp.Birthdate, emp.ID, err)
			continue
		}
		next := nextBirthday(bd, today)
		// Округление до целых суток: на границах перевода часов разница
		// может составлять не ровно 24 часа.
		inDays := int(next.Sub(today).Hours()/24 + 0.5)
		if inDays < minDays || (maxDays >= 0 && inDays > maxDays) {
			continue
		}
		items = append(items, Birthday{
			ID:        emp.ID,
			FullName:  emp.DisplayName(),
			Birthdate: emp.Birthdate,
			Age:       next.Year() - bd.Year(),
			InDays:    inDays,
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].InDays < items[j].InDays })
	return items
}

// TodayBirthdays возвращает сотрудников, у которых день рождения сегодня.
func (s *BirthdayService) TodayBirthdays() []Birthday {
	return s.collect(0, 0)
}

// UpcomingBirthdays возвращает дни рождения в ближайшие daysAhead дней,
// не считая сегодняшних.
func (s *BirthdayService) UpcomingBirthdays(daysAhead int) []Birthday {
	if daysAhead < 1 {
		daysAhead = 1
	}
	return s.collect(1, daysAhead)
}

// AllBirthdays возвращает дни рождения всех сотрудников с обратным отсчетом.
func (s *BirthdayService) AllBirthdays() []Birthday {
	return s.collect(0, -1)
}
