package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"hrbot/internal/constants"
	"hrbot/internal/models"
	"hrbot/internal/storage"
)

// ErrNotFound сообщает, что заявка с таким ID не существует.
var ErrNotFound = storage.ErrNotFound

// ErrValidation помечает ошибки входных данных, отклоненные до обращения
// к хранилищу.
var ErrValidation = errors.New("некорректные данные заявки")

// Notifier — внешний коллаборатор для исходящих сообщений. Все вызовы
// best-effort: ошибка уведомления логируется и никогда не влияет на исход
// основной операции.
// Notifier is the external messaging collaborator. All calls are best-effort:
// a notification error is logged and never changes the primary outcome.
type Notifier interface {
	NotifyAdminOfNewPayout(p models.Payout) error
	NotifyEmployee(employeeID string, text string) error
}

// EmployeeLookup — внешний справочник сотрудников. Используется только для
// снимка отображаемых полей в момент создания заявки и для контрольного
// отчета; корректность жизненного цикла от него не зависит.
type EmployeeLookup interface {
	GetEmployee(id string) (models.Employee, bool)
}

// Renderer — внешний коллаборатор экспорта: получает готовый набор строк
// и возвращает путь к файлу отчета.
type Renderer interface {
	RenderPayouts(rows []models.Payout) (string, error)
}

// statusMessages — шаблоны уведомлений сотруднику при смене статуса.
// Статусы без шаблона уведомления не порождают.
var statusMessages = map[string]string{
	constants.STATUS_APPROVED: "✅ Ваша заявка одобрена",
	constants.STATUS_DENIED:   "❌ Ваша заявка отклонена",
	"Выплачен":                "📤 Выплата отправлена",
	"Выплачено":               "📤 Выплата отправлена",
}

// PayoutService владеет жизненным циклом заявки на выплату:
//
//	создание -> Ожидает -> Одобрено | Отказано | Отменено
//
// Все обращения к хранилищу идут через репозиторий, все побочные эффекты
// (уведомления) — через Notifier.
type PayoutService struct {
	repo       *storage.PayoutRepository
	employees  EmployeeLookup
	notifier   Notifier
	renderer   Renderer
	maxMonthly float64
	now        func() time.Time
}

// NewPayoutService собирает сервис из явных зависимостей. notifier, employees
// и renderer могут быть nil — соответствующие возможности просто отключаются.
func NewPayoutService(repo *storage.PayoutRepository, employees EmployeeLookup, notifier Notifier, renderer Renderer, maxMonthlyAdvance float64) *PayoutService {
	if repo == nil {
		panic("PayoutService: репозиторий обязателен")
	}
	return &PayoutService{
		repo:       repo,
		employees:  employees,
		notifier:   notifier,
		renderer:   renderer,
		maxMonthly: maxMonthlyAdvance,
		now:        time.Now,
	}
}

// CreatePayoutInput — данные новой заявки от вызывающей стороны.
type CreatePayoutInput struct {
	EmployeeID string
	Name       string
	Phone      string
	Bank       string
	Amount     float64
	Method     string
	PayoutType string
	IsManual   bool
}

// CreatePayout создает заявку со статусом "Ожидает" и серверным timestamp.
// Отображаемые поля (имя, телефон, банк), не заданные вызывающим, берутся
// из справочника сотрудников на момент создания и дальше не синхронизируются.
// При syncToBot администратору уходит уведомление о новой заявке; его неудача
// не отменяет создание.
func (s *PayoutService) CreatePayout(input CreatePayoutInput, syncToBot bool) (models.Payout, error) {
	if input.EmployeeID == "" {
		return models.Payout{}, fmt.Errorf("%w: не указан сотрудник", ErrValidation)
	}
	if input.Amount <= 0 {
		return models.Payout{}, fmt.Errorf("%w: сумма должна быть положительной", ErrValidation)
	}
	if input.Method == "" {
		return models.Payout{}, fmt.Errorf("%w: не указан способ выплаты", ErrValidation)
	}

	p := models.Payout{
		EmployeeID: input.EmployeeID,
		Name:       input.Name,
		Phone:      input.Phone,
		Bank:       input.Bank,
		Amount:     input.Amount,
		Method:     input.Method,
		PayoutType: input.PayoutType,
		Status:     constants.STATUS_PENDING,
		Timestamp:  s.now().Format(constants.TimestampLayout),
		IsManual:   input.IsManual,
	}
	if s.employees != nil {
		if emp, ok := s.employees.GetEmployee(input.EmployeeID); ok {
			if p.Name == "" {
				p.Name = emp.DisplayName()
			}
			if p.Phone == "" {
				p.Phone = emp.Phone
			}
			if p.Bank == "" {
				p.Bank = emp.Bank
			}
		}
	}

	created, err := s.repo.Create(p)
	if err != nil {
		return created, err
	}
	log.Printf("PayoutService: новая заявка #%s '%s' на %.0f ₽ для сотрудника %s — статус: %s",
		created.ID, created.PayoutType, created.Amount, created.EmployeeID, created.Status)

	if syncToBot && s.notifier != nil {
		if err := s.notifier.NotifyAdminOfNewPayout(created); err != nil {
			log.Printf("PayoutService: не удалось отправить заявку #%s в бот: %v", created.ID, err)
		}
	}
	return created, nil
}

// UpdateStatus меняет только статус заявки. При статусе, имеющем шаблон
// уведомления, сотруднику уходит сообщение; ошибка отправки логируется
// и проглатывается.
func (s *PayoutService) UpdateStatus(id string, status string) (models.Payout, error) {
	updated, err := s.repo.Update(id, models.PayoutUpdate{Status: &status})
	if err != nil {
		return updated, err
	}
	log.Printf("PayoutService: заявка #%s обновлена — статус: %s", id, status)

	if s.notifier != nil {
		if template, ok := statusMessages[status]; ok {
			text := fmt.Sprintf("%s\nСумма: %.0f ₽", template, updated.Amount)
			if err := s.notifier.NotifyEmployee(updated.EmployeeID, text); err != nil {
				log.Printf("PayoutService: не удалось уведомить сотрудника %s о заявке #%s: %v", updated.EmployeeID, id, err)
			}
		}
	}
	return updated, nil
}

// UpdatePayout применяет частичное обновление. Обновление со статусом
// проходит через UpdateStatus, чтобы не потерять уведомление.
func (s *PayoutService) UpdatePayout(id string, upd models.PayoutUpdate) (models.Payout, error) {
	if upd.Status != nil {
		return s.UpdateStatus(id, *upd.Status)
	}
	updated, err := s.repo.Update(id, upd)
	if err != nil {
		return updated, err
	}
	log.Printf("PayoutService: заявка #%s обновлена", id)
	return updated, nil
}

// ListPayouts возвращает заявки по фильтру (порядок — по убыванию timestamp).
func (s *PayoutService) ListPayouts(filter models.PayoutFilter) []models.Payout {
	return s.repo.List(filter)
}

// ListActivePayouts возвращает заявки, ожидающие решения или выплаты.
// Набор статусов шире строгого "Ожидает" и включает устаревшие написания —
// см. constants.ActiveStatuses; сужать его нельзя.
func (s *PayoutService) ListActivePayouts() []models.Payout {
	var active []models.Payout
	for _, p := range s.repo.LoadAll() {
		for _, st := range constants.ActiveStatuses {
			if p.Status == st {
				active = append(active, p)
				break
			}
		}
	}
	return active
}

// DeletePayout удаляет одну заявку. Возвращает признак "нашлась ли запись".
func (s *PayoutService) DeletePayout(id string) (bool, error) {
	deleted, err := s.repo.Delete(id)
	if deleted {
		log.Printf("PayoutService: удалена заявка #%s", id)
	}
	return deleted, err
}

// DeletePayouts удаляет набор заявок. Пустой список — no-op.
func (s *PayoutService) DeletePayouts(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.repo.DeleteMany(ids); err != nil {
		return err
	}
	log.Printf("PayoutService: удалены заявки: %v", ids)
	return nil
}

// ExportPayouts отдает отфильтрованный набор строк рендереру отчета и
// возвращает путь к файлу. Пустая выборка — ErrNotFound, файл не создается.
func (s *PayoutService) ExportPayouts(filter models.PayoutFilter) (string, error) {
	if s.renderer == nil {
		return "", fmt.Errorf("рендерер отчетов не подключен")
	}
	rows := s.repo.List(filter)
	if len(rows) == 0 {
		return "", ErrNotFound
	}
	return s.renderer.RenderPayouts(rows)
}
