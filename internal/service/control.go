package service

import (
	"time"

	"hrbot/internal/constants"
	"hrbot/internal/models"
)

// ControlRow — строка контрольного отчета по выплатам: заявка плюс
// предупреждения для проверяющего.
type ControlRow struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Amount                float64  `json:"amount"`
	Date                  string   `json:"date"`
	Status                string   `json:"status"`
	Type                  string   `json:"type"`
	Method                string   `json:"method"`
	Warnings              []string `json:"warnings"`
	IsManual              bool     `json:"is_manual"`
	IsEmployeeActive      bool     `json:"is_employee_active"`
	PreviousRequestsCount int      `json:"previous_requests_count"`
	PreviousTotalMonth    float64  `json:"previous_total_month"`
}

// ListControl строит контрольный отчет по заявкам, подходящим под фильтр.
// Предупреждения:
//
//	limit_exceeded      — сумма заявок сотрудника за месяц превысила лимит
//	pending_too_long    — заявка ждет решения дольше 48 часов
//	frequent_request    — у сотрудника была другая заявка за предыдущие 3 дня
//	changed_bank_data   — банк в заявке не совпадает с банком в карточке
//	manual_created      — заявка заведена вручную
//	inactive_employee   — сотрудник уже не числится действующим
func (s *PayoutService) ListControl(filter models.PayoutFilter) []ControlRow {
	allRows := s.repo.LoadAll()
	rows := s.repo.List(filter)
	now := s.now()

	result := make([]ControlRow, 0, len(rows))
	for _, item := range rows {
		ts, tsOK := parseControlTimestamp(item.Timestamp)

		var emp models.Employee
		var empKnown bool
		if s.employees != nil {
			emp, empKnown = s.employees.GetEmployee(item.EmployeeID)
		}
		isActive := !empKnown || emp.IsActive()

		var warnings []string

		// Итог за календарный месяц заявки и количество заявок
		// за предыдущие трое суток.
		var monthlyTotal float64
		prevCount := 0
		for _, r := range allRows {
			if r.EmployeeID != item.EmployeeID {
				continue
			}
			rts, ok := parseControlTimestamp(r.Timestamp)
			if !ok || !tsOK {
				continue
			}
			if rts.Year() == ts.Year() && rts.Month() == ts.Month() {
				monthlyTotal += r.Amount
			}
			if d := ts.Sub(rts); d > 0 && d <= constants.FrequentRequestWindow {
				prevCount++
			}
		}

		if s.maxMonthly > 0 && monthlyTotal > s.maxMonthly {
			warnings = append(warnings, "limit_exceeded")
		}
		if (item.Status == "pending" || item.Status == constants.STATUS_PENDING) && tsOK &&
			now.Sub(ts) > constants.PendingTooLongThreshold {
			warnings = append(warnings, "pending_too_long")
		}
		if prevCount > 0 {
			warnings = append(warnings, "frequent_request")
		}
		if empKnown && emp.Bank != "" && item.Bank != emp.Bank {
			warnings = append(warnings, "changed_bank_data")
		}
		if item.IsManual {
			warnings = append(warnings, "manual_created")
		}
		if !isActive {
			warnings = append(warnings, "inactive_employee")
		}

		result = append(result, ControlRow{
			ID:                    item.ID,
			Name:                  item.Name,
			Amount:                item.Amount,
			Date:                  item.Timestamp,
			Status:                item.Status,
			Type:                  item.PayoutType,
			Method:                item.Method,
			Warnings:              warnings,
			IsManual:              item.IsManual,
			IsEmployeeActive:      isActive,
			PreviousRequestsCount: prevCount,
			PreviousTotalMonth:    monthlyTotal,
		})
	}
	return result
}

func parseControlTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(constants.TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
