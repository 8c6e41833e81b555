package formatters

import (
	"fmt"
	"strings"

	"hrbot/internal/models"
	"hrbot/internal/service"
	"hrbot/internal/utils"
)

// FormatNewPayoutRequest формирует текст уведомления администратору
// о новой заявке на выплату.
func FormatNewPayoutRequest(p models.Payout) string {
	var b strings.Builder
	b.WriteString("🆕 *Новая заявка на выплату*\n\n")
	fmt.Fprintf(&b, "Заявка: #%s\n", p.ID)
	fmt.Fprintf(&b, "Сотрудник: %s (ID %s)\n", utils.EscapeTelegramMarkdown(p.Name), p.EmployeeID)
	if p.Phone != "" {
		fmt.Fprintf(&b, "Телефон: %s\n", utils.FormatPhoneNumber(p.Phone))
	}
	if p.Bank != "" {
		fmt.Fprintf(&b, "Банк: %s\n", utils.EscapeTelegramMarkdown(p.Bank))
	}
	if p.PayoutType != "" {
		fmt.Fprintf(&b, "Тип: %s\n", p.PayoutType)
	}
	fmt.Fprintf(&b, "Способ: %s\n", p.Method)
	fmt.Fprintf(&b, "Сумма: %s\n", utils.FormatAmount(p.Amount))
	fmt.Fprintf(&b, "Создана: %s", p.Timestamp)
	return b.String()
}

// FormatPayoutLine — краткая строка заявки для списков в боте.
func FormatPayoutLine(p models.Payout) string {
	return fmt.Sprintf("#%s %s — %s (%s, %s)",
		p.ID, utils.EscapeTelegramMarkdown(p.Name), utils.FormatAmount(p.Amount), p.Method, p.Status)
}

// FormatActivePayouts формирует список заявок "в работе" для администратора.
func FormatActivePayouts(items []models.Payout) string {
	if len(items) == 0 {
		return "✅ Активных заявок нет."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Активные заявки* (%d):\n\n", len(items))
	for _, p := range items {
		b.WriteString(FormatPayoutLine(p))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatBirthdayDigest формирует сводку дней рождения.
func FormatBirthdayDigest(today, upcoming []service.Birthday) string {
	if len(today) == 0 && len(upcoming) == 0 {
		return "🎂 Ближайших дней рождения нет."
	}
	var b strings.Builder
	if len(today) > 0 {
		b.WriteString("🎉 *Сегодня день рождения:*\n")
		for _, item := range today {
			fmt.Fprintf(&b, "• %s — исполняется %d\n", utils.EscapeTelegramMarkdown(item.FullName), item.Age)
		}
	}
	if len(upcoming) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("🎂 *Скоро дни рождения:*\n")
		for _, item := range upcoming {
			fmt.Fprintf(&b, "• %s — %s (через %d дн.)\n",
				utils.EscapeTelegramMarkdown(item.FullName), utils.FormatDateForDisplay(item.Birthdate), item.InDays)
		}
	}
	return b.String()
}
