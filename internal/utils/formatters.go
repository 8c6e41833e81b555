package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"hrbot/internal/constants"
)

var phoneCleanRegex = regexp.MustCompile(`[^\d+]`)

// FormatAmount форматирует сумму для отображения: "5 000 ₽".
func FormatAmount(amount float64) string {
	s := fmt.Sprintf("%.0f", amount)
	if amount != float64(int64(amount)) {
		s = fmt.Sprintf("%.2f", amount)
	}
	// Разделяем тысячи неразрывными пробелами, дробную часть не трогаем.
	intPart := s
	frac := ""
	if i := strings.Index(s, "."); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 && r != '-' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String() + frac + " ₽"
}

// FormatPhoneNumber форматирует номер телефона для отображения:
// "+7 (900) 123-45-67".
func FormatPhoneNumber(phone string) string {
	cleaned := phoneCleanRegex.ReplaceAllString(phone, "")
	if strings.HasPrefix(cleaned, "+7") && len(cleaned) == 12 {
		return fmt.Sprintf("+7 (%s) %s-%s-%s", cleaned[2:5], cleaned[5:8], cleaned[8:10], cleaned[10:12])
	}
	if len(cleaned) == 11 && (cleaned[0] == '8' || cleaned[0] == '7') {
		return fmt.Sprintf("+7 (%s) %s-%s-%s", cleaned[1:4], cleaned[4:7], cleaned[7:9], cleaned[9:11])
	}
	return phone
}

// FormatDateForDisplay форматирует дату "ГГГГ-ММ-ДД" в "2 января".
func FormatDateForDisplay(dateStr string) string {
	if dateStr == "" {
		return "не указана"
	}
	parsed, err := time.ParseInLocation(constants.BirthdateLayout, dateStr, time.Local)
	if err != nil {
		return dateStr
	}
	return fmt.Sprintf("%d %s", parsed.Day(), constants.MonthMap[parsed.Month()])
}

// EscapeTelegramMarkdown экранирует специальные символы Telegram Markdown
// (старый стиль).
func EscapeTelegramMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[",
	)
	return replacer.Replace(text)
}
