package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "999 ₽", FormatAmount(999))
	assert.Equal(t, "5 000 ₽", FormatAmount(5000))
	assert.Equal(t, "1 234 567 ₽", FormatAmount(1234567))
	assert.Equal(t, "1 500.50 ₽", FormatAmount(1500.5))
	assert.Equal(t, "0 ₽", FormatAmount(0))
}

func TestFormatPhoneNumber(t *testing.T) {
	assert.Equal(t, "+7 (916) 123-45-67", FormatPhoneNumber("+79161234567"))
	assert.Equal(t, "+7 (916) 123-45-67", FormatPhoneNumber("89161234567"))
	assert.Equal(t, "+7 (916) 123-45-67", FormatPhoneNumber("79161234567"))
	// Нераспознанный формат возвращается как есть.
	assert.Equal(t, "12345", FormatPhoneNumber("12345"))
}

func TestFormatDateForDisplay(t *testing.T) {
	assert.Equal(t, "2 января", FormatDateForDisplay("1990-01-02"))
	assert.Equal(t, "14 марта", FormatDateForDisplay("1990-03-14"))
	assert.Equal(t, "не указана", FormatDateForDisplay(""))
	assert.Equal(t, "02.01.1990", FormatDateForDisplay("02.01.1990"))
}

func TestEscapeTelegramMarkdown(t *testing.T) {
	assert.Equal(t, "Иванов\\_Сергей", EscapeTelegramMarkdown("Иванов_Сергей"))
	assert.Equal(t, "\\*важно\\*", EscapeTelegramMarkdown("*важно*"))
	assert.Equal(t, "без спецсимволов", EscapeTelegramMarkdown("без спецсимволов"))
}
