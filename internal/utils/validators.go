package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/theplant/luhn"
)

var nonDigitRegex = regexp.MustCompile(`[^\d]`)
var normalizedPhoneRegex = regexp.MustCompile(`^\+7\d{10}$`)

// ValidatePhoneNumber проверяет и нормализует номер телефона.
// Возвращает номер в формате +7XXXXXXXXXX или ошибку.
// ValidatePhoneNumber checks and normalizes a phone number.
// Returns the number in +7XXXXXXXXXX format or an error.
func ValidatePhoneNumber(phone string) (string, error) {
	phone = strings.TrimSpace(strings.ReplaceAll(phone, "\\", ""))

	if strings.HasPrefix(phone, "+") {
		digitsOnly := "+" + nonDigitRegex.ReplaceAllString(phone, "")
		if normalizedPhoneRegex.MatchString(digitsOnly) {
			return digitsOnly, nil
		}
		return "", fmt.Errorf("поддерживаются только российские номера в формате +7XXXXXXXXXX или 8XXXXXXXXXX")
	}

	digitsOnly := nonDigitRegex.ReplaceAllString(phone, "")
	switch {
	case len(digitsOnly) == 11 && (digitsOnly[0] == '8' || digitsOnly[0] == '7'):
		return "+7" + digitsOnly[1:], nil
	case len(digitsOnly) == 10:
		return "+7" + digitsOnly, nil
	}
	return "", fmt.Errorf("неверный формат номера телефона, укажите в формате +7XXXXXXXXXX или 8XXXXXXXXXX")
}

// ValidateCardNumber проверяет номер банковской карты: длину, цифровой
// состав и контрольную сумму по алгоритму Луна.
// ValidateCardNumber checks a bank card number: length, digits only and the
// Luhn checksum.
func ValidateCardNumber(cardNumber string) error {
	cardNumber = strings.ReplaceAll(cardNumber, " ", "")
	if len(cardNumber) < 16 || len(cardNumber) > 19 {
		return fmt.Errorf("номер карты должен содержать от 16 до 19 цифр")
	}
	n, err := strconv.Atoi(cardNumber)
	if err != nil {
		return fmt.Errorf("номер карты должен содержать только цифры")
	}
	if !luhn.Valid(n) {
		return fmt.Errorf("номер карты не прошел проверку контрольной суммы")
	}
	return nil
}

// ValidateAmount разбирает введенную пользователем сумму.
// Принимает "5000", "5 000", "5000.50", "5000,50".
func ValidateAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("сумма должна быть числом")
	}
	if amount <= 0 {
		return 0, fmt.Errorf("сумма должна быть положительной")
	}
	return amount, nil
}
