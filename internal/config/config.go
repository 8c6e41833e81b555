// internal/config/config.go
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Config хранит все конфигурационные параметры приложения.
// Config stores all application configuration parameters.
type Config struct {
	TelegramToken    string
	BotUsername      string
	AppEnv           string
	Port             string
	AdminChatID      int64
	AccountingChatID int64

	DataDir    string // Каталог с payouts.json и employees.json
	ReportsDir string // Каталог для сгенерированных отчетов

	CardEncryptionKeyHex string
	MaxAdvancePerMonth   float64

	PayoutsFile   string
	EmployeesFile string
}

// LoadConfig загружает конфигурацию из переменных окружения.
// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		TelegramToken:        os.Getenv("TELEGRAM_APITOKEN"),
		BotUsername:          os.Getenv("BOT_USERNAME"),
		AppEnv:               os.Getenv("ENV"),
		Port:                 os.Getenv("PORT"),
		DataDir:              os.Getenv("DATA_DIR"),
		ReportsDir:           os.Getenv("REPORTS_DIR"),
		CardEncryptionKeyHex: os.Getenv("CARD_ENCRYPTION_KEY_HEX"),
	}

	var err error
	cfg.AdminChatID, err = strconv.ParseInt(os.Getenv("ADMIN_CHAT_ID"), 10, 64)
	if err != nil {
		log.Printf("Предупреждение: не удалось прочитать ADMIN_CHAT_ID: %v. Установлено в 0.", err)
		cfg.AdminChatID = 0
	}

	cfg.AccountingChatID, err = strconv.ParseInt(os.Getenv("ACCOUNTING_CHAT_ID"), 10, 64)
	if err != nil {
		log.Printf("Предупреждение: не удалось прочитать ACCOUNTING_CHAT_ID: %v. Установлено в 0.", err)
		cfg.AccountingChatID = 0
	}

	maxAdvanceStr := os.Getenv("MAX_ADVANCE_AMOUNT_PER_MONTH")
	if maxAdvanceStr == "" {
		log.Println("Предупреждение: MAX_ADVANCE_AMOUNT_PER_MONTH не установлен, используется значение по умолчанию 50000.")
		cfg.MaxAdvancePerMonth = 50000
	} else {
		maxAdvance, errParse := strconv.ParseFloat(maxAdvanceStr, 64)
		if errParse != nil || maxAdvance <= 0 {
			log.Printf("Предупреждение: некорректное значение MAX_ADVANCE_AMOUNT_PER_MONTH ('%s'): %v. Используется 50000.", maxAdvanceStr, errParse)
			cfg.MaxAdvancePerMonth = 50000
		} else {
			cfg.MaxAdvancePerMonth = maxAdvance
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.ReportsDir == "" {
		cfg.ReportsDir = filepath.Join(os.TempDir(), "hrbot_reports")
	}
	cfg.PayoutsFile = filepath.Join(cfg.DataDir, "payouts.json")
	cfg.EmployeesFile = filepath.Join(cfg.DataDir, "employees.json")

	if cfg.TelegramToken == "" {
		log.Println("Критическая ошибка: TELEGRAM_APITOKEN не установлен.")
	}
	if cfg.AdminChatID == 0 {
		log.Println("Предупреждение: ADMIN_CHAT_ID не установлен. Уведомления администратору отправляться не будут.")
	}
	if cfg.CardEncryptionKeyHex == "" {
		log.Println("Предупреждение: CARD_ENCRYPTION_KEY_HEX не установлен. Номера карт будут храниться без шифрования.")
	}
	if cfg.BotUsername == "" {
		log.Println("Предупреждение: BOT_USERNAME не установлен.")
	}

	log.Println("Конфигурация загружена.")
	return cfg, nil
}
