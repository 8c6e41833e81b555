package main

import (
	"log"
	"net/http"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/joho/godotenv"

	"hrbot/internal/api"
	"hrbot/internal/config"
	"hrbot/internal/export"
	"hrbot/internal/handlers"
	"hrbot/internal/service"
	"hrbot/internal/storage"
	"hrbot/internal/telegram_api"
	"hrbot/internal/utils"
)

func main() {
	// --- Блок инициализации ---
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось загрузить конфигурацию: %v", err)
	}

	// Шифрование номеров карт опционально: без ключа справочник работает
	// в открытом виде.
	var cardCipher *utils.CardCipher
	if cfg.CardEncryptionKeyHex != "" {
		cardCipher, err = utils.NewCardCipher(cfg.CardEncryptionKeyHex)
		if err != nil {
			log.Fatalf("Критическая ошибка: не удалось инициализировать ключ шифрования: %v", err)
		}
	}

	// Хранилища и сервисы собираются один раз на процесс и передаются
	// зависимостям явно.
	employeeRepo := storage.NewEmployeeRepository(cfg.EmployeesFile, cardCipher)
	payoutRepo := storage.NewPayoutRepository(cfg.PayoutsFile)

	renderer, err := export.NewExcelRenderer(cfg.ReportsDir)
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось подготовить каталог отчетов: %v", err)
	}

	botClient, err := telegram_api.NewBotClient(cfg.TelegramToken, cfg.AppEnv == "dev")
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать Telegram бота: %v", err)
	}

	notifier := telegram_api.NewNotifier(botClient, cfg.AdminChatID, employeeRepo)
	payoutService := service.NewPayoutService(payoutRepo, employeeRepo, notifier, renderer, cfg.MaxAdvancePerMonth)
	birthdayService := service.NewBirthdayService(employeeRepo)

	botHandler := handlers.NewBotHandler(handlers.HandlerDependencies{
		Config:    cfg,
		BotClient: botClient,
		Payouts:   payoutService,
		Employees: employeeRepo,
		Birthdays: birthdayService,
	})

	// --- Настройка HTTP API ---
	router := api.NewRouter(api.Dependencies{
		SecretKey: cfg.TelegramToken,
		Employees: employeeRepo,
		Handlers: &api.Handlers{
			Payouts:   payoutService,
			Birthdays: birthdayService,
		},
	})

	go func() {
		log.Printf("Запуск HTTP-сервера API на порту %s", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
			log.Fatalf("КРИТИЧЕСКАЯ ОШИБКА: не удалось запустить HTTP-сервер: %v", err)
		}
	}()

	// --- Запуск самого бота ---
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botClient.GetUpdatesChan(u)

	log.Println("Бот и API-сервер запущены и готовы к работе...")

	for update := range updates {
		if update.Message != nil {
			log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)
			go botHandler.HandleMessage(update)
		} else if update.CallbackQuery != nil {
			log.Printf("Callback от %s: %s", update.CallbackQuery.From.UserName, update.CallbackQuery.Data)
			go botHandler.HandleCallback(update)
		}
	}
}
