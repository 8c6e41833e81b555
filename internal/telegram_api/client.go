package telegram_api

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// BotClient — обертка над Telegram Bot API. Создается один раз при старте
// и передается зависимостям явно.
// BotClient wraps the Telegram Bot API. Created once at startup and passed
// to dependents explicitly.
type BotClient struct {
	api   *tgbotapi.BotAPI
	Debug bool
}

// NewBotClient инициализирует Telegram-бота и отключает вебхук,
// если он был установлен (long polling и вебхук несовместимы).
func NewBotClient(token string, debug bool) (*BotClient, error) {
	if token == "" {
		return nil, fmt.Errorf("токен Telegram API не предоставлен")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации Telegram Bot API: %w", err)
	}
	api.Debug = debug

	log.Printf("Авторизован как аккаунт %s", api.Self.UserName)

	_, err = api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true})
	if err != nil {
		// Вебхука могло и не быть — логируем и продолжаем.
		log.Printf("Предупреждение при отключении вебхука: %v", err)
	}

	return &BotClient{api: api, Debug: debug}, nil
}

// GetUpdatesChan возвращает канал обновлений от Telegram.
func (bc *BotClient) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return bc.api.GetUpdatesChan(config)
}

// Send отправляет сообщение через BotClient.
func (bc *BotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if bc == nil || bc.api == nil {
		return tgbotapi.Message{}, fmt.Errorf("BotClient не инициализирован")
	}
	if bc.Debug {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			log.Printf("Отправка сообщения: ChatID=%d, Text='%.50s...'", msg.ChatID, msg.Text)
		} else {
			log.Printf("Отправка типа %T", c)
		}
	}
	return bc.api.Send(c)
}

// Request выполняет запрос через BotClient (ответы на коллбэки, удаление
// сообщений и прочие вызовы без возвращаемого Message).
func (bc *BotClient) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if bc == nil || bc.api == nil {
		return nil, fmt.Errorf("BotClient не инициализирован")
	}
	return bc.api.Request(c)
}
