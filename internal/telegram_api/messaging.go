package telegram_api

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// SendOrEditMessage пытается отредактировать существующее сообщение, а при
// неудаче отправляет новое. Ошибка "message is not modified" не считается
// ошибкой: контент просто не изменился.
func SendOrEditMessage(
	botClient *BotClient,
	chatID int64,
	messageIDToTryEdit int,
	text string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
	parseMode string,
) (tgbotapi.Message, error) {
	if botClient == nil {
		return tgbotapi.Message{}, fmt.Errorf("BotClient не инициализирован")
	}

	if messageIDToTryEdit != 0 {
		var editMsg tgbotapi.EditMessageTextConfig
		if keyboard != nil {
			editMsg = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageIDToTryEdit, text, *keyboard)
		} else {
			editMsg = tgbotapi.NewEditMessageText(chatID, messageIDToTryEdit, text)
		}
		if parseMode != "" {
			editMsg.ParseMode = parseMode
		}

		_, err := botClient.Request(editMsg)
		if err == nil || strings.Contains(err.Error(), "message is not modified") {
			var edited tgbotapi.Message
			edited.Chat.ID = chatID
			edited.MessageID = messageIDToTryEdit
			edited.Text = text
			return edited, nil
		}
		log.Printf("SendOrEditMessage: не удалось отредактировать сообщение %d в чате %d: %v. Будет отправлено новое.",
			messageIDToTryEdit, chatID, err)
	}

	newMsg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		newMsg.ReplyMarkup = keyboard
	}
	if parseMode != "" {
		newMsg.ParseMode = parseMode
	}
	sent, err := botClient.Send(newMsg)
	if err != nil {
		log.Printf("SendOrEditMessage: ошибка отправки сообщения для chatID %d: %v", chatID, err)
		return tgbotapi.Message{}, err
	}
	return sent, nil
}

// SendErrorMessage отправляет пользователю стандартизированное сообщение
// об ошибке.
func SendErrorMessage(botClient *BotClient, chatID int64, messageIDToTryEdit int, errorText string) (tgbotapi.Message, error) {
	log.Printf("Отправка сообщения об ошибке для chatID %d: %s", chatID, errorText)
	return SendOrEditMessage(botClient, chatID, messageIDToTryEdit, errorText, nil, "")
}

// DeleteMessage удаляет сообщение. Возвращает false, если удалить не вышло.
func DeleteMessage(botClient *BotClient, chatID int64, messageID int) bool {
	if botClient == nil || messageID == 0 {
		return false
	}
	response, err := botClient.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	if err != nil {
		log.Printf("DeleteMessage: ChatID=%d, MessageID=%d: %v", chatID, messageID, err)
		return false
	}
	return response.Ok
}
