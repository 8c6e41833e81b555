package handlers

import (
	"log"
	"os"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"hrbot/internal/telegram_api"
)

// sendOrEditMessageHelper — обертка над telegram_api.SendOrEditMessage
// с клиентом из зависимостей.
func (bh *BotHandler) sendOrEditMessageHelper(chatID int64, messageIDToEdit int, text string, keyboard *tgbotapi.InlineKeyboardMarkup, parseMode string) (tgbotapi.Message, error) {
	return telegram_api.SendOrEditMessage(bh.Deps.BotClient, chatID, messageIDToEdit, text, keyboard, parseMode)
}

// sendErrorMessageHelper отправляет пользователю сообщение об ошибке.
func (bh *BotHandler) sendErrorMessageHelper(chatID int64, messageIDToEdit int, errorText string) {
	if _, err := telegram_api.SendErrorMessage(bh.Deps.BotClient, chatID, messageIDToEdit, errorText); err != nil {
		log.Printf("sendErrorMessageHelper: не удалось отправить сообщение об ошибке для chatID %d: %v", chatID, err)
	}
}

// sendDocumentHelper отправляет файл и удаляет его с диска после отправки.
func (bh *BotHandler) sendDocumentHelper(chatID int64, filePath string, caption string) {
	if filePath == "" {
		bh.sendErrorMessageHelper(chatID, 0, "❌ Не удалось сгенерировать файл отчета.")
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filePath))
	doc.Caption = caption
	if _, err := bh.Deps.BotClient.Send(doc); err != nil {
		log.Printf("sendDocumentHelper: ошибка отправки файла %s для chatID %d: %v", filePath, chatID, err)
		bh.sendErrorMessageHelper(chatID, 0, "❌ Ошибка при отправке файла отчета.")
	}
	if err := os.Remove(filePath); err != nil {
		log.Printf("sendDocumentHelper: ошибка удаления временного файла %s: %v", filePath, err)
	}
}
