package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"hrbot/internal/constants"
	"hrbot/internal/service"
	"hrbot/internal/utils"
)

// callbackStatusMap сопоставляет префикс callback-данных целевому статусу.
var callbackStatusMap = map[string]string{
	constants.CALLBACK_PREFIX_PAYOUT_APPROVE: constants.STATUS_APPROVED,
	constants.CALLBACK_PREFIX_PAYOUT_DENY:    constants.STATUS_DENIED,
	constants.CALLBACK_PREFIX_PAYOUT_CANCEL:  constants.STATUS_CANCELLED,
	constants.CALLBACK_PREFIX_PAYOUT_PAID:    "Выплачен",
}

// HandleCallback обрабатывает нажатия inline-кнопок: решения администратора
// по заявкам на выплату.
func (bh *BotHandler) HandleCallback(update tgbotapi.Update) {
	query := update.CallbackQuery
	if query == nil || query.Message == nil {
		log.Println("HandleCallback: получен пустой CallbackQuery.")
		return
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	data := query.Data

	log.Printf("HandleCallback: ChatID=%d, MsgID=%d, Data='%s'", chatID, messageID, data)

	if _, err := bh.Deps.BotClient.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("HandleCallback: ошибка ответа на CallbackQuery %s: %v. Продолжаем.", query.ID, err)
	}

	for prefix, status := range callbackStatusMap {
		if strings.HasPrefix(data, prefix) {
			bh.handlePayoutDecision(chatID, messageID, strings.TrimPrefix(data, prefix), status)
			return
		}
	}
	log.Printf("HandleCallback: неизвестные callback-данные '%s' от chatID %d", data, chatID)
}

// handlePayoutDecision применяет решение администратора к заявке и заменяет
// карточку с кнопками итоговым текстом. Уведомление сотруднику отправляет
// сервисный слой; его неудача на исход решения не влияет.
func (bh *BotHandler) handlePayoutDecision(chatID int64, messageID int, payoutID, status string) {
	employeeID := strconv.FormatInt(chatID, 10)
	if !bh.isAdmin(chatID, employeeID) {
		bh.sendErrorMessageHelper(chatID, 0, "Решения по заявкам принимают только администраторы.")
		return
	}

	updated, err := bh.Deps.Payouts.UpdateStatus(payoutID, status)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			bh.sendErrorMessageHelper(chatID, messageID, fmt.Sprintf("Заявка #%s не найдена.", payoutID))
			return
		}
		log.Printf("handlePayoutDecision: ошибка обновления заявки #%s: %v", payoutID, err)
		bh.sendErrorMessageHelper(chatID, messageID, "❌ Не удалось обновить заявку.")
		return
	}

	text := fmt.Sprintf("Заявка #%s (%s, %s)\n\nНовый статус: *%s*",
		updated.ID, utils.EscapeTelegramMarkdown(updated.Name), utils.FormatAmount(updated.Amount), updated.Status)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, nil, tgbotapi.ModeMarkdown); err != nil {
		log.Printf("handlePayoutDecision: ошибка обновления карточки заявки #%s: %v", payoutID, err)
	}
}
