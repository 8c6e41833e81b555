package telegram_api

import (
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/skip2/go-qrcode"

	"hrbot/internal/constants"
	"hrbot/internal/formatters"
	"hrbot/internal/models"
	"hrbot/internal/service"
)

// Notifier доставляет уведомления через Telegram: администратору — о новых
// заявках (с кнопками решения), сотруднику — о смене статуса. Реализует
// service.Notifier.
type Notifier struct {
	client      *BotClient
	adminChatID int64
	employees   service.EmployeeLookup
}

// NewNotifier создает Notifier. employees может быть nil — тогда к заявкам
// на карту не прикладывается QR-код с реквизитами.
func NewNotifier(client *BotClient, adminChatID int64, employees service.EmployeeLookup) *Notifier {
	return &Notifier{client: client, adminChatID: adminChatID, employees: employees}
}

// NotifyAdminOfNewPayout отправляет администратору карточку новой заявки
// с inline-кнопками Одобрить/Отказать/Отменить. Для выплат на карту
// дополнительно уходит QR-код с реквизитами сотрудника.
func (n *Notifier) NotifyAdminOfNewPayout(p models.Payout) error {
	if n.adminChatID == 0 {
		return fmt.Errorf("чат администратора не настроен")
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Одобрить", constants.CALLBACK_PREFIX_PAYOUT_APPROVE+p.ID),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отказать", constants.CALLBACK_PREFIX_PAYOUT_DENY+p.ID),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 Отменить", constants.CALLBACK_PREFIX_PAYOUT_CANCEL+p.ID),
		),
	)

	msg := tgbotapi.NewMessage(n.adminChatID, formatters.FormatNewPayoutRequest(p))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard
	if _, err := n.client.Send(msg); err != nil {
		return fmt.Errorf("отправка заявки #%s администратору: %w", p.ID, err)
	}

	if p.Method == constants.METHOD_CARD {
		n.sendCardQR(p)
	}
	return nil
}

// sendCardQR прикладывает QR-код с реквизитами для перевода. Неудача здесь
// не считается ошибкой уведомления: карточка заявки уже доставлена.
func (n *Notifier) sendCardQR(p models.Payout) {
	if n.employees == nil {
		return
	}
	emp, ok := n.employees.GetEmployee(p.EmployeeID)
	if !ok || emp.CardNumber == "" {
		return
	}
	payload := fmt.Sprintf("%s %s %s", emp.CardNumber, emp.Bank, p.Name)
	qrBytes, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		log.Printf("Notifier: ошибка генерации QR-кода для заявки #%s: %v", p.ID, err)
		return
	}
	photo := tgbotapi.NewPhoto(n.adminChatID, tgbotapi.FileBytes{Name: "card_qr.png", Bytes: qrBytes})
	photo.Caption = fmt.Sprintf("Реквизиты для заявки #%s", p.ID)
	if _, err := n.client.Send(photo); err != nil {
		log.Printf("Notifier: ошибка отправки QR-кода для заявки #%s: %v", p.ID, err)
	}
}

// NotifyEmployee отправляет сотруднику текстовое сообщение.
// employeeID — Telegram chat ID в виде строки.
func (n *Notifier) NotifyEmployee(employeeID string, text string) error {
	chatID, err := strconv.ParseInt(employeeID, 10, 64)
	if err != nil {
		return fmt.Errorf("некорректный ID сотрудника '%s': %w", employeeID, err)
	}
	if _, err := n.client.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("отправка сообщения сотруднику %s: %w", employeeID, err)
	}
	return nil
}
