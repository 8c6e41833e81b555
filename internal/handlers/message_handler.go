package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"hrbot/internal/constants"
	"hrbot/internal/formatters"
	"hrbot/internal/models"
	"hrbot/internal/service"
	"hrbot/internal/utils"
)

// HandleMessage обрабатывает входящее сообщение. Бот работает только
// одношаговыми командами: вся заявка передается одной строкой,
// многошаговых диалогов нет.
// HandleMessage processes an incoming message. The bot uses single-message
// commands only: the whole request comes in one line, there are no
// multi-step dialogs.
func (bh *BotHandler) HandleMessage(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID
	employeeID := strconv.FormatInt(chatID, 10)

	fields := strings.Fields(strings.TrimSpace(msg.Text))
	if len(fields) == 0 {
		return
	}
	cmd := strings.ToLower(fields[0])
	// Команда может приходить в виде /аванс@имябота из групповых чатов.
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	args := fields[1:]

	emp, known := bh.Deps.Employees.GetEmployee(employeeID)
	if !known {
		log.Printf("HandleMessage: chatID %d отсутствует в справочнике сотрудников", chatID)
		bh.sendErrorMessageHelper(chatID, 0, "Вас нет в справочнике сотрудников. Обратитесь к администратору.")
		return
	}

	switch cmd {
	case "/start", "/help":
		bh.sendWelcome(chatID, employeeID, emp.Name)
	case "/аванс", "/advance":
		bh.handlePayoutRequest(chatID, emp, args, constants.PAYOUT_TYPE_ADVANCE)
	case "/зарплата", "/salary":
		bh.handlePayoutRequest(chatID, emp, args, constants.PAYOUT_TYPE_SALARY)
	case "/отмена", "/cancel":
		bh.handleCancelRequest(chatID, employeeID)
	case "/заявки", "/active":
		bh.handleActiveList(chatID, employeeID)
	case "/др", "/birthdays":
		bh.handleBirthdayDigest(chatID, employeeID)
	case "/отчет", "/report":
		bh.handleReport(chatID, employeeID)
	default:
		bh.sendErrorMessageHelper(chatID, 0, "Неизвестная команда. Наберите /start для списка команд.")
	}
}

func (bh *BotHandler) sendWelcome(chatID int64, employeeID, name string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Здравствуйте, %s!\n\n", utils.EscapeTelegramMarkdown(name))
	b.WriteString("Доступные команды:\n")
	b.WriteString("/аванс <сумма> [карта|наличные|касса] — запросить аванс\n")
	b.WriteString("/зарплата <сумма> [карта|наличные|касса] — запросить выплату зарплаты\n")
	b.WriteString("/отмена — отменить свою заявку\n")
	if bh.isAdmin(chatID, employeeID) {
		b.WriteString("\nКоманды администратора:\n")
		b.WriteString("/заявки — активные заявки\n")
		b.WriteString("/др — дни рождения\n")
		b.WriteString("/отчет — выгрузка заявок в Excel\n")
	}
	if _, err := bh.sendOrEditMessageHelper(chatID, 0, b.String(), nil, ""); err != nil {
		log.Printf("sendWelcome: ошибка для chatID %d: %v", chatID, err)
	}
}

// parsePayoutMethod сопоставляет слово из команды со способом выплаты.
func parsePayoutMethod(args []string) string {
	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "карта", "card":
			return constants.METHOD_CARD
		case "наличные", "наличными", "cash":
			return constants.METHOD_CASH
		case "касса", "register":
			return constants.METHOD_REGISTER
		}
	}
	return constants.METHOD_CARD
}

func (bh *BotHandler) handlePayoutRequest(chatID int64, emp models.Employee, args []string, payoutType string) {
	if len(args) == 0 {
		bh.sendErrorMessageHelper(chatID, 0, "Укажите сумму: например, /аванс 5000 карта")
		return
	}
	amount, err := utils.ValidateAmount(args[0])
	if err != nil {
		bh.sendErrorMessageHelper(chatID, 0, "❌ "+err.Error())
		return
	}

	// Одновременно может быть только одна ожидающая заявка.
	pending := bh.Deps.Payouts.ListPayouts(models.PayoutFilter{
		EmployeeID: emp.ID,
		Status:     constants.STATUS_PENDING,
	})
	if len(pending) > 0 {
		bh.sendErrorMessageHelper(chatID, 0,
			fmt.Sprintf("У вас уже есть заявка #%s в статусе «%s». Дождитесь решения или отмените ее командой /отмена.",
				pending[0].ID, pending[0].Status))
		return
	}

	created, err := bh.Deps.Payouts.CreatePayout(service.CreatePayoutInput{
		EmployeeID: emp.ID,
		Amount:     amount,
		Method:     parsePayoutMethod(args[1:]),
		PayoutType: payoutType,
	}, true)
	if err != nil {
		log.Printf("handlePayoutRequest: ошибка создания заявки для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, 0, "❌ Не удалось создать заявку. Попробуйте позже.")
		return
	}

	text := fmt.Sprintf("📝 Заявка #%s создана: %s на %s (%s).\nОжидайте решения администратора.",
		created.ID, created.PayoutType, utils.FormatAmount(created.Amount), created.Method)
	if _, err := bh.sendOrEditMessageHelper(chatID, 0, text, nil, ""); err != nil {
		log.Printf("handlePayoutRequest: ошибка отправки подтверждения для chatID %d: %v", chatID, err)
	}
}

func (bh *BotHandler) handleCancelRequest(chatID int64, employeeID string) {
	pending := bh.Deps.Payouts.ListPayouts(models.PayoutFilter{
		EmployeeID: employeeID,
		Status:     constants.STATUS_PENDING,
	})
	if len(pending) == 0 {
		bh.sendErrorMessageHelper(chatID, 0, "У вас нет ожидающих заявок.")
		return
	}
	if _, err := bh.Deps.Payouts.UpdateStatus(pending[0].ID, constants.STATUS_CANCELLED); err != nil {
		log.Printf("handleCancelRequest: ошибка отмены заявки #%s: %v", pending[0].ID, err)
		bh.sendErrorMessageHelper(chatID, 0, "❌ Не удалось отменить заявку.")
		return
	}
	text := fmt.Sprintf("🚫 Заявка #%s отменена.", pending[0].ID)
	if _, err := bh.sendOrEditMessageHelper(chatID, 0, text, nil, ""); err != nil {
		log.Printf("handleCancelRequest: ошибка отправки подтверждения для chatID %d: %v", chatID, err)
	}
}

func (bh *BotHandler) handleActiveList(chatID int64, employeeID string) {
	if !bh.isAdmin(chatID, employeeID) {
		bh.sendErrorMessageHelper(chatID, 0, "Команда доступна только администраторам.")
		return
	}
	text := formatters.FormatActivePayouts(bh.Deps.Payouts.ListActivePayouts())
	if _, err := bh.sendOrEditMessageHelper(chatID, 0, text, nil, tgbotapi.ModeMarkdown); err != nil {
		log.Printf("handleActiveList: ошибка для chatID %d: %v", chatID, err)
	}
}

func (bh *BotHandler) handleBirthdayDigest(chatID int64, employeeID string) {
	if !bh.isAdmin(chatID, employeeID) {
		bh.sendErrorMessageHelper(chatID, 0, "Команда доступна только администраторам.")
		return
	}
	if bh.Deps.Birthdays == nil {
		bh.sendErrorMessageHelper(chatID, 0, "Сервис дней рождения не подключен.")
		return
	}
	text := formatters.FormatBirthdayDigest(bh.Deps.Birthdays.TodayBirthdays(), bh.Deps.Birthdays.UpcomingBirthdays(30))
	if _, err := bh.sendOrEditMessageHelper(chatID, 0, text, nil, tgbotapi.ModeMarkdown); err != nil {
		log.Printf("handleBirthdayDigest: ошибка для chatID %d: %v", chatID, err)
	}
}

func (bh *BotHandler) handleReport(chatID int64, employeeID string) {
	if !bh.isAdmin(chatID, employeeID) {
		bh.sendErrorMessageHelper(chatID, 0, "Команда доступна только администраторам.")
		return
	}
	path, err := bh.Deps.Payouts.ExportPayouts(models.PayoutFilter{})
	if err != nil {
		log.Printf("handleReport: ошибка выгрузки для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, 0, "❌ Нет данных для отчета или выгрузка не удалась.")
		return
	}
	bh.sendDocumentHelper(chatID, path, "📊 Отчет по заявкам на выплаты")
}
