package handlers

import (
	"hrbot/internal/config"
	"hrbot/internal/service"
	"hrbot/internal/storage"
	"hrbot/internal/telegram_api"
)

// HandlerDependencies содержит все зависимости, необходимые обработчикам бота.
// HandlerDependencies contains all dependencies required by bot handlers.
type HandlerDependencies struct {
	Config    *config.Config
	BotClient *telegram_api.BotClient
	Payouts   *service.PayoutService
	Employees *storage.EmployeeRepository
	Birthdays *service.BirthdayService
}

// BotHandler инкапсулирует обработку сообщений и коллбэков бота.
// BotHandler encapsulates bot message and callback handling.
type BotHandler struct {
	Deps HandlerDependencies
}

// NewBotHandler создает новый экземпляр BotHandler.
func NewBotHandler(deps HandlerDependencies) *BotHandler {
	if deps.Config == nil || deps.BotClient == nil || deps.Payouts == nil || deps.Employees == nil {
		panic("Не все зависимости для BotHandler были предоставлены.")
	}
	return &BotHandler{Deps: deps}
}

// isAdmin сообщает, является ли чат администраторским: либо это настроенный
// админ-чат, либо у сотрудника стоит флаг is_admin.
func (bh *BotHandler) isAdmin(chatID int64, employeeID string) bool {
	if chatID == bh.Deps.Config.AdminChatID && chatID != 0 {
		return true
	}
	emp, ok := bh.Deps.Employees.GetEmployee(employeeID)
	return ok && emp.IsAdmin
}
