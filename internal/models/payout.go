package models

// Payout представляет заявку сотрудника на выплату (аванс или зарплата).
// Формат JSON-полей совпадает с форматом файла выплат и менять его нельзя:
// это долговременный контракт хранилища.
// Payout represents an employee's payout request (advance or salary).
// The JSON field layout matches the payout file format and must not change:
// it is the durable storage contract.
type Payout struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"user_id"` // Telegram chat ID сотрудника в виде строки / Employee's Telegram chat ID as a string
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Bank       string  `json:"bank"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	PayoutType string  `json:"payout_type,omitempty"`
	Status     string  `json:"status"`
	Timestamp  string  `json:"timestamp"` // Момент создания в формате constants.TimestampLayout, при смене статуса не обновляется
	IsManual   bool    `json:"is_manual,omitempty"`
}

// PayoutUpdate — частичное обновление заявки. Применяются только ненулевые
// (не-nil) поля: отсутствие поля никогда не затирает сохраненное значение.
// PayoutUpdate is a partial update. Only non-nil fields are applied:
// an absent field never clears the stored value.
type PayoutUpdate struct {
	Name       *string  `json:"name,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Bank       *string  `json:"bank,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Method     *string  `json:"method,omitempty"`
	PayoutType *string  `json:"payout_type,omitempty"`
	Status     *string  `json:"status,omitempty"`
	Timestamp  *string  `json:"timestamp,omitempty"`
}

// PayoutFilter описывает критерии выборки заявок. Пустое поле означает
// отсутствие фильтра по нему. FromDate/ToDate задают диапазон по timestamp.
type PayoutFilter struct {
	EmployeeID string
	PayoutType string
	Status     string
	Method     string
	FromDate   string
	ToDate     string
}
