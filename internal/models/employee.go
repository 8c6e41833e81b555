package models

// Employee — карточка сотрудника из файла сотрудников.
// ID совпадает с Telegram chat ID сотрудника (строкой).
// Employee is an employee record from the employees file.
// ID equals the employee's Telegram chat ID (as a string).
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FullName   string `json:"full_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position,omitempty"`
	IsAdmin    bool   `json:"is_admin,omitempty"`
	CardNumber string `json:"card_number,omitempty"` // В файле хранится в зашифрованном виде (AES-256-GCM, hex)
	Bank       string `json:"bank,omitempty"`
	Birthdate  string `json:"birthdate,omitempty"` // Формат constants.BirthdateLayout, может отсутствовать
	Note       string `json:"note,omitempty"`
	Status     string `json:"status,omitempty"` // active | inactive; пустое значение трактуется как active
}

// DisplayName возвращает имя сотрудника для отображения в сообщениях.
func (e Employee) DisplayName() string {
	if e.FullName != "" {
		return e.FullName
	}
	return e.Name
}

// IsActive сообщает, числится ли сотрудник действующим.
func (e Employee) IsActive() bool {
	return e.Status == "" || e.Status == "active"
}
