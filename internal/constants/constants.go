package constants

import "time"

// Канонические статусы заявки на выплату.
// Canonical payout request statuses.
const (
	STATUS_PENDING   = "Ожидает"
	STATUS_APPROVED  = "Одобрено"
	STATUS_DENIED    = "Отказано"
	STATUS_CANCELLED = "Отменено"
)

// Устаревшие написания статусов, встречающиеся в старых файлах выплат.
// Нормализуются при загрузке хранилища.
// Legacy status spellings found in old payout files.
// Normalized when the store is loaded.
var LegacyStatusMap = map[string]string{
	"В ожидании": STATUS_PENDING,
	"Разрешено":  STATUS_APPROVED,
}

// ActiveStatuses — статусы, при которых заявка считается "в работе" для
// административной панели. Набор шире строгого STATUS_PENDING: исторически
// сюда входят старые написания и английское "pending". Сужать нельзя —
// на этом поведении завязаны существующие клиенты.
var ActiveStatuses = []string{
	"В ожидании",
	"Разрешено",
	STATUS_PENDING,
	"pending",
}

// Способы выплаты. Перечень открытый: хранилище не ограничивает значение.
const (
	METHOD_CARD     = "Перевод на карту"
	METHOD_CASH     = "Наличными"
	METHOD_REGISTER = "Через кассу"
)

// Типы выплат.
const (
	PAYOUT_TYPE_ADVANCE = "Аванс"
	PAYOUT_TYPE_SALARY  = "Зарплата"
)

// TimestampLayout — фиксированный формат поля timestamp в файле выплат.
// Лексикографическая сортировка строк в этом формате совпадает с хронологической.
const TimestampLayout = "2006-01-02 15:04:05"

// BirthdateLayout — формат даты рождения сотрудника в файле сотрудников.
const BirthdateLayout = "2006-01-02"

// Статусы сотрудника.
const (
	EMPLOYEE_ACTIVE   = "active"
	EMPLOYEE_INACTIVE = "inactive"
)

// Префиксы callback-данных для inline-кнопок администратора.
// Callback data prefixes for admin inline buttons.
const (
	CALLBACK_PREFIX_PAYOUT_APPROVE = "payout_approve_"
	CALLBACK_PREFIX_PAYOUT_DENY    = "payout_deny_"
	CALLBACK_PREFIX_PAYOUT_CANCEL  = "payout_cancel_"
	CALLBACK_PREFIX_PAYOUT_PAID    = "payout_paid_"
)

// PendingTooLongThreshold — срок, после которого необработанная заявка
// помечается предупреждением в контрольном отчете.
const PendingTooLongThreshold = 48 * time.Hour

// FrequentRequestWindow — окно, в котором повторная заявка того же сотрудника
// считается "частой".
const FrequentRequestWindow = 3 * 24 * time.Hour

// MonthMap сопоставляет месяцы русским названиям в родительном падеже.
// Используется при отображении дат (дни рождения, отчеты).
var MonthMap = map[time.Month]string{
	time.January:   "января",
	time.February:  "февраля",
	time.March:     "марта",
	time.April:     "апреля",
	time.May:       "мая",
	time.June:      "июня",
	time.July:      "июля",
	time.August:    "августа",
	time.September: "сентября",
	time.October:   "октября",
	time.November:  "ноября",
	time.December:  "декабря",
}
