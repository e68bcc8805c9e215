package notify

// Уровни уведомлений — соответствуют классам алертов в шаблонах.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// Event — типизированное событие витрины.
type Event interface {
	// EventName возвращает стабильное имя события для подписки и для
	// зеркалирования во внешние системы.
	EventName() string
}

// CartUpdated — состав корзины пользователя изменился.
type CartUpdated struct {
	UserID int64 `json:"userId"`
	// Items — актуальное количество позиций (для бейджа в шапке).
	Items int `json:"items"`
}

func (CartUpdated) EventName() string { return "cart.updated" }

// SessionInvalid — сессия больше не действительна (истёк токен, выход
// на другой вкладке). Подписчик в веб-слое принудительно разлогинивает.
type SessionInvalid struct {
	SessionID string `json:"sessionId,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func (SessionInvalid) EventName() string { return "session.invalid" }

// BackendUnreachable — транспортный сбой при обращении к бэкенду.
type BackendUnreachable struct {
	Endpoint string `json:"endpoint,omitempty"`
}

func (BackendUnreachable) EventName() string { return "backend.unreachable" }

// Notice — уведомление для пользователя.
type Notice struct {
	Level   string `json:"level"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

func (Notice) EventName() string { return "notice" }

// Success создаёт уведомление об успехе.
func Success(title, message string) Notice {
	return Notice{Level: LevelSuccess, Title: title, Message: message}
}

// Info создаёт информационное уведомление.
func Info(title, message string) Notice {
	return Notice{Level: LevelInfo, Title: title, Message: message}
}

// Warning создаёт предупреждение.
func Warning(title, message string) Notice {
	return Notice{Level: LevelWarning, Title: title, Message: message}
}

// Danger создаёт уведомление об ошибке.
func Danger(title, message string) Notice {
	return Notice{Level: LevelDanger, Title: title, Message: message}
}
