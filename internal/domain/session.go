package domain

import "time"

// Session — состояние вкладки браузера: токен авторизации и отображаемый
// идентификатор пользователя. Живёт до выхода или истечения TTL, другого
// долговременного состояния на клиенте нет.
type Session struct {
	ID    string `json:"id"`
	Token string `json:"token,omitempty"`
	// Email — сохранённый идентификатор для отображения и для резолва
	// пользователя, когда UserID ещё не известен.
	Email string `json:"email,omitempty"`
	// UserID — идентификатор пользователя на бэкенде; 0, пока не разрешён.
	UserID int64 `json:"userId,omitempty"`
	// CartCount — количество позиций в корзине для бейджа в шапке.
	CartCount int `json:"cartCount,omitempty"`
	// Flashes — одноразовые уведомления, показываются при следующем рендере.
	Flashes   []Flash   `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Authenticated сообщает, есть ли в сессии токен.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Flash — одноразовое уведомление для пользователя.
type Flash struct {
	// Level — success, info, warning или danger (классы алертов в шаблонах).
	Level   string `json:"level"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

// SessionStore — хранилище сессий с явным жизненным циклом set/get/clear.
type SessionStore interface {
	// Save сохраняет сессию, продлевая её TTL.
	Save(sess Session) error
	// Get возвращает сессию или ErrSessionNotFound.
	Get(id string) (Session, error)
	// Delete удаляет сессию; отсутствие сессии не считается ошибкой.
	Delete(id string) error
}
