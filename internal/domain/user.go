package domain

// User — учётная запись, как её отдаёт бэкенд. Поле Role носит
// презентационный характер: реальную авторизацию выполняет бэкенд.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}
