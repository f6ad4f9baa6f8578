package model

import (
	"strings"
	"time"
)

// User представляет студента или администратора платформы
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          Role      `json:"role"`
	Qualification string    `json:"qualification"`
	Interests     string    `json:"interests"`
	CreatedAt     time.Time `json:"created_at"`
}

// FullName возвращает имя и фамилию через пробел либо пустую строку
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Caller идентифицирует пользователя, от имени которого вызывается операция
type Caller struct {
	UserID int64
	Role   Role
}

// AsCaller возвращает идентичность пользователя для вызова операций
func (u User) AsCaller() Caller {
	return Caller{UserID: u.ID, Role: u.Role}
}
