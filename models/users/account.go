package users

import (
	"time"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Username  string    `json:"username" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // Хэш пароля (не передается в JSON)
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
