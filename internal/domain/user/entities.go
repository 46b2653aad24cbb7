package user

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"id"`
	Email          string    `gorm:"size:255;uniqueIndex:ux_users_email" json:"email"`
	HashedPassword string    `gorm:"size:255;column:hashed_password" json:"-"`
	Role           Role      `gorm:"size:20;default:user" json:"role"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }
