package domain

import "time"

// Role of a marketplace account.
type Role int

const (
	RoleLandlord Role = iota + 1
	RoleTenant
	RoleAdmin
)

// User represents the users table
type User struct {
	ID               int    `gorm:"primaryKey"`
	Name             string `gorm:"size:100;not null"`
	Email            string `gorm:"size:255;uniqueIndex;not null"`
	Phone            string `gorm:"size:20"`
	Role             Role   `gorm:"default:1"`
	PasswordHash     string `gorm:"not null"`
	EmailVerifyToken string
	ResetToken       *string
	ResetTokenExpire *time.Time
	IsActive         bool `gorm:"default:false"`
	IsDeleted        bool `gorm:"default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Properties  []Property   `gorm:"foreignKey:PostedBy"`
	Bookmarks   []Bookmark   `gorm:"foreignKey:UserID"`
	Connections []Connection `gorm:"foreignKey:UserID"`
}

// Connection is one live socket session. A row exists exactly as long as the
// underlying websocket is open.
type Connection struct {
	ConnectionID string `gorm:"primaryKey;size:64"`
	UserID       int    `gorm:"index;not null"`

	User User `gorm:"foreignKey:UserID"`
}
