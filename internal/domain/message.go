package domain

import "time"

// Message is a directed record between two users. Immutable once sent except
// for the read flag, which only ever goes false -> true.
type Message struct {
	ID         int    `gorm:"primaryKey"`
	Content    string `gorm:"not null"`
	SenderID   int    `gorm:"index;not null"`
	ReceiverID int    `gorm:"index;not null"`
	IsRead     bool   `gorm:"default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID"`
	Receiver User `gorm:"foreignKey:ReceiverID"`
}
