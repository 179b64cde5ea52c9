package dbmysql

import "time"

// Profile mirrors the display identity of a forum user.
type Profile struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Username    string    `gorm:"size:100" json:"username"`
	CurrentCity string    `gorm:"size:100" json:"current_city"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
