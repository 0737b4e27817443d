package domain

import "time"

// User is one row of the club's member directory, mastered in a spreadsheet
// and mirrored here for the web app's player picker.
type User struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Name      string // display name, e.g. "Felipe García B."
	FirstName string
	LastNames string
	Phone     string
	Category  string `gorm:"index"` // membership category from the sheet
	CreatedAt time.Time
	UpdatedAt time.Time
}
