package models

import (
	"strings"
	"time"
)

const (
	// PlatformTeams tags assignments handed in through Microsoft Teams.
	PlatformTeams = "teams"
	// PlatformOpenLMS tags assignments handed in through OpenLMS.
	PlatformOpenLMS = "openlms"
)

// Assignment represents a single piece of coursework tracked on the calendar.
//
// DueDate and DueTime are stored as wall-clock strings (YYYY-MM-DD and HH:MM)
// and only become an absolute instant once combined with the viewer's location.
type Assignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"size:64;index;not null" json:"user_id"`
	CourseName string    `gorm:"size:255;not null" json:"course_name"`
	Lesson     string    `gorm:"size:64" json:"lesson"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	DueDate    string    `gorm:"size:10;index;not null" json:"due_date"`
	DueTime    string    `gorm:"size:8;not null" json:"due_time"`
	Platform   string    `gorm:"size:16;not null" json:"platform"`
	Completed  bool      `gorm:"not null;default:false" json:"completed"`
	Link       string    `gorm:"size:2048" json:"link"`
	Memo       string    `gorm:"type:text" json:"memo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NormalizeDueTime trims a seconds component ("23:59:00" -> "23:59") that
// SQL time columns tend to add on the way back out.
func NormalizeDueTime(value string) string {
	value = strings.TrimSpace(value)
	if len(value) == len("15:04:05") && strings.Count(value, ":") == 2 {
		return value[:len("15:04")]
	}
	return value
}
