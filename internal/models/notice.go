package models

import (
	"time"
)

// Status is the lifecycle state controlling a notice's visibility.
type Status string

// Known lifecycle states. A freshly created notice starts as Draft.
const (
	StatusDraft       Status = "Draft"
	StatusPublished   Status = "Published"
	StatusUnpublished Status = "Unpublished"
	StatusArchived    Status = "Archived"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusUnpublished, StatusArchived:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Target audience discriminators. Employee fields apply only to
// TargetIndividual.
const (
	TargetIndividual = "individual"
	TargetAll        = "all"
	TargetDepartment = "department"
)

// ValidTargetType reports whether the value is a known audience discriminator.
func ValidTargetType(value string) bool {
	switch value {
	case TargetIndividual, TargetAll, TargetDepartment:
		return true
	}
	return false
}

// Notice is a single announcement aimed at a department, the whole company,
// or an individual employee. Column names and JSON field names follow the
// original HR schema so existing consumers keep working.
type Notice struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Title      string     `gorm:"type:text;not null" json:"title"`
	Type       TagList    `gorm:"type:text" json:"type"`
	Department string     `gorm:"type:text;not null" json:"department"`
	Status     Status     `gorm:"type:text;default:'Draft';index" json:"status"`
	Date       *time.Time `json:"date"`
	Content    string     `gorm:"type:text" json:"content"`

	// Populated when the notice targets an individual employee.
	TargetType   string `gorm:"column:target_type;type:text" json:"targetType"`
	EmployeeID   string `gorm:"column:employee_id;type:text" json:"employeeId"`
	EmployeeName string `gorm:"column:employee_name;type:text" json:"employeeName"`
	Position     string `gorm:"type:text" json:"position"`

	AttachmentURL string `gorm:"column:attachment_url;type:text" json:"attachmentUrl"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
