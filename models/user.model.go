package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompletionRecord is proof that a user finished a course with a full
// score at a point in time. At most one exists per course per user.
type CompletionRecord struct {
	CourseID    uint      `json:"course_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// Notification is a message an admin pushed to a user's dashboard.
type Notification struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// User mirrors the user document: course assignments, completions and
// notifications live on the row as JSON list fields and are replaced
// wholesale on update.
type User struct {
	gorm.Model
	Email            string         `gorm:"unique;not null" json:"email"`
	Password         string         `gorm:"not null" json:"-"`
	Role             string         `gorm:"default:'USER'" json:"role"` // USER, ADMIN
	IsBlocked        bool           `gorm:"default:false" json:"is_blocked"`
	BlockUntil       *time.Time     `json:"block_until"`
	AccessDate       *time.Time     `json:"access_date"` // last course-access grant
	AssignedCourses  datatypes.JSON `gorm:"type:jsonb" json:"assigned_courses"`
	CompletedCourses datatypes.JSON `gorm:"type:jsonb" json:"completed_courses"`
	Notifications    datatypes.JSON `gorm:"type:jsonb" json:"notifications"`
	IsDeleted        bool           `gorm:"default:false" json:"-"`
}

// Blocked reports whether the user is denied application access right
// now: a permanent block, or a temporary one that has not expired.
func (u *User) Blocked(now time.Time) bool {
	if u.IsBlocked {
		return true
	}
	return u.BlockUntil != nil && u.BlockUntil.After(now)
}

// AssignedCourseIDs unmarshals the assigned-courses list field. A
// missing or malformed field reads as empty.
func (u *User) AssignedCourseIDs() []uint {
	var ids []uint
	if len(u.AssignedCourses) > 0 {
		_ = json.Unmarshal(u.AssignedCourses, &ids)
	}
	return ids
}

// SetAssignedCourseIDs replaces the assigned-courses list field.
func (u *User) SetAssignedCourseIDs(ids []uint) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	u.AssignedCourses = raw
	return nil
}

// HasAssignedCourse reports whether a course is on the user's
// assignment list.
func (u *User) HasAssignedCourse(courseID uint) bool {
	for _, id := range u.AssignedCourseIDs() {
		if id == courseID {
			return true
		}
	}
	return false
}

// CompletionRecords unmarshals the completed-courses list field.
func (u *User) CompletionRecords() []CompletionRecord {
	var records []CompletionRecord
	if len(u.CompletedCourses) > 0 {
		_ = json.Unmarshal(u.CompletedCourses, &records)
	}
	return records
}

// SetCompletionRecords replaces the completed-courses list field.
func (u *User) SetCompletionRecords(records []CompletionRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	u.CompletedCourses = raw
	return nil
}

// CompletionFor returns the completion record for a course, if any.
func (u *User) CompletionFor(courseID uint) (CompletionRecord, bool) {
	for _, r := range u.CompletionRecords() {
		if r.CourseID == courseID {
			return r, true
		}
	}
	return CompletionRecord{}, false
}

// NotificationList unmarshals the notifications list field.
func (u *User) NotificationList() []Notification {
	var notifications []Notification
	if len(u.Notifications) > 0 {
		_ = json.Unmarshal(u.Notifications, &notifications)
	}
	return notifications
}

// SetNotificationList replaces the notifications list field.
func (u *User) SetNotificationList(notifications []Notification) error {
	raw, err := json.Marshal(notifications)
	if err != nil {
		return err
	}
	u.Notifications = raw
	return nil
}

// EmptyListFields seeds the JSON list fields for a fresh user so reads
// never see a missing field.
func (u *User) EmptyListFields() {
	u.AssignedCourses = datatypes.JSON("[]")
	u.CompletedCourses = datatypes.JSON("[]")
	u.Notifications = datatypes.JSON("[]")
}
