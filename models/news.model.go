package models

import "gorm.io/gorm"

// News is a short announcement shown on the landing page. Inactive
// entries stay editable for admins but are hidden from users.
type News struct {
	gorm.Model
	Title     string `json:"title"`
	Content   string `json:"content" gorm:"type:text"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
