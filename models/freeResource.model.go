package models

import "gorm.io/gorm"

// FreeResource is a publicly available learning link (no enrollment
// required).
type FreeResource struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}
