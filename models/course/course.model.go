package course

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lms/coursetree"
)

// Course owns its whole content tree: the modules (with lessons and
// per-module tests) are stored as one JSON column and replaced
// wholesale when an editing session saves. There is no per-module or
// per-lesson persistence.
type Course struct {
	gorm.Model
	Title       string         `json:"title"`
	Description string         `json:"description" gorm:"type:text"`
	Content     string         `json:"content" gorm:"type:text"`
	VideoURL    string         `json:"video_url"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	Modules     datatypes.JSON `json:"modules" gorm:"type:jsonb"`
	IsDeleted   bool           `gorm:"default:false" json:"-"`
}

// ModulesTree unmarshals the stored modules column. A missing column
// reads as an empty tree.
func (c *Course) ModulesTree() ([]coursetree.Module, error) {
	if len(c.Modules) == 0 {
		return []coursetree.Module{}, nil
	}
	var mods []coursetree.Module
	if err := json.Unmarshal(c.Modules, &mods); err != nil {
		return nil, err
	}
	if mods == nil {
		mods = []coursetree.Module{}
	}
	return mods, nil
}

// SetModulesTree serializes a tree into the modules column. The
// marshaling keeps `test: null` and an empty question list distinct,
// so a saved tree reloads deep-equal.
func (c *Course) SetModulesTree(mods []coursetree.Module) error {
	if mods == nil {
		mods = []coursetree.Module{}
	}
	raw, err := json.Marshal(mods)
	if err != nil {
		return err
	}
	c.Modules = raw
	return nil
}
