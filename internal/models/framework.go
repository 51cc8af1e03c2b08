package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Framework is a registry row for one compliance framework label.
// Keywords holds the comma-separated lowercase fragments matched against
// filenames; the catalog snapshot is built from enabled rows at run start.
type Framework struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UUID        string    `json:"uuid" gorm:"uniqueIndex"`
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	Keywords    string    `json:"keywords" gorm:"type:text"`
	Enabled     bool      `json:"enabled" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f *Framework) BeforeCreate(tx *gorm.DB) (err error) {
	if f.UUID == "" {
		f.UUID = uuid.NewString()
	}
	return
}

// KeywordList splits the stored keyword string into trimmed lowercase
// fragments, dropping empties.
func (f *Framework) KeywordList() []string {
	parts := strings.Split(f.Keywords, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetKeywordList stores fragments as the canonical comma-separated form.
func (f *Framework) SetKeywordList(keywords []string) {
	cleaned := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			cleaned = append(cleaned, k)
		}
	}
	f.Keywords = strings.Join(cleaned, ",")
}
