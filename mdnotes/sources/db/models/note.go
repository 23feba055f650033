// mdnotes/sources/db/models/note.go
package models

// Note is a single markdown document. Title and Content stay NULL until the
// first save, which is the draft state right after creation.
type Note struct {
	ID      string    `json:"id" gorm:"type:text;primaryKey"`
	Title   *string   `json:"title" gorm:"type:text"`
	Content *string   `json:"content" gorm:"type:text"`
	Created Timestamp `json:"created" gorm:"type:text;not null"`
	Updated Timestamp `json:"updated" gorm:"type:text;not null"`
}

func (Note) TableName() string {
	return "notes"
}

// TitleText returns the title, or "" for a draft.
func (n *Note) TitleText() string {
	if n.Title == nil {
		return ""
	}
	return *n.Title
}

// ContentText returns the raw markdown, or "" for a draft.
func (n *Note) ContentText() string {
	if n.Content == nil {
		return ""
	}
	return *n.Content
}

// HasContent reports whether there is anything to render.
func (n *Note) HasContent() bool {
	return n.Content != nil && *n.Content != ""
}
