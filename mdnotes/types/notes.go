package types

// NoteForm carries the title/content pair posted by an editor form.
type NoteForm struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

const (
	AutosaveSuccess = "success"
	AutosaveFailure = "failure"
)

// AutosaveStatus is the JSON reply to a background autosave call.
type AutosaveStatus struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
