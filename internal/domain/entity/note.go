package entity

// NoteTitleMaxLength matches the notes.title column width.
const NoteTitleMaxLength = 255

// Note is a titled text owned by exactly one user.
type Note struct {
	ID      int64
	UserID  int64
	Title   string
	Content string
}

// IsOwnedBy reports whether userID may read or change the note.
func (n *Note) IsOwnedBy(userID int64) bool {
	return n.UserID == userID
}
