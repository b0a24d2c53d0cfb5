package model

// NoteModel mirrors the 'notes' table, which has no timestamp columns.
type NoteModel struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	UserID  int64  `gorm:"not null;index"`
	Title   string `gorm:"type:varchar(255);not null"`
	Content string `gorm:"type:text;not null"`
}

// TableName explicitly sets the table name for GORM.
func (NoteModel) TableName() string {
	return "notes"
}
