// Package model holds the gorm persistence models. They mirror the schema
// created by the goose migrations and never leave the infra layer.
package model

import (
	"time"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username     string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string `gorm:"type:varchar(255)"`
	GoogleID     *string `gorm:"column:google_id;type:varchar(255);uniqueIndex"`
	GitHubID     *string `gorm:"column:github_id;type:varchar(255);uniqueIndex"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
