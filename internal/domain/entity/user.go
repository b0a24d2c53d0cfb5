// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Column widths of the users table, in characters.
const (
	EmailMaxLength    = 255
	UsernameMaxLength = 255
)

// PasswordMaxBytes is the longest input bcrypt accepts.
const PasswordMaxBytes = 72

// User is an account that owns notes. It can log in with a password,
// with one or more linked OAuth providers, or both.
type User struct {
	ID           int64     // Serial primary key.
	Email        string    // Unique; the join key when linking OAuth providers.
	Username     string    // Unique display handle.
	PasswordHash *string   // bcrypt hash; nil for OAuth-only accounts.
	GoogleID     *string   // Google subject, unique when set.
	GitHubID     *string   // GitHub numeric id as a string, unique when set.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can use password login.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// ProviderID returns the linked identifier for provider, or "" when unlinked.
func (u *User) ProviderID(provider ProviderType) string {
	var id *string
	switch provider {
	case ProviderGoogle:
		id = u.GoogleID
	case ProviderGitHub:
		id = u.GitHubID
	}
	if id == nil {
		return ""
	}

	return *id
}

// LinkProvider sets the identifier for provider if none is linked yet.
// It returns false when the provider was already linked or is unknown.
func (u *User) LinkProvider(provider ProviderType, providerID string) bool {
	if providerID == "" || u.ProviderID(provider) != "" {
		return false
	}

	id := providerID
	switch provider {
	case ProviderGoogle:
		u.GoogleID = &id
	case ProviderGitHub:
		u.GitHubID = &id
	default:
		return false
	}

	return true
}

// UsernameFallback picks the username for an account created from an
// OAuth profile: explicit username, then display name, then the local
// part of the email.
func UsernameFallback(username, displayName, email string) string {
	if s := strings.TrimSpace(username); s != "" {
		return s
	}
	if s := strings.TrimSpace(displayName); s != "" {
		return s
	}
	local, _, _ := strings.Cut(email, "@")

	return local
}

// TruncateUsername cuts name so that name+suffix fits the username column.
func TruncateUsername(name, suffix string) string {
	limit := UsernameMaxLength - utf8.RuneCountInString(suffix)
	if utf8.RuneCountInString(name) <= limit {
		return name + suffix
	}

	return string([]rune(name)[:limit]) + suffix
}
