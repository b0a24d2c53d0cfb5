package entity

// ProviderType identifies an external OAuth identity provider.
type ProviderType string

const (
	ProviderGoogle ProviderType = "google"
	ProviderGitHub ProviderType = "github"
)

// String returns the string representation of the ProviderType.
func (p ProviderType) String() string {
	return string(p)
}

// IsValid checks if the ProviderType is a supported provider.
func (p ProviderType) IsValid() bool {
	switch p {
	case ProviderGoogle, ProviderGitHub:
		return true
	default:
		return false
	}
}

// OAuthProfile is the identity a provider returns after consent.
type OAuthProfile struct {
	Provider    ProviderType
	ProviderID  string // Provider-specific subject.
	Email       string
	Username    string // Login handle when the provider has one (GitHub).
	DisplayName string
}
