package connprof

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Profile is a named, persistable bundle of SQL Server connection parameters.
// It is mutable while being assembled from user answers and must be treated
// as immutable once returned by the assembler.
type Profile struct {
	// ID uniquely identifies the profile independent of its display name.
	ID uuid.UUID `yaml:"id"`

	// Name is the display label. The empty string means "unset": callers
	// should fall back to DisplayName() for presentation.
	Name string `yaml:"name,omitempty"`

	// AuthType determines which credential fields are mandatory.
	AuthType AuthType `yaml:"auth_type"`

	Server   string `yaml:"server,omitempty"`
	Database string `yaml:"database,omitempty"`
	User     string `yaml:"user,omitempty"`

	// Password is persisted only when SavePassword is set.
	Password string `yaml:"password,omitempty"`

	// ConnectionString, when non-empty, overrides all granular fields.
	ConnectionString string `yaml:"connection_string,omitempty"`

	// SavePassword records the user's choice to persist the password.
	SavePassword bool `yaml:"save_password,omitempty"`

	// EmptyPasswordInput records that the user deliberately entered an
	// empty password (as opposed to never being asked).
	EmptyPasswordInput bool `yaml:"empty_password,omitempty"`

	// Azure Entra ID parameters (used when AuthType is an Azure AD mode).
	AzureTenantID string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID string `yaml:"azure_client_id,omitempty"`
}

// NewProfile returns an empty draft profile with all fields at well-defined
// defaults and a fresh ID.
func NewProfile() *Profile {
	return &Profile{
		ID:       uuid.New(),
		AuthType: AuthUnknown,
	}
}

// IsValid reports whether the profile carries enough information to attempt
// a connection. A profile is valid iff it has a connection string, or it has
// an authentication type, a server, and a user (the user is waived for
// authentication types that do not use an explicit user field).
func (p *Profile) IsValid() bool {
	if p.ConnectionString != "" {
		return true
	}
	if p.AuthType == AuthUnknown {
		return false
	}
	if !p.AuthType.RequiresUser() {
		return p.Server != ""
	}
	return p.Server != "" && p.User != ""
}

// DisplayName returns the profile name, falling back to a server-derived
// label when the name is unset.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.ConnectionString != "" {
		return "(connection string)"
	}
	if p.User != "" {
		return fmt.Sprintf("%s (%s)", p.Server, p.User)
	}
	return p.Server
}

// AuthType represents the authentication mode for a connection profile.
type AuthType int

const (
	AuthUnknown          AuthType = iota // No authentication type selected
	AuthSQLLogin                         // SQL Server login (username/password)
	AuthIntegrated                       // Windows integrated / trusted connection
	AuthAzureInteractive                 // Azure Entra ID interactive browser login
	AuthAzureUniversal                   // Azure Entra ID universal with MFA
)

// String returns a human-readable representation of the AuthType.
func (a AuthType) String() string {
	switch a {
	case AuthUnknown:
		return "Unknown"
	case AuthSQLLogin:
		return "SQL Login"
	case AuthIntegrated:
		return "Integrated"
	case AuthAzureInteractive:
		return "Azure AD Interactive"
	case AuthAzureUniversal:
		return "Azure AD Universal"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthType is a defined, selectable value.
func (a AuthType) IsValid() bool {
	return a > AuthUnknown && a <= AuthAzureUniversal
}

// RequiresUser reports whether the mode needs an explicit user field.
// Integrated auth derives the identity from the OS session and the universal
// Azure AD flow resolves the account during login, so neither requires one.
func (a AuthType) RequiresUser() bool {
	switch a {
	case AuthIntegrated, AuthAzureUniversal:
		return false
	default:
		return true
	}
}

// PasswordBased reports whether the mode authenticates with a password the
// user types in. Only SQL logins do; the Azure AD modes obtain tokens.
func (a AuthType) PasswordBased() bool {
	return a == AuthSQLLogin
}

// RequiresTokenExchange reports whether completing a profile with this mode
// triggers an interactive Azure AD login.
func (a AuthType) RequiresTokenExchange() bool {
	return a == AuthAzureInteractive || a == AuthAzureUniversal
}

// ParseAuthType converts a stored or user-supplied string into an AuthType.
// Returns AuthUnknown for unrecognized values.
func ParseAuthType(s string) AuthType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sql", "sqllogin", "sql login", "sql_login":
		return AuthSQLLogin
	case "integrated", "windows", "trusted":
		return AuthIntegrated
	case "azure-interactive", "azure_interactive", "azure ad interactive", "activedirectoryinteractive":
		return AuthAzureInteractive
	case "azure-universal", "azure_universal", "azure ad universal", "activedirectoryuniversal":
		return AuthAzureUniversal
	default:
		return AuthUnknown
	}
}

// MarshalYAML stores the AuthType as its canonical string form.
func (a AuthType) MarshalYAML() (interface{}, error) {
	return a.canonical(), nil
}

// UnmarshalYAML parses the canonical string form.
func (a *AuthType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*a = ParseAuthType(s)
	return nil
}

func (a AuthType) canonical() string {
	switch a {
	case AuthSQLLogin:
		return "sql_login"
	case AuthIntegrated:
		return "integrated"
	case AuthAzureInteractive:
		return "azure_interactive"
	case AuthAzureUniversal:
		return "azure_universal"
	default:
		return ""
	}
}

// Defaults carries optional pre-filled values for profile creation.
type Defaults struct {
	ProfileName string
	Server      string
	Database    string
	User        string
	AuthType    AuthType

	// Azure Entra ID defaults, typically loaded from project config.
	AzureTenantID string
	AzureClientID string
}
