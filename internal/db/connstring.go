// Package db builds SQL Server connection strings from profiles and tests
// connectivity against them.
package db

import (
	"fmt"
	"net/url"

	"github.com/microsoft/go-mssqldb/azuread"

	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// Federated-auth workflow names understood by the go-mssqldb azuread driver.
const (
	fedAuthInteractive = "ActiveDirectoryInteractive"
	fedAuthDefault     = "ActiveDirectoryDefault"
)

// BuildConnectionString renders the profile as a sqlserver:// URL. A
// profile-level connection string, when present, wins over the granular
// fields.
func BuildConnectionString(p *connprof.Profile) string {
	if p.ConnectionString != "" {
		return p.ConnectionString
	}

	u := &url.URL{
		Scheme: "sqlserver",
		Host:   fmt.Sprintf("%s:%d", p.Server, connprof.DefaultPort),
	}

	q := url.Values{}
	q.Set("app name", connprof.DefaultAppName)
	if p.Database != "" {
		q.Set("database", p.Database)
	}

	switch p.AuthType {
	case connprof.AuthSQLLogin:
		u.User = url.UserPassword(p.User, p.Password)
	case connprof.AuthIntegrated:
		// No credentials in the URL: the driver uses the OS session (SSPI).
	case connprof.AuthAzureInteractive:
		q.Set("fedauth", fedAuthInteractive)
		if p.User != "" {
			u.User = url.User(p.User)
		}
		if p.AzureTenantID != "" {
			q.Set("tenant id", p.AzureTenantID)
		}
	case connprof.AuthAzureUniversal:
		q.Set("fedauth", fedAuthDefault)
		if p.AzureTenantID != "" {
			q.Set("tenant id", p.AzureTenantID)
		}
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// DriverName returns the database/sql driver to use for the profile.
// Azure AD modes go through the azuread driver, which handles the token
// handshake; everything else uses the plain sqlserver driver.
func DriverName(p *connprof.Profile) string {
	if p.AuthType.RequiresTokenExchange() {
		return azuread.DriverName
	}
	return "sqlserver"
}
