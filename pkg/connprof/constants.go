package connprof

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitAuthError       = 12 // Azure AD login failed
	ExitNotCompleted    = 13 // Profile creation cancelled or invalid
)

const (
	// DefaultPort is the default SQL Server TCP port.
	DefaultPort = 1433

	// DefaultTestTimeout bounds a connection test.
	DefaultTestTimeout = 15 * time.Second

	// DefaultLoginTimeout bounds an interactive Azure AD login, browser
	// round-trip included.
	DefaultLoginTimeout = 2 * time.Minute

	// DefaultAppName is reported to the server as the application name.
	DefaultAppName = "connprof"
)
