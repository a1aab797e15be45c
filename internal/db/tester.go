package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// Tester verifies that a profile can reach its server.
type Tester interface {
	TestConnection(ctx context.Context, p *connprof.Profile) (info string, err error)
}

// SQLTester tests connectivity with database/sql and the go-mssqldb driver.
type SQLTester struct{}

// TestConnection connects with the profile's parameters and returns the
// server version line. The caller is expected to bound ctx with a timeout.
func (SQLTester) TestConnection(ctx context.Context, p *connprof.Profile) (string, error) {
	conn, err := sql.Open(DriverName(p), BuildConnectionString(p))
	if err != nil {
		return "", fmt.Errorf("%w: %v", connprof.ErrConnectionFailed, err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", connprof.ErrConnectionFailed, err)
	}

	var version string
	if err := conn.QueryRowContext(ctx, "SELECT @@VERSION").Scan(&version); err != nil {
		return "", fmt.Errorf("%w: %v", connprof.ErrConnectionFailed, err)
	}

	// The version blob is multi-line; the first line is enough.
	if idx := strings.IndexAny(version, "\r\n"); idx > 0 {
		version = version[:idx]
	}
	return strings.TrimSpace(version), nil
}
