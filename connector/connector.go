// Package connector manages database connection lifecycle: configuration,
// DSN construction, provider registration and connect-time retry. The
// resulting Connection hands out the executor and dialect the command layer
// runs on.
package connector

import (
	"context"

	"github.com/Konsultn-Engineering/sqlcmd/database"
	"github.com/Konsultn-Engineering/sqlcmd/dialect"
)

// Connection is a live database connection.
type Connection interface {
	// Database returns the executor bound to this connection.
	Database() database.Database

	// Dialect returns the SQL dialect of the connected server.
	Dialect() dialect.Dialect

	// Health verifies the connection is alive.
	Health(ctx context.Context) error

	// Stats reports pool statistics.
	Stats() ConnectionStats

	Close() error
}

// Connector produces Connections for one configuration.
type Connector interface {
	Connect(ctx context.Context) (Connection, error)
	ConnectWithRetry(ctx context.Context, opts RetryOptions) (Connection, error)
}

// Provider implements connection establishment for one database kind.
type Provider interface {
	Connect(ctx context.Context, config Config) (Connection, error)
	Dialect() dialect.Dialect
}
