package db

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig contains database pool configuration parameters
type PoolConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// configureTLS builds a TLS config when DATABASE_CA_CERT points at a CA
// bundle (managed PostgreSQL). Returns nil for plain local connections.
func configureTLS() (*tls.Config, error) {
	certPath := os.Getenv("DATABASE_CA_CERT")
	if certPath == "" {
		return nil, nil
	}

	caPEM, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate from %s: %w", certPath, err)
	}

	rootCertPool := x509.NewCertPool()
	if ok := rootCertPool.AppendCertsFromPEM(caPEM); !ok {
		return nil, fmt.Errorf("failed to append CA certificate to pool")
	}

	tlsConfig := &tls.Config{
		RootCAs: rootCertPool,
	}
	if serverName := os.Getenv("DATABASE_TLS_SERVER_NAME"); serverName != "" {
		tlsConfig.ServerName = serverName
	}

	return tlsConfig, nil
}

// NewPool creates a PostgreSQL connection pool and verifies connectivity
// with a ping before returning it.
func NewPool(ctx context.Context, poolCfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(poolCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	tlsConfig, err := configureTLS()
	if err != nil {
		return nil, fmt.Errorf("failed to configure TLS: %w", err)
	}
	if tlsConfig != nil {
		config.ConnConfig.TLSConfig = tlsConfig
	}

	config.MaxConns = poolCfg.MaxConns
	config.MinConns = poolCfg.MinConns
	config.HealthCheckPeriod = 30 * time.Second
	config.MaxConnLifetime = 1 * time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Close gracefully closes the connection pool
func Close(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
