package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"

	"github.com/jhoicas/Orcamentos-api/pkg/config"
)

const (
	defaultMaxConns = 10
	dnsTimeout      = 5 * time.Second
)

// NewPool abre el pool de PostgreSQL del catálogo y las cotizaciones.
// Los NUMERIC (precios, totales) se leen como decimal.Decimal en todas las conexiones.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

func poolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	pc.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= pc.MaxConns {
		pc.MinConns = cfg.MinConns
	}
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute

	// El host se mantiene en la config: TLS sigue verificando contra el nombre.
	if cfg.ForceIPv4 {
		pc.ConnConfig.LookupFunc = ipv4Lookup(newResolver(cfg.DNSResolver))
	}

	pc.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pc, nil
}

// newResolver usa server ("host:port") como DNS; vacío devuelve el resolver del sistema.
func newResolver(server string) *net.Resolver {
	if server == "" {
		return net.DefaultResolver
	}
	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			d := net.Dialer{Timeout: dnsTimeout}
			return d.DialContext(ctx, network, server)
		},
	}
}

// ipv4Lookup resuelve el host de PostgreSQL solo a IPv4. Un literal IPv6 es un error.
func ipv4Lookup(r *net.Resolver) pgconn.LookupFunc {
	return func(ctx context.Context, host string) ([]string, error) {
		if ip := net.ParseIP(host); ip != nil {
			if ip.To4() == nil {
				return nil, fmt.Errorf("postgres: %s es IPv6 y DB_FORCE_IPV4 está activo", host)
			}
			return []string{host}, nil
		}
		ips, err := r.LookupIP(ctx, "ip4", host)
		if err != nil {
			return nil, fmt.Errorf("postgres: resolver %s: %w", host, err)
		}
		addrs := make([]string, 0, len(ips))
		for _, ip := range ips {
			if v4 := ip.To4(); v4 != nil {
				addrs = append(addrs, v4.String())
			}
		}
		if len(addrs) == 0 {
			return nil, fmt.Errorf("postgres: %s no tiene IPv4", host)
		}
		return addrs, nil
	}
}
