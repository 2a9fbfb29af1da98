package postgres

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Orcamentos-api/pkg/config"
)

func TestIPv4Lookup_Literales(t *testing.T) {
	lookup := ipv4Lookup(net.DefaultResolver)

	addrs, err := lookup(context.Background(), "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.7"}, addrs)

	_, err = lookup(context.Background(), "::1")
	assert.Error(t, err)
}

func TestNewResolver(t *testing.T) {
	assert.Same(t, net.DefaultResolver, newResolver(""), "sin servidor fijo se usa el del sistema")

	r := newResolver("127.0.0.1:1")
	assert.NotSame(t, net.DefaultResolver, r)
	assert.True(t, r.PreferGo)
}

func TestPoolConfig(t *testing.T) {
	base := config.DBConfig{Host: "db.interno", Port: 5432, User: "app", DBName: "orcamentos", SSLMode: "disable"}

	pc, err := poolConfig(base)
	require.NoError(t, err)
	assert.Equal(t, int32(defaultMaxConns), pc.MaxConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
	assert.Equal(t, "db.interno", pc.ConnConfig.Host)

	forced := base
	forced.ForceIPv4 = true
	forced.MaxConns = 4
	forced.MinConns = 8
	pc, err = poolConfig(forced)
	require.NoError(t, err)
	assert.Equal(t, int32(4), pc.MaxConns)
	assert.Zero(t, pc.MinConns, "MinConns mayor que MaxConns se ignora")
	addrs, err := pc.ConnConfig.LookupFunc(context.Background(), "192.168.1.10")
	require.NoError(t, err)
	assert.Equal(t, []string{"192.168.1.10"}, addrs)
	assert.Equal(t, "db.interno", pc.ConnConfig.Host, "el host no se reescribe")

	_, err = poolConfig(config.DBConfig{DatabaseURL: "::no-es-url"})
	assert.Error(t, err)
}
