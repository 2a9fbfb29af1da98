package maintenance

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/testutil/memdb"
)

func TestSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	db := memdb.New()
	st := memdb.NewStorage()

	put := func(key string, age time.Duration) {
		st.Now = func() time.Time { return now.Add(-age) }
		require.NoError(t, st.Put(ctx, key, bytes.NewReader([]byte("x")), 1, "image/png"))
	}
	put("products/p1/referenced.png", 48*time.Hour)
	put("products/p1/orphan-old.png", 48*time.Hour)
	put("products/p1/orphan-new.png", 10*time.Minute)
	put("exports/otro.xlsx", 48*time.Hour)
	require.NoError(t, db.Repos().Images.Create(ctx, &entity.ProductImage{ID: "i1", ProductID: "p1", Path: "products/p1/referenced.png"}))

	s := NewOrphanSweeper(db.Repos().Images, st, time.Hour, zerolog.Nop())
	s.now = func() time.Time { return now }

	res, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Scanned: 3, Removed: 1}, res)
	assert.Equal(t, []string{"products/p1/orphan-old.png"}, st.Removed)
	assert.Contains(t, st.Objects, "products/p1/referenced.png")
	assert.Contains(t, st.Objects, "products/p1/orphan-new.png", "dentro del periodo de gracia")
	assert.Contains(t, st.Objects, "exports/otro.xlsx", "fuera del prefijo de imágenes")
}

func TestSweep_FallosNoDetienenLaPasada(t *testing.T) {
	ctx := context.Background()
	st := memdb.NewStorage()
	st.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	require.NoError(t, st.Put(ctx, "products/p/a.png", bytes.NewReader(nil), 0, "image/png"))
	require.NoError(t, st.Put(ctx, "products/p/b.png", bytes.NewReader(nil), 0, "image/png"))
	st.RemoveErr = errors.New("403")

	s := NewOrphanSweeper(memdb.New().Repos().Images, st, time.Hour, zerolog.Nop())
	res, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, 0, res.Removed)
}
