package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo configuración clave/valor.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// GetAll devuelve todas las claves guardadas (valor nil = sin definir).
func (r *SettingRepo) GetAll(ctx context.Context) (map[string]*string, error) {
	rows, err := r.q.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	out := make(map[string]*string)
	for rows.Next() {
		var (
			k string
			v *string
		)
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Upsert inserta o sobrescribe el valor de key.
func (r *SettingRepo) Upsert(ctx context.Context, key string, value *string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO settings (key, value, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`, key, value)
	if err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
