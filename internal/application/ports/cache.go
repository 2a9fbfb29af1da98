package ports

import "context"

// SettingsCache caché de lectura de la tabla settings.
// Get devuelve ok=false si no hay entrada (o expiró).
type SettingsCache interface {
	Get(ctx context.Context) (settings map[string]*string, ok bool, err error)
	Set(ctx context.Context, settings map[string]*string) error
	Invalidate(ctx context.Context) error
}
