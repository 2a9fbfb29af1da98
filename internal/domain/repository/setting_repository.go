package repository

import "context"

// SettingRepository define el puerto de persistencia para la tabla clave/valor settings.
type SettingRepository interface {
	// GetAll devuelve solo las claves presentes; una clave ausente está "sin definir".
	GetAll(ctx context.Context) (map[string]*string, error)
	// Upsert inserta o sobrescribe una clave.
	Upsert(ctx context.Context, key string, value *string) error
}
