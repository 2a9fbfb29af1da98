package dto

// SettingsRequest pares clave/valor a guardar. Las claves no enviadas no se modifican;
// un valor null deja la clave sin definir.
type SettingsRequest map[string]*string

// SettingsResponse configuración actual; las claves nunca guardadas no aparecen.
type SettingsResponse map[string]*string
