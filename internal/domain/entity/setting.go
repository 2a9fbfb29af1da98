package entity

// Setting par clave/valor de configuración de la empresa. Value nil significa "sin definir".
type Setting struct {
	Key   string
	Value *string
}
