package entity

import "time"

// Product representa un producto del catálogo de referencia. Para el motor de
// inventario es dato de solo lectura; su mantenimiento es un colaborador externo.
type Product struct {
	Code        string // código único en el catálogo
	Name        string
	UnitMeasure string // UND, KG, M3, etc.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
