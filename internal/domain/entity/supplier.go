package entity

import "time"

// Supplier representa un proveedor del catálogo de referencia (solo lectura).
type Supplier struct {
	ID        string
	TaxID     string // RUC
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Company representa una empresa del grupo que emite órdenes (solo lectura).
type Company struct {
	ID        string
	TaxID     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
