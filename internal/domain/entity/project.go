package entity

import "time"

// Project representa un proyecto/obra con almacén propio. El stock se lleva
// por (producto, proyecto); los traslados mueven material entre proyectos.
type Project struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
