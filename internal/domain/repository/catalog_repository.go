package repository

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// Puertos del catálogo de referencia (productos, proyectos, proveedores).
// Solo lectura para el motor: la existencia se valida antes de asentar.

// ProductRepository consulta el catálogo de productos.
type ProductRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
}

// ProjectRepository consulta el catálogo de proyectos/almacenes.
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Project, error)
}

// SupplierRepository consulta el catálogo de proveedores.
type SupplierRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
}

// CompanyRepository consulta el catálogo de empresas emisoras.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}

// DocumentSeriesRepository genera referencias documentales correlativas
// (NI-001, NS-002, NT-003, OC-004...) de forma atómica por serie: el
// incremento ocurre en una sola sentencia en la transacción en curso, por lo
// que dos creaciones concurrentes nunca reciben el mismo número.
type DocumentSeriesRepository interface {
	NextRef(ctx context.Context, prefix string) (string, error)
}
