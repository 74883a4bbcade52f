package dto

import "github.com/shopspring/decimal"

// CreateOrderLineRequest una línea producto/cantidad/precio.
type CreateOrderLineRequest struct {
	ProductCode string          `json:"product_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Kind       string                   `json:"kind"` // OC u OS
	SupplierID string                   `json:"supplier_id"`
	CompanyID  string                   `json:"company_id"`
	Project    string                   `json:"project"`
	Currency   string                   `json:"currency"`
	Lines      []CreateOrderLineRequest `json:"lines"`
}

// OrderResponse respuesta de creación/consulta de orden.
type OrderResponse struct {
	ID          string                   `json:"id"`
	Correlative string                   `json:"correlative"`
	Kind        string                   `json:"kind"`
	SupplierID  string                   `json:"supplier_id"`
	Project     string                   `json:"project"`
	Currency    string                   `json:"currency"`
	State       string                   `json:"state"`
	Total       decimal.Decimal          `json:"total"`
	Lines       []CreateOrderLineRequest `json:"lines"`
}

// PendingResponse pendiente por producto de una orden.
type PendingResponse struct {
	OrderID string                     `json:"order_id"`
	Pending map[string]decimal.Decimal `json:"pending"`
}
