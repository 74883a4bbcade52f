package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveLineRequest una línea recibida contra la orden.
type ReceiveLineRequest struct {
	ProductCode      string          `json:"product_code"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
}

// ReceiveRequest body para POST /api/movements/receipts.
// document_ref vacío genera el correlativo NI-NNN.
type ReceiveRequest struct {
	OrderID     string               `json:"order_id"`
	DocumentRef string               `json:"document_ref,omitempty"`
	Date        time.Time            `json:"date,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	Lines       []ReceiveLineRequest `json:"lines"`
}

// MovementLineRequest producto y cantidad para salidas y traslados.
type MovementLineRequest struct {
	ProductCode string          `json:"product_code"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// IssueRequest body para POST /api/movements/issues.
type IssueRequest struct {
	Project     string                `json:"project"`
	DocumentRef string                `json:"document_ref,omitempty"`
	Date        time.Time             `json:"date,omitempty"`
	Notes       string                `json:"notes,omitempty"`
	Lines       []MovementLineRequest `json:"lines"`
}

// TransferRequest body para POST /api/movements/transfers.
type TransferRequest struct {
	OriginProject      string                `json:"origin_project"`
	DestinationProject string                `json:"destination_project"`
	DocumentRef        string                `json:"document_ref,omitempty"`
	Date               time.Time             `json:"date,omitempty"`
	Notes              string                `json:"notes,omitempty"`
	Lines              []MovementLineRequest `json:"lines"`
}

// DirectReceiptLineRequest línea de ingreso directo (precio obligatorio).
type DirectReceiptLineRequest struct {
	ProductCode string          `json:"product_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// DirectReceiptRequest body para POST /api/movements/direct-receipts (vía de
// bajo valor, sin orden formal).
type DirectReceiptRequest struct {
	CompanyID          string                     `json:"company_id"`
	SupplierID         string                     `json:"supplier_id"`
	Project            string                     `json:"project"`
	DocumentRef        string                     `json:"document_ref,omitempty"`
	Date               time.Time                  `json:"date,omitempty"`
	Notes              string                     `json:"notes,omitempty"`
	HasApprovedRequest bool                       `json:"has_approved_request"`
	Lines              []DirectReceiptLineRequest `json:"lines"`
}

// MovementDTO un asiento del kardex en respuestas.
type MovementDTO struct {
	ID          string           `json:"id"`
	ProductCode string           `json:"product_code"`
	Project     string           `json:"project"`
	Kind        string           `json:"kind"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	DocumentRef string           `json:"document_ref"`
	Date        time.Time        `json:"date"`
}

// MovementBatchResponse respuesta de salidas, traslados e ingresos directos.
type MovementBatchResponse struct {
	DocumentRef string        `json:"document_ref"`
	Movements   []MovementDTO `json:"movements"`
}

// ReceiveResponse respuesta de una recepción contra orden.
type ReceiveResponse struct {
	DocumentRef string        `json:"document_ref"`
	NewState    string        `json:"new_state"`
	Movements   []MovementDTO `json:"movements"`
}

// KardexRowDTO un movimiento con su saldo corrido.
type KardexRowDTO struct {
	Movement MovementDTO     `json:"movement"`
	Balance  decimal.Decimal `json:"balance"`
}

// StockResponse stock actual de un producto en un proyecto.
type StockResponse struct {
	ProductCode string          `json:"product_code"`
	Project     string          `json:"project"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// AverageCostResponse costo promedio ponderado de un producto en un proyecto.
type AverageCostResponse struct {
	ProductCode string          `json:"product_code"`
	Project     string          `json:"project"`
	AverageCost decimal.Decimal `json:"average_cost"`
}
