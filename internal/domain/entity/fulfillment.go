package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FulfillmentRecord registra una atención contra una orden (entrega de bienes
// o conformidad de servicio), posiblemente parcial. Una orden acumula varios
// registros a lo largo del tiempo; ninguno se muta una vez creado.
type FulfillmentRecord struct {
	ID          string
	OrderID     string
	DocumentRef string // guía de remisión / nota de ingreso asociada
	Date        time.Time
	Lines       []FulfillmentLine
	CreatedAt   time.Time
}

// FulfillmentLine cantidad recibida de un producto en una atención.
type FulfillmentLine struct {
	ProductCode      string
	ReceivedQuantity decimal.Decimal
}
