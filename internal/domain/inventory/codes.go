package inventory

import (
	"encoding/json"
	"fmt"
	"time"
)

// Generación de códigos de lote y números de orden.
//
//	Lotes:                LOT-YYYY-###### (sufijo de 6 dígitos del timestamp unix)
//	Órdenes de compra:    OC-YYYY-####    (secuencia anual, la provee el repositorio)
//	Órdenes de producción: OP-YYYY-###### (sufijo de 6 dígitos del timestamp unix)

// LotCode genera el código de un lote para la fecha dada.
func LotCode(t time.Time) string {
	return fmt.Sprintf("LOT-%d-%06d", t.Year(), t.Unix()%1_000_000)
}

// PurchaseOrderNumber formatea el número de orden de compra a partir de la
// secuencia anual (1-based) que entrega el repositorio.
func PurchaseOrderNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("OC-%d-%04d", t.Year(), seq)
}

// ProductionOrderNumber genera el número de una orden de producción.
func ProductionOrderNumber(t time.Time) string {
	return fmt.Sprintf("OP-%d-%06d", t.Year(), t.Unix()%1_000_000)
}

// QRPayload contenido codificado en el QR de la etiqueta de un lote.
type QRPayload struct {
	Code       string `json:"code"`
	ProductID  string `json:"product_id"`
	EntryDate  string `json:"entry_date"`            // YYYY-MM-DD
	ExpiryDate string `json:"expiry_date,omitempty"` // YYYY-MM-DD
}

// BatchQRPayload serializa el payload del QR de un lote.
func BatchQRPayload(code, productID string, entry time.Time, expiry *time.Time) string {
	p := QRPayload{
		Code:      code,
		ProductID: productID,
		EntryDate: entry.Format("2006-01-02"),
	}
	if expiry != nil {
		p.ExpiryDate = expiry.Format("2006-01-02")
	}
	data, _ := json.Marshal(p)
	return string(data)
}
