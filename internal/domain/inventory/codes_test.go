package inventory_test

import (
	"encoding/json"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andilac/lacteos-api/internal/domain/inventory"
)

func TestLotCode_Patron(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	code := inventory.LotCode(now)

	re := regexp.MustCompile(`^LOT-\d{4}-\d{6}$`)
	assert.Regexp(t, re, code)
	assert.Contains(t, code, "LOT-2026-")
}

func TestPurchaseOrderNumber_SecuenciaAnual(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "OC-2026-0001", inventory.PurchaseOrderNumber(now, 1))
	assert.Equal(t, "OC-2026-0042", inventory.PurchaseOrderNumber(now, 42))
	assert.Regexp(t, regexp.MustCompile(`^OC-\d{4}-\d{4}$`), inventory.PurchaseOrderNumber(now, 9999))
}

func TestProductionOrderNumber_Patron(t *testing.T) {
	now := time.Now()
	number := inventory.ProductionOrderNumber(now)
	assert.Regexp(t, regexp.MustCompile(fmt.Sprintf(`^OP-%d-\d{6}$`, now.Year())), number)
}

func TestBatchQRPayload(t *testing.T) {
	entry := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)

	payload := inventory.BatchQRPayload("LOT-2026-000123", "prod-1", entry, &expiry)

	var p inventory.QRPayload
	require.NoError(t, json.Unmarshal([]byte(payload), &p))
	assert.Equal(t, "LOT-2026-000123", p.Code)
	assert.Equal(t, "prod-1", p.ProductID)
	assert.Equal(t, "2026-02-01", p.EntryDate)
	assert.Equal(t, "2026-02-21", p.ExpiryDate)

	// Sin vencimiento el campo se omite
	sinVencimiento := inventory.BatchQRPayload("LOT-2026-000124", "prod-2", entry, nil)
	assert.NotContains(t, sinVencimiento, "expiry_date")
}
