package syncer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mmdatafocus/pos_sync_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeOrderCombinesClockWithOrderDate(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	orderDate := int64(1700000000000) // 2023-11-14 in UTC

	raw, _ := json.Marshal(map[string]any{
		"id":            "o1",
		"location_id":   "l1",
		"order_no":      "1001",
		"order_type_id": "t1",
		"order_date":    orderDate,
		"order_time":    "18:34:16",
		"ip_address":    "1.2.3.4",
		"user_agent":    "ua",
		"updated_at":    orderDate,
	})

	rec := sanitizeOrder(raw, now)
	order, ok := rec.(models.Order)
	require.True(t, ok)

	assert.Equal(t, "o1", order.ID)
	assert.Nil(t, order.CustomerId)
	assert.True(t, order.OrderDate.Equal(time.UnixMilli(orderDate)))
	assert.True(t, order.UpdatedAt.Equal(time.UnixMilli(orderDate)))

	day := time.UnixMilli(orderDate)
	assert.Equal(t, day.Year(), order.OrderTime.Year())
	assert.Equal(t, day.Month(), order.OrderTime.Month())
	assert.Equal(t, day.Day(), order.OrderTime.Day())
	assert.Equal(t, 18, order.OrderTime.Hour())
	assert.Equal(t, 34, order.OrderTime.Minute())
	assert.Equal(t, 16, order.OrderTime.Second())
}

func TestSanitizeOrderEpochOrderTimeUsedDirectly(t *testing.T) {
	now := time.Now()
	raw, _ := json.Marshal(map[string]any{
		"id":         "o2",
		"order_time": 1700000056000,
	})

	order := sanitizeOrder(raw, now).(models.Order)
	assert.True(t, order.OrderTime.Equal(time.UnixMilli(1700000056000)))
}

func TestSanitizeOrderDefaultsToNow(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	order := sanitizeOrder([]byte(`{"id": "o3"}`), now).(models.Order)

	assert.Equal(t, "o3", order.ID)
	assert.True(t, order.OrderDate.Equal(now))
	assert.True(t, order.OrderTime.Equal(now))
	assert.True(t, order.UpdatedAt.Equal(now))
}

func TestSanitizeOrderStripsSyncMarkers(t *testing.T) {
	raw := []byte(`{"id": "o4", "_status": "created", "_changed": "order_no", "order_no": "7"}`)
	order := sanitizeOrder(raw, time.Now()).(models.Order)

	out, err := json.Marshal(order)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.NotContains(t, fields, "_status")
	assert.NotContains(t, fields, "_changed")
	assert.Equal(t, "7", order.OrderNo)
}

func TestSanitizeOrderMalformedInput(t *testing.T) {
	now := time.Now()

	// Not an object at all: total sanitization still yields a record.
	order := sanitizeOrder([]byte(`"garbage"`), now).(models.Order)
	assert.Equal(t, "", order.ID)

	// Id preserved unvalidated, even when empty or odd.
	order = sanitizeOrder([]byte(`{"id": ""}`), now).(models.Order)
	assert.Equal(t, "", order.ID)
	order = sanitizeOrder([]byte(`{"id": 99}`), now).(models.Order)
	assert.Equal(t, "99", order.ID)
}

func TestSanitizeProductCoercions(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)

	raw, _ := json.Marshal(map[string]any{
		"id":             "p1",
		"product_code":   "COF-001",
		"product_name":   "House Coffee",
		"description":    "  ",
		"price":          "3.50",
		"stock_quantity": "120",
		"is_active":      1,
	})

	product := sanitizeProduct(raw, now).(models.Product)
	assert.Equal(t, "p1", product.ID)
	assert.Nil(t, product.Description, "whitespace-only description coerces to null")
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(3.5)))
	assert.Equal(t, int64(120), product.StockQuantity)
	require.NotNil(t, product.IsActive)
	assert.True(t, *product.IsActive)
	assert.True(t, product.UpdatedAt.Equal(now))
}

func TestSanitizeProductDefaults(t *testing.T) {
	now := time.Now()
	product := sanitizeProduct([]byte(`{"id": "p2", "price": "free", "stock_quantity": "lots", "is_active": "yes"}`), now).(models.Product)

	assert.True(t, product.Price.IsZero())
	assert.Equal(t, int64(0), product.StockQuantity)
	require.NotNil(t, product.IsActive)
	assert.False(t, *product.IsActive)
}

func TestSanitizeProductClampsNegativeStock(t *testing.T) {
	product := sanitizeProduct([]byte(`{"id": "p3", "stock_quantity": -5}`), time.Now()).(models.Product)
	assert.Equal(t, int64(0), product.StockQuantity)
}

func TestSanitizeProductFractionalStockTruncates(t *testing.T) {
	product := sanitizeProduct([]byte(`{"id": "p4", "stock_quantity": 7.9}`), time.Now()).(models.Product)
	assert.Equal(t, int64(7), product.StockQuantity)
}
