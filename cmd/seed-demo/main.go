// seed-demo loads a small demo catalog and a few orders through the same
// sanitize+apply path the sync endpoint uses, so seeded rows are
// indistinguishable from device-pushed ones.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mmdatafocus/pos_sync_backend/config"
	"github.com/mmdatafocus/pos_sync_backend/models"
	"github.com/mmdatafocus/pos_sync_backend/syncer"
)

func main() {
	ctx := context.Background()

	db := config.ConnectDatabaseWithRetry()
	models.MigrateTable(db)

	service := syncer.NewService(db, config.GetLogger())

	now := time.Now().UnixMilli()
	changes := syncer.PushRequest{
		"orders": {
			Created: []json.RawMessage{
				rawRecord(map[string]any{
					"id":            "demo-o1",
					"location_id":   "demo-loc",
					"order_no":      "1001",
					"order_type_id": "dine-in",
					"order_date":    now,
					"order_time":    "12:30:00",
					"ip_address":    "127.0.0.1",
					"user_agent":    "seed-demo",
					"updated_at":    now,
				}),
				rawRecord(map[string]any{
					"id":            "demo-o2",
					"location_id":   "demo-loc",
					"customer_id":   "demo-c1",
					"order_no":      "1002",
					"order_type_id": "takeaway",
					"order_date":    now,
					"order_time":    "18:45:10",
					"ip_address":    "127.0.0.1",
					"user_agent":    "seed-demo",
					"updated_at":    now,
				}),
			},
		},
		"products": {
			Created: []json.RawMessage{
				rawRecord(map[string]any{
					"id":             "demo-p1",
					"product_code":   "COF-001",
					"product_name":   "House Coffee",
					"description":    "Medium roast, 12oz",
					"price":          "3.50",
					"stock_quantity": 120,
					"is_active":      true,
					"updated_at":     now,
				}),
				rawRecord(map[string]any{
					"id":             "demo-p2",
					"product_code":   "TEA-004",
					"product_name":   "Jasmine Tea",
					"price":          2.25,
					"stock_quantity": "80",
					"is_active":      "true",
					"updated_at":     now,
				}),
			},
		},
	}

	if err := service.Push(ctx, changes, "0"); err != nil {
		fmt.Fprintf(os.Stderr, "seed push failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("seeded demo orders and products")
}

func rawRecord(fields map[string]any) json.RawMessage {
	b, _ := json.Marshal(fields)
	return b
}
