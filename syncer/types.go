package syncer

import (
	"encoding/json"

	"github.com/mmdatafocus/pos_sync_backend/models"
	"github.com/shopspring/decimal"
)

// ChangeSet is one entity type's local mutations since the client's last
// successful push. Created and updated records stay raw until the sanitizer
// has coerced them; deleted carries ids only.
type ChangeSet struct {
	Created []json.RawMessage `json:"created"`
	Updated []json.RawMessage `json:"updated"`
	Deleted []string          `json:"deleted"`
}

// PushRequest is the POST /sync body: entity name -> change-set.
type PushRequest map[string]ChangeSet

// PullBucket mirrors the change-set shape on the pull side. Server-side
// changes are always reported through created (upsert semantics on the
// client); deletions are destructive and cannot be propagated, so updated
// and deleted stay empty by construction.
type PullBucket struct {
	Created []any    `json:"created"`
	Updated []any    `json:"updated"`
	Deleted []string `json:"deleted"`
}

// PullResponse is the GET /sync payload. Timestamp is the server time at
// completion; the client persists it and supplies it as last_pulled_at on
// its next pull.
type PullResponse struct {
	Changes   map[string]PullBucket `json:"changes"`
	Timestamp int64                 `json:"timestamp"`
}

// OrderRow is the pull-side wire form of an order. All timestamps are epoch
// milliseconds: loss-free in JSON and directly re-pushable by the client.
type OrderRow struct {
	Id          string  `json:"id"`
	LocationId  string  `json:"location_id"`
	CustomerId  *string `json:"customer_id"`
	OrderNo     string  `json:"order_no"`
	OrderTypeId string  `json:"order_type_id"`
	OrderDate   int64   `json:"order_date"`
	OrderTime   int64   `json:"order_time"`
	IpAddress   string  `json:"ip_address"`
	UserAgent   string  `json:"user_agent"`
	UpdatedAt   int64   `json:"updated_at"`
}

type ProductRow struct {
	Id            string          `json:"id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	UpdatedAt     int64           `json:"updated_at"`
}

func orderRowFromModel(o models.Order) OrderRow {
	return OrderRow{
		Id:          o.ID,
		LocationId:  o.LocationId,
		CustomerId:  o.CustomerId,
		OrderNo:     o.OrderNo,
		OrderTypeId: o.OrderTypeId,
		OrderDate:   o.OrderDate.UnixMilli(),
		OrderTime:   o.OrderTime.UnixMilli(),
		IpAddress:   o.IpAddress,
		UserAgent:   o.UserAgent,
		UpdatedAt:   o.UpdatedAt.UnixMilli(),
	}
}

func productRowFromModel(p models.Product) ProductRow {
	active := p.IsActive != nil && *p.IsActive
	return ProductRow{
		Id:            p.ID,
		ProductCode:   p.ProductCode,
		ProductName:   p.ProductName,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		IsActive:      active,
		UpdatedAt:     p.UpdatedAt.UnixMilli(),
	}
}
