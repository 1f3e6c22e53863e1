package syncer

import (
	"encoding/json"
	"time"

	"github.com/mmdatafocus/pos_sync_backend/models"
	"github.com/mmdatafocus/pos_sync_backend/utils"
)

// Record is a canonical persistable row. Ids are client-assigned and pass
// through sanitization unchanged and unvalidated; malformed ids surface as
// primary-key errors in the applier, not here.
type Record interface {
	GetId() string
}

// The wire records omit the sync-protocol dirty markers (_status, _changed),
// so those never reach persistence.

type orderRecord struct {
	Id          stringValue `json:"id"`
	LocationId  stringValue `json:"location_id"`
	CustomerId  textValue   `json:"customer_id"`
	OrderNo     stringValue `json:"order_no"`
	OrderTypeId stringValue `json:"order_type_id"`
	OrderDate   timeValue   `json:"order_date"`
	OrderTime   timeValue   `json:"order_time"`
	IpAddress   stringValue `json:"ip_address"`
	UserAgent   stringValue `json:"user_agent"`
	UpdatedAt   timeValue   `json:"updated_at"`
}

type productRecord struct {
	Id            stringValue  `json:"id"`
	ProductCode   stringValue  `json:"product_code"`
	ProductName   stringValue  `json:"product_name"`
	Description   textValue    `json:"description"`
	Price         decimalValue `json:"price"`
	StockQuantity intValue     `json:"stock_quantity"`
	IsActive      boolValue    `json:"is_active"`
	UpdatedAt     timeValue    `json:"updated_at"`
}

// sanitizeOrder coerces a raw client order into its canonical row. Total:
// malformed input falls back to defaults instead of failing.
func sanitizeOrder(raw json.RawMessage, now time.Time) Record {
	var in orderRecord
	// Field-level decode errors leave the remaining fields populated; the
	// wire values themselves never fail.
	_ = json.Unmarshal(raw, &in)

	orderDate := in.OrderDate.resolve(now)
	orderTime := now
	if clock, ok := in.OrderTime.clock(); ok {
		orderTime = combineClock(orderDate, clock)
	} else if in.OrderTime.kind == timeEpochMillis {
		orderTime = time.UnixMilli(in.OrderTime.ms)
	}

	return models.Order{
		ID:          in.Id.String(),
		LocationId:  in.LocationId.String(),
		CustomerId:  in.CustomerId.Ptr(),
		OrderNo:     in.OrderNo.String(),
		OrderTypeId: in.OrderTypeId.String(),
		OrderDate:   orderDate,
		OrderTime:   orderTime,
		IpAddress:   in.IpAddress.String(),
		UserAgent:   in.UserAgent.String(),
		UpdatedAt:   in.UpdatedAt.resolve(now),
	}
}

func sanitizeProduct(raw json.RawMessage, now time.Time) Record {
	var in productRecord
	_ = json.Unmarshal(raw, &in)

	stock := in.StockQuantity.Int64()
	if stock < 0 {
		stock = 0
	}

	active := utils.NewFalse()
	if in.IsActive.Bool() {
		active = utils.NewTrue()
	}

	return models.Product{
		ID:            in.Id.String(),
		ProductCode:   in.ProductCode.String(),
		ProductName:   in.ProductName.String(),
		Description:   in.Description.Ptr(),
		Price:         in.Price.Decimal(),
		StockQuantity: stock,
		IsActive:      active,
		UpdatedAt:     in.UpdatedAt.resolve(now),
	}
}
