package models

import (
	"time"
)

// Order is a synchronizable POS order row. The primary key is assigned by
// the client device, never by the server, so pushes are idempotent per id.
type Order struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	LocationId  string    `gorm:"index;size:36" json:"location_id"`
	CustomerId  *string   `gorm:"size:36" json:"customer_id"`
	OrderNo     string    `gorm:"size:50" json:"order_no"`
	OrderTypeId string    `gorm:"size:36" json:"order_type_id"`
	OrderDate   time.Time `gorm:"type:date" json:"order_date"`
	OrderTime   time.Time `gorm:"type:datetime" json:"order_time"`
	IpAddress   string    `gorm:"size:45" json:"ip_address"`
	UserAgent   string    `gorm:"size:512" json:"user_agent"`
	// updated_at delimits the pull window; it carries the client-supplied
	// value when one is present, so gorm's automatic touch is disabled.
	UpdatedAt time.Time `gorm:"type:datetime(3);index;autoUpdateTime:false" json:"updated_at"`
}

func (o Order) GetId() string {
	return o.ID
}

// Fillable lists the update columns for update-by-id. Nil customer_id is
// included so an update can clear the field.
func (o Order) Fillable() map[string]interface{} {
	return map[string]interface{}{
		"location_id":   o.LocationId,
		"customer_id":   o.CustomerId,
		"order_no":      o.OrderNo,
		"order_type_id": o.OrderTypeId,
		"order_date":    o.OrderDate,
		"order_time":    o.OrderTime,
		"ip_address":    o.IpAddress,
		"user_agent":    o.UserAgent,
		"updated_at":    o.UpdatedAt,
	}
}
