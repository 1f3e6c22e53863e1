package config

import (
	"os"
	"strings"
)

// ProductRawWrites routes product change-sets through parameterized raw SQL
// instead of the gorm model binding. Used on deployments where the products
// schema is managed by an external migration job and the running model
// binding may lag the deployed table.
//
// Set via env:
// - PRODUCT_RAW_WRITES=true
func ProductRawWrites() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PRODUCT_RAW_WRITES")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// SyncAuthRequired makes the /sync routes reject requests without a valid
// bearer token. Default off: on-prem device fleets authenticate at the
// network layer.
//
// Set via env:
// - SYNC_AUTH_REQUIRED=true
func SyncAuthRequired() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SYNC_AUTH_REQUIRED")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
