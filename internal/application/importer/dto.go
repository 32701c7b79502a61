package importer

import (
	propertyapp "github.com/zencrm/backend/internal/application/property"
)

// Relay actions accepted by the import relay
const (
	ActionTest   = "test"
	ActionImport = "import"
)

// RelayRequest selects the import relay operation
type RelayRequest struct {
	Action string `json:"action" binding:"required"`
}

// TestResponse reports a connectivity probe against the external feed
type TestResponse struct {
	OK            bool   `json:"ok"`
	Status        int    `json:"status"`
	ForwardStatus int    `json:"forward_status"`
	ForwardOK     bool   `json:"forward_ok"`
	Message       string `json:"message"`
}

// ImportResponse reports one import run. ImportedCount below TotalFetched
// signals soft partial success; FailedIDs carries the feed identifiers of
// items that could not be stored. Properties returns the listings created
// by this run in storage order.
type ImportResponse struct {
	OK            bool                          `json:"ok"`
	ImportedCount int                           `json:"imported_count"`
	TotalFetched  int                           `json:"total_fetched"`
	SkippedCount  int                           `json:"skipped_count"`
	FailedIDs     []string                      `json:"failed_ids"`
	Properties    []propertyapp.ListingResponse `json:"properties"`
}
