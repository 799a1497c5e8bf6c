package models

// Ledger events, logged with structured attributes by the service.
const (
	EventTenantAdded            = "tenant_added"
	EventTenantUpdated          = "tenant_updated"
	EventTenantToggled          = "tenant_active_toggled"
	EventTenantDeleted          = "tenant_deleted"
	EventPeriodReadingRecorded  = "period_reading_recorded"
	EventPeriodReadingCorrected = "period_reading_corrected"
	EventPeriodReadingDeleted   = "period_reading_deleted"
	EventTenantReadingRecorded  = "tenant_reading_recorded"
	EventTenantReadingDeleted   = "tenant_reading_deleted"
	EventPeriodReconciled       = "period_reconciled"
	EventDiscrepancyDetected    = "discrepancy_detected"
	EventLedgerImported         = "ledger_imported"
	EventLedgerCleared          = "ledger_cleared"
)
