package models

import "time"

// SnapshotVersion is the schema version written by Export and the newest accepted by Import.
const SnapshotVersion = 1

// Snapshot is the full-ledger export document.
type Snapshot struct {
	Version    int          `json:"version"`
	ExportedAt time.Time    `json:"exported_at"`
	Data       SnapshotData `json:"data"`
}

type SnapshotData struct {
	Tenants        []Tenant              `json:"tenants"`
	PeriodReadings []PeriodReading       `json:"period_readings"`
	TenantReadings []TenantPeriodReading `json:"tenant_readings"`
}
