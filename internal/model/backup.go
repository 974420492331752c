package model

import "time"

// Backup file format versions. Each version adds a field; import applies
// only the fields its version carries.
const (
	BackupV1 = 1 // items only
	BackupV2 = 2 // + categories
	BackupV3 = 3 // + forgotten records
)

// Backup is the versioned export/import envelope. Item ids are stripped on
// import and reassigned by the store, so backups can move between devices
// without id collisions.
type Backup struct {
	Version          int               `json:"version"`
	Items            []Item            `json:"items"`
	Categories       []Category        `json:"categories,omitempty"`
	ForgottenRecords []ForgottenRecord `json:"forgottenRecords,omitempty"`
	BackupAt         time.Time         `json:"backupAt"`
}
