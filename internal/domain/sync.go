package domain

import "time"

// SyncLog records the outcome of one reconciliation run
type SyncLog struct {
	ID         int64     `json:"id,string"`
	Trigger    string    `gorm:"index;size:16" json:"trigger"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Errors     int       `json:"errors"`
	Status     string    `gorm:"index;size:16" json:"status"`
	Message    string    `json:"message"`
}

// TableName Specify table name
func (SyncLog) TableName() string {
	return "sync_log"
}
