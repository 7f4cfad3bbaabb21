package domain

import (
	"time"
)

type ImportTrigger string

const (
	ImportTriggerManual    ImportTrigger = "manual"
	ImportTriggerScheduled ImportTrigger = "scheduled"
)

type ImportStatus string

const (
	ImportStatusSuccess ImportStatus = "success"
	ImportStatusFailure ImportStatus = "failure"
)

// ImportHistory registra cada importação de planilha
type ImportHistory struct {
	ID         string        `json:"id"`
	Modality   Modality      `json:"modality"`
	Month      string        `json:"month"`
	Year       int           `json:"year"`
	SourceFile string        `json:"source_file"`
	Checksum   string        `json:"checksum"`
	Trigger    ImportTrigger `json:"trigger"`
	Status     ImportStatus  `json:"status"`
	Deleted    int64         `json:"deleted"`
	Imported   int           `json:"imported"`
	Skipped    int           `json:"skipped"`
	Error      *string       `json:"error,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

type ImportRequest struct {
	Period     Period
	SourceFile string
	Content    []byte
	Trigger    ImportTrigger
}

type ImportResult struct {
	ID       string `json:"id"`
	Period   Period `json:"period"`
	Deleted  int64  `json:"deleted"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}
