package scheduler

import "context"

// Job é um agendamento que pode ser disparado e consultado pela API
type Job interface {
	Name() string
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

var _ Job = (*InboxImportSyncService)(nil)
