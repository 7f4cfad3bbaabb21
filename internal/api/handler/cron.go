package handler

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/academy-dashboard-api/internal/scheduler"
	"github.com/vfg2006/academy-dashboard-api/pkg/apiErrors"
)

// CronJobTypeAll dispara todos os agendamentos registrados
const CronJobTypeAll = "all"

// CronJobs indexa os agendamentos pelo nome usado na rota
type CronJobs map[string]scheduler.Job

func NewCronJobs(jobs ...scheduler.Job) CronJobs {
	out := make(CronJobs, len(jobs))
	for _, job := range jobs {
		out[job.Name()] = job
	}
	return out
}

func (c CronJobs) names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunCronJob executa manualmente um agendamento
func RunCronJob(jobs CronJobs) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		started := make(map[string]bool)
		if cronType == CronJobTypeAll {
			for name, job := range jobs {
				started[name] = job.TriggerManualSync(r.Context())
			}
		} else {
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido", map[string]any{
					"accepted": append(jobs.names(), CronJobTypeAll),
				})
				return
			}
			started[cronType] = job.TriggerManualSync(r.Context())
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job solicitada",
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status dos agendamentos
func GetCronStatus(jobs CronJobs) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(jobs))
		for name, job := range jobs {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
