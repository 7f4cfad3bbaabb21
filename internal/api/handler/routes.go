package handler

import (
	"net/http"

	"github.com/justinas/alice"
	"github.com/vfg2006/academy-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/academy-dashboard-api/internal/config"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/contracting"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/academy-dashboard-api/pkg/middleware"
)

type middlewares = []alice.Constructor

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/password",
			Method:      http.MethodPut,
			Handler:     ChangePassword(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/modalities",
			Method:      http.MethodPut,
			Handler:     SetUserModalities(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}

func Catalog(service contracting.ContractService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/modalities",
			Method:      http.MethodGet,
			Handler:     ListModalities(),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/months",
			Method:      http.MethodGet,
			Handler:     ListMonths(),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/modalities/:modality/plans",
			Method:      http.MethodGet,
			Handler:     ListPlans(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/modalities/:modality/instructors",
			Method:      http.MethodGet,
			Handler:     ListInstructors(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Contracts(service contracting.ContractService, reporter reporting.Reporter, cfg config.Import) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/modalities/:modality/contracts",
			Method:      http.MethodGet,
			Handler:     ListContracts(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/modalities/:modality/contracts",
			Method:      http.MethodPost,
			Handler:     RegisterContract(service),
			Middlewares: middlewares{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/modalities/:modality/contracts/:client_id",
			Method:      http.MethodPut,
			Handler:     UpdateContract(service),
			Middlewares: middlewares{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/modalities/:modality/contracts/:client_id",
			Method:      http.MethodDelete,
			Handler:     DeleteContract(service),
			Middlewares: middlewares{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/modalities/:modality/periods",
			Method:      http.MethodDelete,
			Handler:     DeletePeriod(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/modalities/:modality/imports",
			Method:      http.MethodPost,
			Handler:     ImportContracts(service, cfg),
			Middlewares: middlewares{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/modalities/:modality/report",
			Method:      http.MethodGet,
			Handler:     ExportReport(reporter),
			Middlewares: middlewares{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/imports",
			Method:      http.MethodGet,
			Handler:     ListImports(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}

func Dashboard(service dashboard.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: middlewares{middleware.AdminOrManager()},
		},
	}
}

func Cron(jobs CronJobs) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(jobs),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(jobs),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}
