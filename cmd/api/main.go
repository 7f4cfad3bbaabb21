package main

import (
	"context"

	"github.com/vfg2006/academy-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/spreadsheet"
	"github.com/vfg2006/academy-dashboard-api/internal/api"
	"github.com/vfg2006/academy-dashboard-api/internal/api/handler"
	"github.com/vfg2006/academy-dashboard-api/internal/config"
	"github.com/vfg2006/academy-dashboard-api/internal/scheduler"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/contracting"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/academy-dashboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	log.L.Infof("Nível de log configurado para: %s", cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.RunMigrations {
		if err := postgres.RunMigrations(pgConn); err != nil {
			log.L.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	contractRepo := repository.NewContractRepository(pgConn)
	importRepo := repository.NewImportHistoryRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	contractService := contracting.NewService(contractRepo, importRepo, spreadsheet.NewReader(), cfg)
	dashboardService := dashboard.NewService(contractRepo)
	reportService := reporting.NewService(contractService)

	inboxImportSync := scheduler.NewInboxImportSyncService(contractService, cfg)
	if err := inboxImportSync.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de importação de planilhas")
	}

	server := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Contracts:     contractService,
		Dashboard:     dashboardService,
		Reports:       reportService,
		CronJobs:      handler.NewCronJobs(inboxImportSync),
	})

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
