package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/vfg2006/academy-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/academy-dashboard-api/internal/config"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/academy-dashboard-api/pkg/log"
)

// Cria o primeiro administrador. A senha vem de ADMIN_PASSWORD para não ficar no histórico do shell.
func main() {
	email := flag.String("email", "", "email do administrador")
	name := flag.String("name", "Administrador", "nome do administrador")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel)

	password := os.Getenv("ADMIN_PASSWORD")
	if *email == "" || password == "" {
		log.L.Fatal("informe -email e a variável ADMIN_PASSWORD")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := postgres.RunMigrations(conn); err != nil {
		log.L.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	service := authenticating.NewService(repository.NewUserRepository(conn), cfg)
	user, err := service.CreateUser(ctx, &domain.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: password,
		RoleID:       domain.RoleAdmin,
	})
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao criar administrador")
	}

	log.L.Infof("Administrador %s criado com ID %d", user.Email, user.ID)
}
