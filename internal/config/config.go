package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Import          Import          `mapstructure:",squash"`
	InboxImportSync InboxImportSync `mapstructure:",squash"`
	Cors            Cors            `mapstructure:",squash"`
	SecretKey       string          `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN           string `mapstructure:"-"`
	Driver        string `mapstructure:"database_driver"`
	Password      string `mapstructure:"database_password"`
	URL           string `mapstructure:"database_url"`
	User          string `mapstructure:"database_user"`
	RunMigrations bool   `mapstructure:"database_run_migrations"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Import struct {
	UploadDir      string `mapstructure:"import_upload_dir"`
	MaxUploadMB    int64  `mapstructure:"import_max_upload_mb"`
	HistoryListMax uint64 `mapstructure:"import_history_list_max"`
}

type InboxImportSync struct {
	CronSchedule string        `mapstructure:"inbox_import_sync_cron"`
	Dir          string        `mapstructure:"inbox_import_sync_dir"`
	Enabled      bool          `mapstructure:"inbox_import_sync_enabled"`
	MinFileAge   time.Duration `mapstructure:"inbox_import_sync_min_file_age"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/academy?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_RUN_MIGRATIONS", true)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("IMPORT_UPLOAD_DIR", "./data/uploads") // Cópia das planilhas enviadas, por modalidade
	viper.SetDefault("IMPORT_MAX_UPLOAD_MB", 10)
	viper.SetDefault("IMPORT_HISTORY_LIST_MAX", 50)

	viper.SetDefault("INBOX_IMPORT_SYNC_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("INBOX_IMPORT_SYNC_DIR", "./data/inbox")
	viper.SetDefault("INBOX_IMPORT_SYNC_ENABLED", false)
	viper.SetDefault("INBOX_IMPORT_SYNC_MIN_FILE_AGE", "1m") // Evita ler arquivos ainda sendo copiados

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.Import.MaxUploadMB <= 0 {
		config.Import.MaxUploadMB = 10
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// MaxUploadBytes retorna o limite de upload de planilhas em bytes
func (c Import) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
