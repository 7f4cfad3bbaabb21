package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/academy-dashboard-api/internal/config"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/contracting"
	"github.com/vfg2006/academy-dashboard-api/pkg/log"
)

const InboxImportJobName = "inbox-import"

// FailedDirName é a subpasta da entrada que recebe as planilhas rejeitadas
const FailedDirName = "failed"

// Nome esperado: {modalidade}_{mês}_{ano}.xlsx
var inboxFilePattern = regexp.MustCompile(`(?i)^([a-z]+)_([a-z]{3})_(\d{4})\.xlsx$`)

// Importer é a parte do serviço de contratos usada pelo agendador
type Importer interface {
	ImportSpreadsheet(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error)
}

// InboxImportSyncConfig representa a configuração do agendador de importação
type InboxImportSyncConfig struct {
	CronSchedule string
	Dir          string
	SyncEnabled  bool
	MinFileAge   time.Duration
}

// SyncReport resume uma execução da sincronização
type SyncReport struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
	Failed   []string `json:"failed"`
	Ignored  []string `json:"ignored"`
}

// InboxImportSyncService importa as planilhas deixadas na pasta de entrada
type InboxImportSyncService struct {
	scheduler           *gocron.Scheduler
	config              InboxImportSyncConfig
	importer            Importer
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *SyncReport
}

func NewInboxImportSyncService(importer Importer, appConfig *config.Config) *InboxImportSyncService {
	syncConfig := InboxImportSyncConfig{
		CronSchedule: appConfig.InboxImportSync.CronSchedule,
		Dir:          appConfig.InboxImportSync.Dir,
		SyncEnabled:  appConfig.InboxImportSync.Enabled,
		MinFileAge:   appConfig.InboxImportSync.MinFileAge,
	}

	log.L.WithFields(log.Fields{
		"job":           InboxImportJobName,
		"cron_schedule": syncConfig.CronSchedule,
		"dir":           syncConfig.Dir,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de importação carregada")

	return &InboxImportSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		importer:  importer,
		now:       time.Now,
	}
}

func (s *InboxImportSyncService) Name() string {
	return InboxImportJobName
}

// Start agenda a sincronização e para o agendador quando o contexto terminar
func (s *InboxImportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.WithField("job", InboxImportJobName).Info("Importação agendada desabilitada por configuração")
		return nil
	}

	if s.config.Dir == "" {
		return errors.New("diretório de entrada não configurado")
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.sync(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar importação da pasta de entrada: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.WithField("job", InboxImportJobName).Info("Parando agendador de importação")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara uma sincronização fora do agendamento
func (s *InboxImportSyncService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.ForContext(ctx).WithField("job", InboxImportJobName).Info("Importação já em andamento, ignorando solicitação manual")
		return false
	}

	go s.sync(context.WithoutCancel(ctx))
	return true
}

// RunOnce executa a sincronização de forma síncrona. Devolve nil se outra execução estiver em andamento.
func (s *InboxImportSyncService) RunOnce(ctx context.Context) *SyncReport {
	return s.sync(ctx)
}

func (s *InboxImportSyncService) sync(ctx context.Context) *SyncReport {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.WithField("job", InboxImportJobName).Info("Importação já em andamento, ignorando")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	report := s.scan(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	s.lastReport = report
	s.syncMutex.Unlock()

	return report
}

func (s *InboxImportSyncService) scan(ctx context.Context) *SyncReport {
	logger := log.ForContext(ctx).WithField("job", InboxImportJobName)
	report := &SyncReport{}

	entries, err := os.ReadDir(s.config.Dir)
	if err != nil {
		logger.WithError(err).Error("scheduler: erro ao ler pasta de entrada")
		return report
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		period, ok := ParseInboxFileName(name)
		if !ok {
			report.Ignored = append(report.Ignored, name)
			continue
		}

		path := filepath.Join(s.config.Dir, name)
		info, err := os.Stat(path)
		if err != nil || s.now().Sub(info.ModTime()) < s.config.MinFileAge {
			// Arquivo ainda em cópia, fica para a próxima execução
			report.Ignored = append(report.Ignored, name)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.WithError(err).Errorf("scheduler: erro ao ler %s", name)
			report.Failed = append(report.Failed, name)
			continue
		}

		result, err := s.importer.ImportSpreadsheet(ctx, domain.ImportRequest{
			Period:     period,
			SourceFile: name,
			Content:    content,
			Trigger:    domain.ImportTriggerScheduled,
		})
		switch {
		case errors.Is(err, contracting.ErrAlreadyImported):
			report.Skipped = append(report.Skipped, name)
		case contracting.IsValidationError(err):
			logger.WithError(err).Errorf("scheduler: planilha %s rejeitada", name)
			report.Failed = append(report.Failed, name)
			s.moveToFailed(ctx, name)
		case err != nil:
			logger.WithError(err).Errorf("scheduler: falha ao importar %s", name)
			report.Failed = append(report.Failed, name)
		default:
			logger.WithField("import_id", result.ID).Infof("scheduler: %s importado com %d contratos", name, result.Imported)
			report.Imported = append(report.Imported, name)
		}
	}

	logger.Infof("scheduler: importação concluída, %d importados, %d já existentes, %d com falha",
		len(report.Imported), len(report.Skipped), len(report.Failed))

	return report
}

// moveToFailed tira da entrada uma planilha que nunca vai importar, para não reprocessá-la a cada execução
func (s *InboxImportSyncService) moveToFailed(ctx context.Context, name string) {
	logger := log.ForContext(ctx).WithField("job", InboxImportJobName)

	failedDir := filepath.Join(s.config.Dir, FailedDirName)
	if err := os.MkdirAll(failedDir, 0o755); err != nil {
		logger.WithError(err).Error("scheduler: erro ao criar pasta de rejeitados")
		return
	}

	if err := os.Rename(filepath.Join(s.config.Dir, name), filepath.Join(failedDir, name)); err != nil {
		logger.WithError(err).Errorf("scheduler: erro ao mover %s para %s", name, FailedDirName)
	}
}

// ParseInboxFileName extrai o período do nome do arquivo
func ParseInboxFileName(name string) (domain.Period, bool) {
	match := inboxFilePattern.FindStringSubmatch(name)
	if match == nil {
		return domain.Period{}, false
	}

	year, err := strconv.Atoi(match[3])
	if err != nil {
		return domain.Period{}, false
	}

	period, err := contracting.NormalizePeriod(domain.Period{
		Modality: domain.Modality(strings.ToLower(match[1])),
		Month:    strings.ToLower(match[2]),
		Year:     year,
	})
	if err != nil {
		return domain.Period{}, false
	}

	return period, true
}

// GetStatus retorna o status atual da sincronização
func (s *InboxImportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"dir":                    s.config.Dir,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_report":            s.lastReport,
	}
}
