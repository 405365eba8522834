package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/martijn/lexdesk/internal/adapter/courtlookup"
	"github.com/martijn/lexdesk/internal/adapter/ratelimit"
	"github.com/martijn/lexdesk/internal/adapter/storage"
	"github.com/martijn/lexdesk/internal/api"
	"github.com/martijn/lexdesk/internal/core/service"
	"github.com/martijn/lexdesk/internal/infrastructure/sqldb"
	"github.com/martijn/lexdesk/internal/observability/logger"
	"github.com/martijn/lexdesk/pkg/civildate"
	"github.com/martijn/lexdesk/pkg/config"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lexdesk",
	Short: "Lexdesk - back office for a law practice",
	Long: `Lexdesk is the back office of a Brazilian law practice.

It provides:
- Clients, cases, hearings and tasks
- Documents with short-lived download links
- Billing entries, overdue tracking and revenue reports
- Message templates with WhatsApp links
- Public court records lookup
- REST API with per-user data and scoped integration clients`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		switch cmd.Name() {
		case "version", "help", "tribunals":
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger.Init(logger.Config{
			Env:         cfg.LogEnv,
			Level:       cfg.LogLevel,
			ServiceName: "lexdesk",
			Version:     Version,
		})
		if cfg.ConfigPath == "" {
			logger.L().Debug("no config file, using environment only")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultConfigPath+")")
	rootCmd.AddCommand(versionCmd)
}

// Services holds all initialized services
type Services struct {
	DB      *sqldb.DB
	API     *api.Services
	Limiter ratelimit.Limiter

	closeLimiter func() error
}

// initServices opens the database and storage and builds every service.
func initServices(ctx context.Context) (*Services, error) {
	cal, err := cfg.Calendar()
	if err != nil {
		return nil, err
	}
	civildate.SetDefault(cal)

	// Initialize database
	db, err := sqldb.New(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	blobs, err := storage.New(cfg.StorageDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// 0 disables login rate limiting
	var limiter ratelimit.Limiter
	closeLimiter := func() error { return nil }
	if cfg.LoginRateLimit > 0 {
		limiter, closeLimiter, err = ratelimit.New(cfg.RedisURL, cfg.LoginRateLimit, cfg.LoginRateWindow)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	// Initialize repositories
	userRepo := sqldb.NewUserRepository(db)
	apiClientRepo := sqldb.NewAPIClientRepository(db)
	authCodeRepo := sqldb.NewAuthCodeRepository(db)
	clientRepo := sqldb.NewClientRepository(db)
	caseRepo := sqldb.NewCaseRepository(db)
	hearingRepo := sqldb.NewHearingRepository(db)
	taskRepo := sqldb.NewTaskRepository(db)
	docRepo := sqldb.NewDocumentRepository(db)
	entryRepo := sqldb.NewEntryRepository(db)
	teamRepo := sqldb.NewTeamRepository(db)
	templateRepo := sqldb.NewTemplateRepository(db)

	clock := service.NewClock(cal)
	lookup := courtlookup.NewClient(cfg.CourtLookupURL, cfg.CourtLookupTimeout)

	// Initialize services
	svc := &api.Services{
		DB:          db,
		Auth:        service.NewAuthService(userRepo, apiClientRepo, authCodeRepo, cfg.JWTSecretKey, cfg.JWTAlgorithm),
		Users:       service.NewUserService(userRepo),
		APIClients:  service.NewAPIClientService(apiClientRepo, userRepo),
		Clients:     service.NewClientService(clientRepo, clock),
		Cases:       service.NewCaseService(caseRepo, clientRepo),
		Hearings:    service.NewHearingService(hearingRepo, caseRepo),
		Tasks:       service.NewTaskService(taskRepo),
		Documents:   service.NewDocumentService(docRepo, clientRepo, caseRepo, blobs, cfg.SignedURLTTL, cfg.MaxUploadBytes),
		Finance:     service.NewFinanceService(entryRepo, clientRepo, clock),
		Team:        service.NewTeamService(teamRepo),
		Templates:   service.NewTemplateService(templateRepo, clientRepo, caseRepo),
		Agenda:      service.NewAgendaService(hearingRepo, taskRepo, clock),
		Dashboard:   service.NewDashboardService(clientRepo, caseRepo, hearingRepo, taskRepo, entryRepo, clock),
		CourtLookup: service.NewCourtLookupService(lookup),
	}

	logger.L().Debug("services initialized",
		zap.String("db_driver", db.Driver()),
		zap.String("storage_dir", blobs.Root()),
		zap.Bool("redis_rate_limit", cfg.RedisURL != ""),
	)

	return &Services{
		DB:           db,
		API:          svc,
		Limiter:      limiter,
		closeLimiter: closeLimiter,
	}, nil
}

// Close closes all resources
func (s *Services) Close() {
	if s.closeLimiter != nil {
		if err := s.closeLimiter(); err != nil {
			logger.L().Warn("failed to close rate limiter", logger.Err(err))
		}
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
