package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/martijn/lexdesk/internal/adapter/ratelimit"
	_ "github.com/martijn/lexdesk/internal/api/docs"
	"github.com/martijn/lexdesk/internal/api/handler"
	"github.com/martijn/lexdesk/internal/api/middleware"
	"github.com/martijn/lexdesk/internal/core/service"
	"github.com/martijn/lexdesk/internal/observability/metrics"
	"github.com/martijn/lexdesk/pkg/config"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the dependencies of the HTTP handlers.
type Services struct {
	DB          Pinger
	Auth        *service.AuthService
	Users       *service.UserService
	APIClients  *service.APIClientService
	Clients     *service.ClientService
	Cases       *service.CaseService
	Hearings    *service.HearingService
	Tasks       *service.TaskService
	Documents   *service.DocumentService
	Finance     *service.FinanceService
	Team        *service.TeamService
	Templates   *service.TemplateService
	Agenda      *service.AgendaService
	Dashboard   *service.DashboardService
	CourtLookup *service.CourtLookupService
}

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	log    *zap.Logger
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, svc *Services, limiter ratelimit.Limiter, log *zap.Logger) (*Server, error) {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandlerMiddleware())
	if cfg.MetricsEnabled {
		scrape, err := metrics.Register(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		router.Use(middleware.MetricsMiddleware())
		router.GET("/metrics", gin.WrapH(scrape))
	}
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users)
	integrationHandler := handler.NewIntegrationHandler(svc.APIClients)
	clientHandler := handler.NewClientHandler(svc.Clients)
	caseHandler := handler.NewCaseHandler(svc.Cases)
	hearingHandler := handler.NewHearingHandler(svc.Hearings)
	taskHandler := handler.NewTaskHandler(svc.Tasks)
	documentHandler := handler.NewDocumentHandler(svc.Documents)
	financeHandler := handler.NewFinanceHandler(svc.Finance)
	teamHandler := handler.NewTeamHandler(svc.Team)
	templateHandler := handler.NewTemplateHandler(svc.Templates)
	agendaHandler := handler.NewAgendaHandler(svc.Agenda, svc.Dashboard)
	courtHandler := handler.NewCourtHandler(svc.CourtLookup)

	// Protected routes (auth required)
	authMiddleware := middleware.AuthMiddleware(svc.Auth)

	// Public routes (no auth required)
	auth := router.Group("/auth")
	{
		auth.POST("/authorize", middleware.RateLimit(limiter, "/auth/authorize"), authHandler.Authorize)
		auth.POST("/token", middleware.RateLimit(limiter, "/auth/token"), authHandler.Token)
		auth.GET("/me", authMiddleware, authHandler.Me)
		auth.PUT("/password", authMiddleware, authHandler.ChangePassword)
	}

	// The token in the path is the credential
	router.GET("/documentos/download/:token", documentHandler.Download)

	scoped := func(resource string) *gin.RouterGroup {
		return router.Group("/"+resource, authMiddleware, middleware.RequireScope(resource))
	}

	// Users (admin)
	users := router.Group("/usuarios", authMiddleware, middleware.RequireAdmin())
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.PATCH("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	// Integration clients (admin)
	integrations := router.Group("/integracoes", authMiddleware, middleware.RequireAdmin())
	{
		integrations.POST("", integrationHandler.CreateIntegration)
		integrations.GET("", integrationHandler.ListIntegrations)
		integrations.GET("/:id", integrationHandler.GetIntegration)
		integrations.PUT("/:id", integrationHandler.UpdateIntegration)
		integrations.DELETE("/:id", integrationHandler.DeleteIntegration)
	}

	// Clients
	clients := scoped("clientes")
	{
		clients.POST("", clientHandler.CreateClient)
		clients.GET("", clientHandler.ListClients)
		clients.GET("/:id", clientHandler.GetClient)
		clients.PUT("/:id", clientHandler.UpdateClient)
		clients.DELETE("/:id", clientHandler.DeleteClient)
	}

	// Cases
	cases := scoped("processos")
	{
		cases.POST("", caseHandler.CreateCase)
		cases.GET("", caseHandler.ListCases)
		cases.GET("/:id", caseHandler.GetCase)
		cases.PUT("/:id", caseHandler.UpdateCase)
		cases.DELETE("/:id", caseHandler.DeleteCase)
	}

	// Hearings
	hearings := scoped("audiencias")
	{
		hearings.POST("", hearingHandler.CreateHearing)
		hearings.GET("", hearingHandler.ListHearings)
		hearings.GET("/:id", hearingHandler.GetHearing)
		hearings.PUT("/:id", hearingHandler.UpdateHearing)
		hearings.DELETE("/:id", hearingHandler.DeleteHearing)
	}

	// Tasks
	tasks := scoped("tarefas")
	{
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	// Documents
	documents := scoped("documentos")
	{
		documents.POST("", middleware.BodyLimit(cfg.MaxUploadBytes), documentHandler.UploadDocument)
		documents.GET("", documentHandler.ListDocuments)
		documents.GET("/:id", documentHandler.GetDocument)
		documents.DELETE("/:id", documentHandler.DeleteDocument)
		documents.POST("/:id/link", documentHandler.CreateLink)
	}

	// Billing
	finance := scoped("financeiro")
	{
		finance.POST("", financeHandler.CreateEntry)
		finance.GET("", financeHandler.ListEntries)
		finance.GET("/resumo", financeHandler.Summary)
		finance.GET("/:id", financeHandler.GetEntry)
		finance.PUT("/:id", financeHandler.UpdateEntry)
		finance.PATCH("/:id/status", financeHandler.SetStatus)
		finance.DELETE("/:id", financeHandler.DeleteEntry)
	}

	// Reports
	scoped("relatorios").GET("/receitas", financeHandler.Revenue)

	// Agenda and dashboard
	scoped("agenda").GET("", agendaHandler.Agenda)
	scoped("dashboard").GET("", agendaHandler.Dashboard)

	// Team
	team := scoped("equipe")
	{
		team.GET("/opcoes", teamHandler.Options)
		team.POST("", teamHandler.CreateMember)
		team.GET("", teamHandler.ListMembers)
		team.GET("/:id", teamHandler.GetMember)
		team.PUT("/:id", teamHandler.UpdateMember)
		team.DELETE("/:id", teamHandler.DeleteMember)
	}

	// Message templates
	messages := scoped("mensagens")
	{
		messages.POST("/modelos", templateHandler.CreateTemplate)
		messages.GET("/modelos", templateHandler.ListTemplates)
		messages.GET("/modelos/:id", templateHandler.GetTemplate)
		messages.PUT("/modelos/:id", templateHandler.UpdateTemplate)
		messages.DELETE("/modelos/:id", templateHandler.DeleteTemplate)
		messages.GET("/modelos/:id/variaveis", templateHandler.Variables)
		messages.POST("/gerar", templateHandler.Generate)
	}

	// Court records lookup
	court := scoped("consulta-processos")
	{
		court.GET("/tribunais", courtHandler.Tribunals)
		court.POST("", courtHandler.Lookup)
	}

	// API docs
	if cfg.SwaggerEnabled {
		router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if svc.DB != nil {
			if err := svc.DB.Ping(c.Request.Context()); err != nil {
				status, code = "database unavailable", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	server := &Server{
		router: router,
		config: cfg,
		log:    log,
	}

	return server, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.log.Info("starting HTTPS server", zap.String("addr", addr))
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.log.Info("starting HTTP server", zap.String("addr", addr))
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
