package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/adapter/courtlookup"
	"github.com/martijn/lexdesk/internal/adapter/storage"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/api/middleware"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
	"github.com/martijn/lexdesk/internal/infrastructure/sqldb"
	"github.com/martijn/lexdesk/pkg/civildate"
)

// 09:00 on June 15, 2025 in São Paulo
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// testEnv holds all test dependencies
type testEnv struct {
	db      *sqldb.DB
	router  *gin.Engine
	owner   *domain.User
	other   *domain.User
	session *service.Session

	clientService *service.ClientService
	caseService   *service.CaseService
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Use in-memory SQLite database
	db, err := sqldb.New(sqldb.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	blobs, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	clock := service.FixedClock(civildate.Default(), testNow)

	// Create repositories
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

	// Create services
	authService := service.NewAuthService(userRepo, apiClientRepo, authCodeRepo, "test-secret", "HS256")
	userService := service.NewUserService(userRepo)
	apiClientService := service.NewAPIClientService(apiClientRepo, userRepo)
	clientService := service.NewClientService(clientRepo, clock)
	caseService := service.NewCaseService(caseRepo, clientRepo)
	hearingService := service.NewHearingService(hearingRepo, caseRepo)
	taskService := service.NewTaskService(taskRepo)
	documentService := service.NewDocumentService(docRepo, clientRepo, caseRepo, blobs, time.Minute, domain.MaxDocumentSize)
	financeService := service.NewFinanceService(entryRepo, clientRepo, clock)
	teamService := service.NewTeamService(teamRepo)
	templateService := service.NewTemplateService(templateRepo, clientRepo, caseRepo)
	agendaService := service.NewAgendaService(hearingRepo, taskRepo, clock)
	dashboardService := service.NewDashboardService(clientRepo, caseRepo, hearingRepo, taskRepo, entryRepo, clock)
	courtService := service.NewCourtLookupService(courtlookup.NewClient("", time.Second))

	// Create handlers
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	integrationHandler := NewIntegrationHandler(apiClientService)
	clientHandler := NewClientHandler(clientService)
	caseHandler := NewCaseHandler(caseService)
	hearingHandler := NewHearingHandler(hearingService)
	taskHandler := NewTaskHandler(taskService)
	documentHandler := NewDocumentHandler(documentService)
	financeHandler := NewFinanceHandler(financeService)
	teamHandler := NewTeamHandler(teamService)
	templateHandler := NewTemplateHandler(templateService)
	agendaHandler := NewAgendaHandler(agendaService, dashboardService)
	courtHandler := NewCourtHandler(courtService)

	env := &testEnv{
		db:            db,
		clientService: clientService,
		caseService:   caseService,
	}
	env.owner = env.seedUser(t, "owner@example.com", domain.RoleAdmin)
	env.other = env.seedUser(t, "other@example.com", domain.RoleMember)
	env.actAs(env.owner)

	// Setup gin router in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/auth/authorize", authHandler.Authorize)
	router.POST("/auth/token", authHandler.Token)
	router.GET("/documentos/download/:token", documentHandler.Download)

	// Register routes without the token check; the session is injected
	api := router.Group("/", func(c *gin.Context) {
		middleware.SetSession(c, env.session)
		c.Next()
	})
	api.GET("/auth/me", authHandler.Me)
	api.PUT("/auth/password", authHandler.ChangePassword)

	api.GET("/usuarios", userHandler.ListUsers)
	api.POST("/usuarios", userHandler.CreateUser)
	api.PATCH("/usuarios/:id", userHandler.UpdateUser)
	api.DELETE("/usuarios/:id", userHandler.DeleteUser)
	api.GET("/integracoes", integrationHandler.ListIntegrations)
	api.POST("/integracoes", integrationHandler.CreateIntegration)
	api.PUT("/integracoes/:id", integrationHandler.UpdateIntegration)
	api.DELETE("/integracoes/:id", integrationHandler.DeleteIntegration)

	api.GET("/clientes", clientHandler.ListClients)
	api.POST("/clientes", clientHandler.CreateClient)
	api.GET("/clientes/:id", clientHandler.GetClient)
	api.PUT("/clientes/:id", clientHandler.UpdateClient)
	api.DELETE("/clientes/:id", clientHandler.DeleteClient)

	api.GET("/processos", caseHandler.ListCases)
	api.POST("/processos", caseHandler.CreateCase)
	api.PUT("/processos/:id", caseHandler.UpdateCase)
	api.DELETE("/processos/:id", caseHandler.DeleteCase)

	api.GET("/audiencias", hearingHandler.ListHearings)
	api.POST("/audiencias", hearingHandler.CreateHearing)
	api.GET("/tarefas", taskHandler.ListTasks)
	api.POST("/tarefas", taskHandler.CreateTask)

	api.GET("/documentos", documentHandler.ListDocuments)
	api.POST("/documentos", documentHandler.UploadDocument)
	api.POST("/documentos/:id/link", documentHandler.CreateLink)
	api.DELETE("/documentos/:id", documentHandler.DeleteDocument)

	api.GET("/financeiro", financeHandler.ListEntries)
	api.POST("/financeiro", financeHandler.CreateEntry)
	api.GET("/financeiro/resumo", financeHandler.Summary)
	api.PATCH("/financeiro/:id/status", financeHandler.SetStatus)
	api.GET("/relatorios/receitas", financeHandler.Revenue)

	api.GET("/equipe/opcoes", teamHandler.Options)
	api.POST("/equipe", teamHandler.CreateMember)
	api.GET("/equipe", teamHandler.ListMembers)

	api.GET("/mensagens/modelos", templateHandler.ListTemplates)
	api.POST("/mensagens/modelos", templateHandler.CreateTemplate)
	api.PUT("/mensagens/modelos/:id", templateHandler.UpdateTemplate)
	api.GET("/mensagens/modelos/:id/variaveis", templateHandler.Variables)
	api.POST("/mensagens/gerar", templateHandler.Generate)

	api.GET("/agenda", agendaHandler.Agenda)
	api.GET("/dashboard", agendaHandler.Dashboard)

	api.GET("/consulta-processos/tribunais", courtHandler.Tribunals)
	api.POST("/consulta-processos", courtHandler.Lookup)

	env.router = router
	return env
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// actAs switches the session injected into every request
func (env *testEnv) actAs(user *domain.User) {
	env.session = &service.Session{
		Subject:     user.ID,
		SubjectType: service.SubjectUser,
		OwnerID:     user.ID,
		Role:        user.Role,
		Scopes:      []string{service.ScopeAll},
	}
}

func (env *testEnv) seedUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()

	hash, err := service.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := domain.NewUser(email, hash, role)
	if err := sqldb.NewUserRepository(env.db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

func (env *testEnv) seedClient(t *testing.T, name, email string, phone *string) *domain.Client {
	t.Helper()

	client := domain.NewClient(env.session.OwnerID, civildate.MustParse("2025-01-10"))
	client.Name = name
	client.Email = email
	client.Phone = phone
	if err := env.clientService.CreateClient(context.Background(), client); err != nil {
		t.Fatalf("failed to seed client %s: %v", name, err)
	}
	return client
}

func (env *testEnv) seedCase(t *testing.T, clientID, numero string, status domain.CaseStatus) *domain.Case {
	t.Helper()

	c := domain.NewCase(env.session.OwnerID)
	c.Number = numero
	c.ClientID = clientID
	c.Subject = "Ação de cobrança"
	c.Status = status
	c.StartDate = civildate.MustParse("2025-02-01")
	if err := env.caseService.CreateCase(context.Background(), c); err != nil {
		t.Fatalf("failed to seed case %s: %v", numero, err)
	}
	return c
}

// makeRequest performs a GET request and returns the response
func (env *testEnv) makeRequest(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return env.do(t, http.MethodGet, path, nil)
}

// do performs a request with an optional JSON body
func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// parseJSON parses the response body into T
func parseJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var resp T
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	return parseJSON[dto.ErrorResponse](t, w)
}

// ptr is a helper to create a pointer to a value
func ptr[T any](v T) *T {
	return &v
}
