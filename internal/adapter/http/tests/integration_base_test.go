package tests

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	dbadapter "taskmanager/internal/adapter/db"
	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/docs"
	"taskmanager/internal/adapter/http/handlers"
	appservice "taskmanager/internal/app/service"
	"taskmanager/pkg/translator"
)

// IntegrationSuiteBase runs the full router against a real store. connect
// decides which store; the default one is a throwaway SQLite file.
type IntegrationSuiteBase struct {
	suite.Suite

	connect func(t *testing.T) *dbadapter.Store
	Store   *dbadapter.Store
	router  *gin.Engine
}

func (s *IntegrationSuiteBase) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(translator.InitTranslator(translator.Config{
		TranslationFolder:  filepath.Join(projectRoot(s.T()), "pkg", "translator", "translation"),
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	}))

	if s.connect == nil {
		s.connect = sqliteStore
	}
	s.Store = s.connect(s.T())
	s.Require().NoError(s.Store.EnsureSchema(context.Background()))
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.Store != nil {
		s.Require().NoError(s.Store.Close())
	}
}

func (s *IntegrationSuiteBase) SetupTest() {
	s.ResetDatabase()
	s.Store.Clock = steppingClock(time.Date(2026, 2, 13, 8, 0, 0, 0, time.UTC))

	taskRepository := dbadapter.NewTaskRepository(s.Store)
	userRepository := dbadapter.NewUserRepository(s.Store)

	spec, err := docs.OpenAPIJSON()
	s.Require().NoError(err)

	router, err := httpadapter.NewRouter(zap.NewNop(), httpadapter.RouterOptions{AllowedOrigins: []string{"*"}}, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(s.Store),
		Tasks:  handlers.NewTaskHandler(appservice.NewTaskService(taskRepository, userRepository, appservice.WithStrictConflictCheck(true))),
		Users:  handlers.NewUserHandler(appservice.NewUserService(userRepository)),
		Docs:   handlers.NewDocsHandler(spec),
	})
	s.Require().NoError(err)
	s.router = router
}

// ResetDatabase empties both tables, tasks first because of the foreign key.
func (s *IntegrationSuiteBase) ResetDatabase() {
	for _, table := range []string{"tasks", "users"} {
		_, err := s.Store.DB.Exec("DELETE FROM " + table)
		s.Require().NoError(err)
	}
}

func (s *IntegrationSuiteBase) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func sqliteStore(t *testing.T) *dbadapter.Store {
	t.Helper()

	dialect, err := dbadapter.DialectFor(dbadapter.DriverSQLite)
	require.NoError(t, err)
	store, err := dbadapter.Open(dialect, dbadapter.SQLiteDSN(filepath.Join(t.TempDir(), "integration.db")))
	require.NoError(t, err)
	return store
}

func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func projectRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "..", ".."))
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// statusOf is a readable assertion message for failed requests.
func statusOf(rec *httptest.ResponseRecorder) string {
	return http.StatusText(rec.Code) + ": " + rec.Body.String()
}
