package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/adapter/http/middleware"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	healthDBTimeout = 2 * time.Second
)

// StoreStatus is what the health endpoints need to know about the store.
type StoreStatus interface {
	PingContext(ctx context.Context) error
	DialectName() string
	FullTextSearch() bool
}

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthStore struct {
	Dialect        string `json:"dialect"`
	Status         string `json:"status"`
	FullTextSearch bool   `json:"full_text_search"`
}

type HealthAdvanced struct {
	AppName           string      `json:"app_name"`
	AppVersion        string      `json:"app_version"`
	CurrentSystemTime string      `json:"current_system_time"`
	Language          string      `json:"language"`
	Store             HealthStore `json:"store"`
}

type HealthHandler struct {
	store StoreStatus
}

func NewHealthHandler(store StoreStatus) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	statusCode := http.StatusOK
	message := StatusOk

	if !h.checkConnectionToDatabase(c.Request.Context()) {
		statusCode = http.StatusServiceUnavailable
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().UTC().Format(time.RFC3339),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	store := HealthStore{Status: StatusDown}
	if h.store != nil {
		store.Dialect = h.store.DialectName()
		store.FullTextSearch = h.store.FullTextSearch()
	}
	if h.checkConnectionToDatabase(c.Request.Context()) {
		store.Status = StatusOk
	}

	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().UTC().Format(time.RFC3339),
		Language:          middleware.GetLang(c),
		Store:             store,
	})
}

func (h *HealthHandler) checkConnectionToDatabase(ctx context.Context) bool {
	if h.store == nil {
		return false
	}
	// Avoid hanging health checks if the database stalls.
	timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	return h.store.PingContext(timeoutCtx) == nil
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
