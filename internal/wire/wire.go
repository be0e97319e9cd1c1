// Package wire provides dependency injection for the taskflow client.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/example/taskflow/internal/adapters/rest"
	"github.com/example/taskflow/internal/adapters/sqlite"
	"github.com/example/taskflow/internal/app"
	"github.com/example/taskflow/internal/config"
	"github.com/example/taskflow/internal/db"
	"github.com/example/taskflow/internal/ports/primary"
)

var (
	authService    primary.AuthService
	taskService    primary.TaskService
	projectService primary.ProjectService
	holder         *app.SessionHolder
	once           sync.Once
)

// AuthService returns the singleton AuthService instance.
func AuthService() primary.AuthService {
	once.Do(initServices)
	return authService
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize local state database: %v", err)
	}

	sessionRepo := sqlite.NewSessionRepository(database)
	cacheRepo := sqlite.NewTaskCacheRepository(database)
	logWriter := sqlite.NewLogWriter(database)

	holder = app.NewSessionHolder()

	// A 401 on any authenticated call clears the token process-wide:
	// memory first so no further request carries it, then the store so
	// the next invocation starts unauthenticated.
	backend := rest.NewClient(cfg.APIURL, holder.Token,
		rest.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}),
		rest.WithUnauthorizedHook(func() {
			holder.Clear()
			if err := sessionRepo.Clear(context.Background()); err != nil {
				log.Printf("failed to clear stored session: %v", err)
			}
		}),
	)

	authService = app.NewAuthService(backend, sessionRepo, cacheRepo, holder, logWriter)
	taskService = app.NewTaskService(backend, cacheRepo, holder, logWriter)
	projectService = app.NewProjectService(backend, holder)
}

// SessionHolder returns the process-wide session holder.
func SessionHolder() *app.SessionHolder {
	once.Do(initServices)
	return holder
}

// Exit closes shared resources and exits with the given code.
func Exit(code int) {
	_ = db.Close()
	os.Exit(code)
}
