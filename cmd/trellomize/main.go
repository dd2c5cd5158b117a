package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"trellomize/internal/audit"
	"trellomize/internal/cli"
	"trellomize/internal/config"
	"trellomize/internal/services"
	"trellomize/internal/store"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	auditLog, err := audit.New(cfg.AuditLogPath())
	if err != nil {
		// The audit sink is best-effort: run without it rather than refusing
		// to start.
		log.Printf("Audit log unavailable, continuing without it: %v", err)
		auditLog = audit.NewNop()
	}
	defer auditLog.Sync()

	var st store.Store
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		sqliteStore, err := store.NewSQLiteStore(cfg.SQLitePath())
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}
		defer sqliteStore.Close()
		st = sqliteStore
	default:
		st = store.NewFileStore(cfg.UsersPath(), cfg.ProjectsPath())
	}

	authService := services.NewAuthService(st, auditLog)
	projectService := services.NewProjectService(st, auditLog)
	taskService := services.NewTaskService(st, auditLog)

	// Expired projects are removed once at startup; there is no background
	// timer.
	removed, err := projectService.SweepExpired(time.Now())
	if err != nil {
		log.Fatalf("Failed to sweep expired projects: %v", err)
	}
	if removed > 0 {
		log.Printf("Removed %d expired project(s)", removed)
	}

	app := cli.New(authService, projectService, taskService, auditLog, os.Stdin, os.Stdout)
	if err := app.Run(); err != nil {
		log.Fatalf("CLI failed: %v", err)
	}
}
