package services

import (
	"testing"
	"time"

	"trellomize/internal/audit"
	"trellomize/internal/store"
)

type testEnv struct {
	store    *store.MemoryStore
	auth     *AuthService
	projects *ProjectService
	tasks    *TaskService
	now      time.Time
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemoryStore()
	auditLog := audit.NewNop()

	env := &testEnv{
		store:    st,
		auth:     NewAuthService(st, auditLog),
		projects: NewProjectService(st, auditLog),
		tasks:    NewTaskService(st, auditLog),
		now:      time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC),
	}

	clock := func() time.Time { return env.now }
	env.auth.now = clock
	env.projects.now = clock
	env.tasks.now = clock

	return env
}
