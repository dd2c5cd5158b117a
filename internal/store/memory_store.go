package store

import (
	"encoding/json"
	"fmt"

	"trellomize/internal/models"
)

// MemoryStore is an in-memory Store for tests. Snapshots are deep-copied on
// the way in and out so callers cannot alias stored state.
type MemoryStore struct {
	users    []models.User
	projects []models.Project

	// FailSaves makes every save return an error, for exercising the
	// persistence-failure path.
	FailSaves bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadUsers() ([]models.User, error) {
	out := []models.User{}
	if err := deepCopy(s.users, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MemoryStore) SaveUsers(users []models.User) error {
	if s.FailSaves {
		return fmt.Errorf("save users: store unavailable")
	}
	copied := []models.User{}
	if err := deepCopy(users, &copied); err != nil {
		return err
	}
	s.users = copied
	return nil
}

func (s *MemoryStore) LoadProjects() ([]models.Project, error) {
	out := []models.Project{}
	if err := deepCopy(s.projects, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MemoryStore) SaveProjects(projects []models.Project) error {
	if s.FailSaves {
		return fmt.Errorf("save projects: store unavailable")
	}
	copied := []models.Project{}
	if err := deepCopy(projects, &copied); err != nil {
		return err
	}
	s.projects = copied
	return nil
}

func deepCopy(src, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
