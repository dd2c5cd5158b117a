package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"trellomize/internal/models"
)

// FileStore keeps each collection in its own JSON file. Writes are atomic
// and durable: the snapshot lands in a temp file which is synced and then
// renamed over the previous one, followed by a directory sync.
type FileStore struct {
	usersPath    string
	projectsPath string
}

// NewFileStore creates a FileStore over the two snapshot paths. The files
// need not exist yet.
func NewFileStore(usersPath, projectsPath string) *FileStore {
	return &FileStore{usersPath: usersPath, projectsPath: projectsPath}
}

func (s *FileStore) LoadUsers() ([]models.User, error) {
	users := []models.User{}
	if err := readJSON(s.usersPath, &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (s *FileStore) SaveUsers(users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	if err := writeJSON(s.usersPath, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (s *FileStore) LoadProjects() ([]models.Project, error) {
	projects := []models.Project{}
	if err := readJSON(s.projectsPath, &projects); err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	return projects, nil
}

func (s *FileStore) SaveProjects(projects []models.Project) error {
	if projects == nil {
		projects = []models.Project{}
	}
	if err := writeJSON(s.projectsPath, projects); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}
	return nil
}

func readJSON(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, append(data, '\n'), 0o644)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

func fsyncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
