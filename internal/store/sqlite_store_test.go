package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"trellomize/internal/models"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "trellomize.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

func TestSQLiteStore_EmptyCollections(t *testing.T) {
	st := newSQLiteStore(t)

	users, err := st.LoadUsers()
	require.NoError(t, err)
	require.Empty(t, users)

	projects, err := st.LoadProjects()
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	st := newSQLiteStore(t)

	users := []models.User{
		{ID: "u-1", Username: "alice", PasswordHash: "$2a$10$abc", Role: models.RoleManager, Active: true},
	}
	require.NoError(t, st.SaveUsers(users))

	projects := []models.Project{sampleProject()}
	require.NoError(t, st.SaveProjects(projects))

	gotUsers, err := st.LoadUsers()
	require.NoError(t, err)
	require.Equal(t, users, gotUsers)

	gotProjects, err := st.LoadProjects()
	require.NoError(t, err)
	require.Equal(t, projects, gotProjects)
}

func TestSQLiteStore_SaveOverwritesSnapshot(t *testing.T) {
	st := newSQLiteStore(t)

	require.NoError(t, st.SaveProjects([]models.Project{sampleProject()}))
	require.NoError(t, st.SaveProjects([]models.Project{}))

	projects, err := st.LoadProjects()
	require.NoError(t, err)
	require.Empty(t, projects)
}
