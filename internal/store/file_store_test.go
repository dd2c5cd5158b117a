package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trellomize/internal/models"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(filepath.Join(dir, "users.json"), filepath.Join(dir, "projects.json"))
}

func sampleProject() models.Project {
	start := time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC)
	return models.Project{
		ID:          "p-1",
		Title:       "Launch",
		Description: "Product launch",
		Leader:      "alice",
		Members:     []string{"alice", "bob"},
		Tasks: []models.Task{
			{
				ID:          "t-1",
				Description: "Write spec",
				Details:     "All of it",
				AssignedTo:  "bob",
				Priority:    models.PriorityHigh,
				Status:      models.StatusDoing,
				Comments: []models.Comment{
					{Timestamp: start.Add(time.Minute), Username: "bob", Content: "on it"},
				},
				StartTime: start,
				EndTime:   start.Add(models.LeaseDuration),
			},
			{
				// Second task with empty comment collection: round-tripping
				// must keep it an empty array, not null.
				ID:          "t-2",
				Description: "Review spec",
				AssignedTo:  "alice",
				Priority:    models.PriorityLow,
				Status:      models.StatusBacklog,
				Comments:    []models.Comment{},
				StartTime:   start,
				EndTime:     start.Add(models.LeaseDuration),
			},
		},
		Comments:  []models.Comment{},
		Priority:  models.PriorityMedium,
		Status:    models.StatusTodo,
		StartTime: start,
		EndTime:   start.Add(models.LeaseDuration),
	}
}

func TestFileStore_MissingFilesAreEmptyCollections(t *testing.T) {
	st := newFileStore(t)

	users, err := st.LoadUsers()
	require.NoError(t, err)
	require.Empty(t, users)

	projects, err := st.LoadProjects()
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestFileStore_UsersRoundTrip(t *testing.T) {
	st := newFileStore(t)

	in := []models.User{
		{ID: "u-1", Username: "alice", PasswordHash: "$2a$10$abc", Email: "alice@example.com", Role: models.RoleManager, Active: true},
		{ID: "u-2", Username: "bob", PasswordHash: "$2a$10$def", Email: "", Role: models.RoleMember, Active: false},
	}
	require.NoError(t, st.SaveUsers(in))

	out, err := st.LoadUsers()
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestFileStore_ProjectsRoundTripLossless(t *testing.T) {
	st := newFileStore(t)

	in := []models.Project{sampleProject()}
	require.NoError(t, st.SaveProjects(in))

	out, err := st.LoadProjects()
	require.NoError(t, err)
	require.Equal(t, in, out)

	// Saving the loaded collection again produces an identical snapshot:
	// serialization loses nothing, including empty task/comment collections.
	first, err := os.ReadFile(st.projectsPath)
	require.NoError(t, err)
	require.NoError(t, st.SaveProjects(out))
	second, err := os.ReadFile(st.projectsPath)
	require.NoError(t, err)
	require.Equal(t, string(first), string(second))
}

func TestFileStore_NilSavesAsEmptyArray(t *testing.T) {
	st := newFileStore(t)

	require.NoError(t, st.SaveProjects(nil))
	data, err := os.ReadFile(st.projectsPath)
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(data))
}

func TestFileStore_SaveOverwritesWholeSnapshot(t *testing.T) {
	st := newFileStore(t)

	require.NoError(t, st.SaveProjects([]models.Project{sampleProject()}))
	require.NoError(t, st.SaveProjects([]models.Project{}))

	projects, err := st.LoadProjects()
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestFileStore_CorruptSnapshotSurfaces(t *testing.T) {
	st := newFileStore(t)
	require.NoError(t, os.WriteFile(st.projectsPath, []byte("{not json"), 0o644))

	_, err := st.LoadProjects()
	require.Error(t, err)
	require.Contains(t, err.Error(), "load projects")
}
