package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"trellomize/internal/audit"
	"trellomize/internal/services"
	"trellomize/internal/store"
)

func runScript(t *testing.T, st *store.MemoryStore, input string) string {
	t.Helper()

	auditLog := audit.NewNop()
	out := &bytes.Buffer{}
	app := New(
		services.NewAuthService(st, auditLog),
		services.NewProjectService(st, auditLog),
		services.NewTaskService(st, auditLog),
		auditLog,
		strings.NewReader(input),
		out,
	)

	require.NoError(t, app.Run())
	return out.String()
}

func TestApp_RegisterAndCreateProject(t *testing.T) {
	st := store.NewMemoryStore()

	input := strings.Join([]string{
		"1",               // create a new account
		"alice",           // username
		"supersecret",     // password
		"alice@example.com",
		"yes",             // manager
		"1",               // add a new project
		"Launch",          // title
		"Product launch",  // description
		"",                // priority (defaults)
		"",                // status (defaults)
		"6",               // exit user menu (manager numbering)
		"3",               // exit program
	}, "\n") + "\n"

	output := runScript(t, st, input)

	require.Contains(t, output, "User account created successfully. Manager status: Yes")
	require.Contains(t, output, "Project added successfully!")

	projects, err := st.LoadProjects()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "Launch", projects[0].Title)
	require.Equal(t, "alice", projects[0].Leader)
}

func TestApp_LoginRejectsBadPassword(t *testing.T) {
	st := store.NewMemoryStore()
	auditLog := audit.NewNop()
	auth := services.NewAuthService(st, auditLog)
	_, err := auth.Register(services.RegisterInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	input := strings.Join([]string{
		"2",       // log in
		"alice",
		"wrongpw",
		"3",       // exit
	}, "\n") + "\n"

	output := runScript(t, st, input)
	require.Contains(t, output, "Invalid username or password.")
}

func TestApp_EndsCleanlyOnEOF(t *testing.T) {
	st := store.NewMemoryStore()
	output := runScript(t, st, "")
	require.Contains(t, output, "1. Create a new account")
}
