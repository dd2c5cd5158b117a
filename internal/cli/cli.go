// Package cli implements the interactive menu surface. It holds no business
// rules: every action goes through the services, and authorization failures
// surface here as printed errors.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"trellomize/internal/audit"
	"trellomize/internal/models"
	"trellomize/internal/services"
)

// App wires the menu loop to the services.
type App struct {
	auth     *services.AuthService
	projects *services.ProjectService
	tasks    *services.TaskService
	audit    *audit.Logger

	in     *bufio.Scanner
	out    io.Writer
	styled bool
}

// New creates the CLI app. Styling is enabled only when out is a terminal.
func New(auth *services.AuthService, projects *services.ProjectService, tasks *services.TaskService, auditLog *audit.Logger, in io.Reader, out io.Writer) *App {
	styled := false
	if f, ok := out.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &App{
		auth:     auth,
		projects: projects,
		tasks:    tasks,
		audit:    auditLog,
		in:       bufio.NewScanner(in),
		out:      out,
		styled:   styled,
	}
}

// Run drives the top-level menu until the user exits or input ends.
func (a *App) Run() error {
	a.banner()
	for {
		a.println("")
		a.println("1. Create a new account")
		a.println("2. Log in to your account")
		a.println("3. Exit")
		choice, ok := a.prompt("Please choose an option (1, 2, or 3): ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			if user := a.register(); user != nil {
				a.userMenu(user)
			}
		case "2":
			if user := a.login(); user != nil {
				a.userMenu(user)
			}
		case "3":
			a.success("Exiting the program.")
			return nil
		default:
			a.fail("Invalid choice. Please choose 1, 2, or 3.")
		}
	}
}

func (a *App) register() *models.User {
	username, ok := a.prompt("Please enter your username: ")
	if !ok {
		return nil
	}
	password, ok := a.prompt("Please enter your password: ")
	if !ok {
		return nil
	}
	email, ok := a.prompt("Please enter your email: ")
	if !ok {
		return nil
	}
	managerAnswer, ok := a.prompt("Are you a manager? (yes/no): ")
	if !ok {
		return nil
	}

	user, err := a.auth.Register(services.RegisterInput{
		Username: username,
		Password: password,
		Email:    email,
		Manager:  strings.EqualFold(strings.TrimSpace(managerAnswer), "yes"),
	})
	if err != nil {
		a.fail(errorMessage(err))
		return nil
	}

	manager := "No"
	if user.IsManager() {
		manager = "Yes"
	}
	a.success("User account created successfully. Manager status: " + manager)
	return user
}

func (a *App) login() *models.User {
	username, ok := a.prompt("Please enter your username: ")
	if !ok {
		return nil
	}
	password, ok := a.prompt("Please enter your password: ")
	if !ok {
		return nil
	}

	user, err := a.auth.Authenticate(username, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInactiveAccount):
			a.fail("Your account is inactive. Please contact the system administrator.")
		case errors.Is(err, services.ErrInvalidCredentials):
			a.fail("Invalid username or password. Please try again or create a new account.")
		default:
			a.fail(errorMessage(err))
		}
		return nil
	}

	role := "a member"
	if user.IsManager() {
		role = "a manager"
	}
	a.info(fmt.Sprintf("Welcome back, %s! You are logged in as %s.", user.Username, role))
	return user
}

func (a *App) userMenu(user *models.User) {
	for {
		a.println("")
		a.println("1. Add a new project")
		a.println("2. List projects that you are leading")
		a.println("3. List projects you are a member of")
		if user.IsManager() {
			a.println("4. Deactivate a user account")
			a.println("5. Export the audit log to JSON")
			a.println("6. Exit")
		} else {
			a.println("4. Exit")
		}
		choice, ok := a.prompt("Choose an option: ")
		if !ok {
			return
		}
		switch {
		case choice == "1":
			a.createProject(user)
		case choice == "2":
			a.leaderMenu(user)
		case choice == "3":
			a.memberMenu(user)
		case choice == "4" && user.IsManager():
			a.deactivateUser()
		case choice == "5" && user.IsManager():
			a.exportAuditLog()
		case choice == "4" || (choice == "6" && user.IsManager()):
			a.success("Exiting the program.")
			return
		default:
			a.fail("Invalid choice. Please try again.")
		}
	}
}

func (a *App) createProject(user *models.User) {
	title, ok := a.prompt("Enter the title of the new project: ")
	if !ok {
		return
	}
	description, ok := a.prompt("Enter the project description (optional): ")
	if !ok {
		return
	}
	priority, ok := a.prompt("Enter the project priority (CRITICAL, HIGH, MEDIUM, LOW; default LOW): ")
	if !ok {
		return
	}
	status, ok := a.prompt("Enter the project status (BACKLOG, TODO, DOING, DONE, ARCHIVED; default BACKLOG): ")
	if !ok {
		return
	}

	_, err := a.projects.Create(services.CreateProjectInput{
		Leader:      user.Username,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      status,
	})
	if err != nil {
		a.fail(errorMessage(err))
		return
	}
	a.success("Project added successfully!")
}

func (a *App) leaderMenu(user *models.User) {
	led, err := a.projects.ListLed(user.Username)
	if err != nil {
		a.fail(errorMessage(err))
		return
	}
	if len(led) == 0 {
		a.fail("No projects found where you are the leader.")
		return
	}
	for _, p := range led {
		a.printProjectSummary(p)
	}

	for {
		a.println("")
		a.println("Options for projects you are leading:")
		a.println("1. Add a member to a project")
		a.println("2. Remove a member from a project")
		a.println("3. Assign a task to a member")
		a.println("4. View project details")
		a.println("5. View tasks by status")
		a.println("6. Delete a project")
		a.println("7. Return to main menu")
		choice, ok := a.prompt("Choose an option: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			a.addMember(user)
		case "2":
			a.removeMember(user)
		case "3":
			a.assignTask(user)
		case "4":
			a.viewProject(user)
		case "5":
			a.viewTasksByStatus(user)
		case "6":
			a.deleteProject(user)
		case "7":
			return
		default:
			a.fail("Invalid choice. Please try again.")
		}
	}
}

func (a *App) memberMenu(user *models.User) {
	member, err := a.projects.ListMember(user.Username)
	if err != nil {
		a.fail(errorMessage(err))
		return
	}
	if len(member) == 0 {
		a.fail("No projects found where you are a member.")
		return
	}
	for _, p := range member {
		a.printProjectSummary(p)
	}

	for {
		a.println("")
		a.println("Options for projects you are a member of:")
		a.println("1. View project details")
		a.println("2. View tasks by status")
		a.println("3. Return to main menu")
		choice, ok := a.prompt("Choose an option: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			a.viewProject(user)
		case "2":
			a.viewTasksByStatus(user)
		case "3":
			return
		default:
			a.fail("Invalid choice. Please try again.")
		}
	}
}

func (a *App) addMember(user *models.User) {
	title, ok := a.prompt("Enter the project title to add a member: ")
	if !ok {
		return
	}
	username, ok := a.prompt("Enter the username of the member to add: ")
	if !ok {
		return
	}
	if err := a.projects.AddMember(user.Username, title, username); err != nil {
		a.fail(errorMessage(err))
		return
	}
	a.success("Member added successfully to the project.")
}

func (a *App) removeMember(user *models.User) {
	title, ok := a.prompt("Enter the project title to remove a member from: ")
	if !ok {
		return
	}
	username, ok := a.prompt("Enter the username of the member to remove: ")
	if !ok {
		return
	}
	if err := a.projects.RemoveMember(user.Username, title, username); err != nil {
		a.fail(errorMessage(err))
		return
	}
	a.success("Member removed successfully from the project.")
}

func (a *App) assignTask(user *models.User) {
	title, ok := a.prompt("Enter the project title to assign a task: ")
	if !ok {
		return
	}
	assignee, ok := a.prompt("Enter the username of the member to assign the task to: ")
	if !ok {
		return
	}
	description, ok := a.prompt("Enter the task description: ")
	if !ok {
		return
	}
	details, ok := a.prompt("Enter additional details for the task (optional): ")
	if !ok {
		return
	}

	_, err := a.tasks.Assign(services.AssignTaskInput{
		Leader:       user.Username,
		ProjectTitle: title,
		Assignee:     assignee,
		Description:  description,
		Details:      details,
	})
	if err != nil {
		a.fail(errorMessage(err))
		return
	}
	a.success("Task assigned successfully to the member.")
}

func (a *App) deleteProject(user *models.User) {
	title, ok := a.prompt("Enter the project title to delete: ")
	if !ok {
		return
	}
	if err := a.projects.Delete(user.Username, title); err != nil {
		a.fail(errorMessage(err))
		return
	}
	a.success("Project deleted successfully.")
}

func (a *App) deactivateUser() {
	username, ok := a.prompt("Enter the username of the account to deactivate: ")
	if !ok {
		return
	}
	if err := a.auth.Deactivate(username); err != nil {
		if errors.Is(err, services.ErrAlreadyInactive) {
			a.info(fmt.Sprintf("User %s is already deactivated.", username))
			return
		}
		a.fail(errorMessage(err))
		return
	}
	a.info(fmt.Sprintf("User %s has been deactivated successfully.", username))
}

func (a *App) exportAuditLog() {
	jsonPath, ok := a.prompt("Enter the path for the JSON file: ")
	if !ok || jsonPath == "" {
		return
	}
	added, err := audit.ExportJSON(a.audit.Path(), jsonPath)
	if err != nil {
		if errors.Is(err, audit.ErrNoLogs) {
			a.fail("No logs to save.")
			return
		}
		a.fail(errorMessage(err))
		return
	}
	if added == 0 {
		a.info("No new logs to save.")
		return
	}
	a.success(fmt.Sprintf("Logs have been saved to %s", jsonPath))
}
