package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"trellomize/internal/models"
	"trellomize/internal/services"
)

const (
	styleReset  = "\033[0m"
	styleRed    = "\033[1;31m"
	styleGreen  = "\033[1;32m"
	styleYellow = "\033[1;33m"
	styleBlue   = "\033[1;34m"
)

func (a *App) banner() {
	a.info("Welcome to the Project Management System")
}

func (a *App) println(line string) {
	fmt.Fprintln(a.out, line)
}

func (a *App) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) success(msg string) { a.styledln(styleGreen, msg) }
func (a *App) fail(msg string)    { a.styledln(styleRed, msg) }
func (a *App) info(msg string)    { a.styledln(styleBlue, msg) }

func (a *App) styledln(style, msg string) {
	if a.styled {
		fmt.Fprintln(a.out, style+msg+styleReset)
	} else {
		fmt.Fprintln(a.out, msg)
	}
}

func (a *App) printProjectSummary(p models.Project) {
	a.styledln(styleYellow, fmt.Sprintf("Title: %s (expires %s)", p.Title, humanize.Time(p.EndTime)))
}

func (a *App) viewProject(user *models.User) {
	title, ok := a.prompt("Enter the project title to view details: ")
	if !ok {
		return
	}
	p, err := a.projects.View(user.Username, title)
	if err != nil {
		a.fail(errorMessage(err))
		return
	}

	description := p.Description
	if description == "" {
		description = "No description provided"
	}
	a.println("Project Title: " + p.Title)
	a.println("Project Description: " + description)
	a.println("Project Leader: " + p.Leader)
	a.println(fmt.Sprintf("Priority: %s  Status: %s", p.Priority, p.Status))
	a.println("Start Time: " + p.StartTime.Format("2006-01-02 15:04:05"))
	a.println(fmt.Sprintf("End Time: %s (%s)", p.EndTime.Format("2006-01-02 15:04:05"), humanize.Time(p.EndTime)))
	a.println("Members:")
	for _, m := range p.Members {
		a.println(" - " + m)
	}
	a.println("Tasks:")
	for _, t := range p.Tasks {
		a.println(fmt.Sprintf(" - %s assigned to %s (ID: %s)", t.Description, t.AssignedTo, t.ID))
		a.println("   Priority: " + string(t.Priority))
		a.println("   Status: " + string(t.Status))
		a.println("   Comments:")
		for _, c := range t.Comments {
			a.println(fmt.Sprintf("     %s - %s: %s", c.Timestamp.Format("2006-01-02 15:04:05"), c.Username, c.Content))
		}
	}
}

func (a *App) viewTasksByStatus(user *models.User) {
	title, ok := a.prompt("Enter the project title to view tasks by status: ")
	if !ok {
		return
	}
	buckets, err := a.tasks.TasksByStatus(user.Username, title)
	if err != nil {
		a.fail(errorMessage(err))
		return
	}

	for _, status := range models.AllStatuses() {
		a.styledln(styleYellow, string(status)+":")
		tasks := buckets[status]
		if len(tasks) == 0 {
			a.println("  (none)")
			continue
		}
		for _, t := range tasks {
			a.println(fmt.Sprintf("  %s (ID: %s)", t.Description, t.ID))
		}
	}

	taskID, ok := a.prompt("Enter a task ID to view (or press enter to go back): ")
	if !ok || taskID == "" {
		return
	}
	a.viewTask(user, taskID)
}

func (a *App) viewTask(user *models.User, taskID string) {
	view, err := a.tasks.View(user.Username, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskForbidden) {
			a.fail("You are not the leader of this project or not assigned to this task.")
			return
		}
		a.fail(errorMessage(err))
		return
	}

	t := view.Task
	details := t.Details
	if details == "" {
		details = "No details provided"
	}
	a.println("Task Description: " + t.Description)
	a.println("Task Details: " + details)
	a.println("Assigned To: " + t.AssignedTo)
	a.println("Priority: " + string(t.Priority))
	a.println("Status: " + string(t.Status))
	a.println(fmt.Sprintf("End Time: %s (%s)", t.EndTime.Format("2006-01-02 15:04:05"), humanize.Time(t.EndTime)))
	a.println("Comments:")
	for _, c := range t.Comments {
		a.println(fmt.Sprintf(" - %s - %s: %s", c.Timestamp.Format("2006-01-02 15:04:05"), c.Username, c.Content))
	}

	a.taskMenu(user, taskID)
}

func (a *App) taskMenu(user *models.User, taskID string) {
	for {
		a.println("")
		a.println("Options for task:")
		a.println("1. Edit task description")
		a.println("2. Edit task details")
		a.println("3. Edit task priority")
		a.println("4. Edit task status")
		a.println("5. Add a comment to the task")
		a.println("6. Return to previous menu")
		choice, ok := a.prompt("Choose an option: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			if value, ok := a.prompt("Enter the new description: "); ok {
				a.reportEdit(a.tasks.EditDescription(user.Username, taskID, value), "Task description updated successfully.")
			}
		case "2":
			if value, ok := a.prompt("Enter the new details: "); ok {
				a.reportEdit(a.tasks.EditDetails(user.Username, taskID, value), "Task details updated successfully.")
			}
		case "3":
			if value, ok := a.prompt("Enter the new priority (CRITICAL, HIGH, MEDIUM, LOW): "); ok {
				a.reportEdit(a.tasks.EditPriority(user.Username, taskID, value), "Task priority updated successfully.")
			}
		case "4":
			if value, ok := a.prompt("Enter the new status (BACKLOG, TODO, DOING, DONE, ARCHIVED): "); ok {
				a.reportEdit(a.tasks.EditStatus(user.Username, taskID, value), "Task status updated successfully.")
			}
		case "5":
			if value, ok := a.prompt("Enter your comment: "); ok {
				_, err := a.tasks.AddComment(user.Username, taskID, value)
				a.reportEdit(err, "Comment added successfully.")
			}
		case "6":
			return
		default:
			a.fail("Invalid choice. Please try again.")
		}
	}
}

func (a *App) reportEdit(err error, successMsg string) {
	if err != nil {
		a.fail(errorMessage(err))
		return
	}
	a.success(successMsg)
}

// errorMessage maps service errors to the messages the menus print. Unknown
// errors pass through verbatim.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidPriority):
		return "Invalid priority."
	case errors.Is(err, models.ErrInvalidStatus):
		return "Invalid status."
	case errors.Is(err, services.ErrUsernameTaken):
		return "This username is already taken."
	case errors.Is(err, services.ErrDuplicateTitle):
		return "A project with this title already exists. Please use a unique title."
	case errors.Is(err, services.ErrAlreadyMember):
		return "This user is already a member of the project."
	case errors.Is(err, services.ErrNotAMember):
		return "This user is not a member of the project."
	case errors.Is(err, services.ErrLeaderNotRemovable):
		return "The project leader cannot be removed."
	case errors.Is(err, services.ErrProjectNotFound):
		return "Project not found or you are not the leader of this project."
	case errors.Is(err, services.ErrNotProjectMember):
		return "Project not found or you are not a member of this project."
	case errors.Is(err, services.ErrTaskNotFound):
		return "Task not found."
	case errors.Is(err, services.ErrUserNotFound):
		return "User not found."
	default:
		return err.Error()
	}
}
