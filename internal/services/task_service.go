package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trellomize/internal/audit"
	"trellomize/internal/models"
	"trellomize/internal/store"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskForbidden       = errors.New("you are not the project leader or the task assignee")
	ErrDescriptionRequired = errors.New("task description is required")
)

// TaskService handles the task workflow: assignment, field edits, comments
// and status reporting.
type TaskService struct {
	store store.Store
	audit *audit.Logger
	now   func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(st store.Store, auditLog *audit.Logger) *TaskService {
	return &TaskService{
		store: st,
		audit: auditLog,
		now:   func() time.Time { return time.Now().Truncate(time.Second) },
	}
}

// AssignTaskInput represents input for assigning a new task.
type AssignTaskInput struct {
	Leader       string
	ProjectTitle string
	Assignee     string
	Description  string
	Details      string
}

// Assign creates a task on the project and hands it to a member. Only the
// leader may assign, and only to an existing member. New tasks start at LOW
// priority and BACKLOG status with a fixed 24h lease.
func (s *TaskService) Assign(input AssignTaskInput) (*models.Task, error) {
	if input.Description == "" {
		return nil, ErrDescriptionRequired
	}

	projects, err := s.store.LoadProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	p := findLedProject(projects, input.ProjectTitle, input.Leader)
	if p == nil {
		return nil, ErrProjectNotFound
	}
	if !p.IsMember(input.Assignee) {
		return nil, ErrNotAMember
	}

	start := s.now()
	task := models.Task{
		ID:          uuid.NewString(),
		Description: input.Description,
		Details:     input.Details,
		AssignedTo:  input.Assignee,
		Priority:    models.PriorityLow,
		Status:      models.StatusBacklog,
		Comments:    []models.Comment{},
		StartTime:   start,
		EndTime:     start.Add(models.LeaseDuration),
	}

	p.Tasks = append(p.Tasks, task)
	if err := s.store.SaveProjects(projects); err != nil {
		return nil, fmt.Errorf("failed to save projects: %w", err)
	}

	s.audit.Record("User %s assigned task %s to %s", input.Leader, input.Description, input.Assignee)
	return &task, nil
}

// TaskView is a read model of a task together with its owning project.
type TaskView struct {
	ProjectID    string
	ProjectTitle string
	Leader       string
	Task         models.Task
}

// View returns a task's detail. Readable only by the task assignee or the
// project leader; the same predicate gates every mutation.
func (s *TaskService) View(actor, taskID string) (*TaskView, error) {
	projects, err := s.store.LoadProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	p, task := findTask(projects, taskID)
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if !canEditTask(p, task, actor) {
		return nil, ErrTaskForbidden
	}

	return &TaskView{
		ProjectID:    p.ID,
		ProjectTitle: p.Title,
		Leader:       p.Leader,
		Task:         *task,
	}, nil
}

// EditDescription replaces the task's description. Permitted for the
// project leader and the assignee.
func (s *TaskService) EditDescription(actor, taskID, newDescription string) error {
	if newDescription == "" {
		return ErrDescriptionRequired
	}
	return s.editTask(actor, taskID, func(task *models.Task) string {
		old := task.Description
		task.Description = newDescription
		return fmt.Sprintf("%s's description changed to %s", old, newDescription)
	})
}

// EditDetails replaces the task's free-form details field.
func (s *TaskService) EditDetails(actor, taskID, newDetails string) error {
	return s.editTask(actor, taskID, func(task *models.Task) string {
		task.Details = newDetails
		return fmt.Sprintf("%s's details changed to %s", task.Description, newDetails)
	})
}

// EditPriority sets the task priority. Unlike project creation, a value
// outside the enum is rejected, not defaulted.
func (s *TaskService) EditPriority(actor, taskID, newPriority string) error {
	priority, err := models.ParsePriority(newPriority)
	if err != nil {
		return err
	}
	return s.editTask(actor, taskID, func(task *models.Task) string {
		task.Priority = priority
		return fmt.Sprintf("Task %s priority has been updated to %s", task.Description, priority)
	})
}

// EditStatus sets the task status. Any of the five statuses may be set in
// any order; there is no transition table. Values outside the enum are
// rejected.
func (s *TaskService) EditStatus(actor, taskID, newStatus string) error {
	status, err := models.ParseStatus(newStatus)
	if err != nil {
		return err
	}
	return s.editTask(actor, taskID, func(task *models.Task) string {
		task.Status = status
		return fmt.Sprintf("Task %s status has been updated to %s", task.Description, status)
	})
}

// AddComment appends a comment to the task. The actor must be a project
// member and additionally either the assignee or the leader. The timestamp
// is generated at append time.
func (s *TaskService) AddComment(actor, taskID, content string) (*models.Comment, error) {
	projects, err := s.store.LoadProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	p, task := findTask(projects, taskID)
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if !p.IsMember(actor) || !canEditTask(p, task, actor) {
		return nil, ErrTaskForbidden
	}

	comment := models.Comment{
		Timestamp: s.now(),
		Username:  actor,
		Content:   content,
	}
	task.Comments = append(task.Comments, comment)

	if err := s.store.SaveProjects(projects); err != nil {
		return nil, fmt.Errorf("failed to save projects: %w", err)
	}

	s.audit.Record("Comment was added on task %s", task.Description)
	return &comment, nil
}

// TasksByStatus partitions a project's tasks into the five status buckets,
// preserving insertion order within each bucket. Readable by members and
// the leader.
func (s *TaskService) TasksByStatus(actor, projectTitle string) (map[models.Status][]models.Task, error) {
	projects, err := s.store.LoadProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	for i := range projects {
		if projects[i].Title != projectTitle {
			continue
		}
		if !projects[i].IsMember(actor) && !projects[i].IsLeader(actor) {
			return nil, ErrNotProjectMember
		}
		return partitionByStatus(projects[i].Tasks), nil
	}

	return nil, ErrNotProjectMember
}

func partitionByStatus(tasks []models.Task) map[models.Status][]models.Task {
	buckets := make(map[models.Status][]models.Task, 5)
	for _, status := range models.AllStatuses() {
		buckets[status] = []models.Task{}
	}
	for _, t := range tasks {
		buckets[t.Status] = append(buckets[t.Status], t)
	}
	return buckets
}

// editTask runs the load / authorize / mutate / save cycle shared by the
// field editors. mutate returns the audit line for the change.
func (s *TaskService) editTask(actor, taskID string, mutate func(task *models.Task) string) error {
	projects, err := s.store.LoadProjects()
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	p, task := findTask(projects, taskID)
	if task == nil {
		return ErrTaskNotFound
	}
	if !canEditTask(p, task, actor) {
		return ErrTaskForbidden
	}

	line := mutate(task)

	if err := s.store.SaveProjects(projects); err != nil {
		return fmt.Errorf("failed to save projects: %w", err)
	}

	s.audit.Record("%s", line)
	return nil
}

// canEditTask is the shared authorization predicate for viewing and
// mutating a task. Usernames are weak references, so this is a pure string
// comparison with no user lookup.
func canEditTask(p *models.Project, task *models.Task, actor string) bool {
	return p.IsLeader(actor) || task.AssignedTo == actor
}

// findTask locates a task by ID across all projects and returns the owning
// project and the task, or nils.
func findTask(projects []models.Project, taskID string) (*models.Project, *models.Task) {
	for i := range projects {
		if task := projects[i].FindTask(taskID); task != nil {
			return &projects[i], task
		}
	}
	return nil, nil
}
