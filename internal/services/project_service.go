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
	// ErrProjectNotFound deliberately conflates "no such project" with "you
	// are not the leader" so leader-only operations do not leak whether a
	// title exists.
	ErrProjectNotFound = errors.New("project not found or you are not the leader")

	// ErrNotProjectMember is the equivalent conflation for member-gated
	// reads.
	ErrNotProjectMember = errors.New("project not found or you are not a member")

	ErrDuplicateTitle     = errors.New("a project with this title already exists")
	ErrTitleRequired      = errors.New("project title is required")
	ErrAlreadyMember      = errors.New("user is already a member of the project")
	ErrNotAMember         = errors.New("user is not a member of the project")
	ErrLeaderNotRemovable = errors.New("the project leader cannot be removed from the member set")
)

// ProjectService handles the project lifecycle: creation, membership,
// deletion and the expiry sweep.
type ProjectService struct {
	store store.Store
	audit *audit.Logger
	now   func() time.Time
}

// NewProjectService creates a new ProjectService.
func NewProjectService(st store.Store, auditLog *audit.Logger) *ProjectService {
	return &ProjectService{
		store: st,
		audit: auditLog,
		now:   func() time.Time { return time.Now().Truncate(time.Second) },
	}
}

// CreateProjectInput represents input for creating a project. Priority and
// Status are free-form strings: values outside the enums silently fall back
// to LOW and BACKLOG rather than rejecting the request.
type CreateProjectInput struct {
	Leader      string
	Title       string
	Description string
	Priority    string
	Status      string
}

// Create adds a new project led by the given user, with a fixed 24h lease.
// The leader is always part of the member set.
func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	projects, err := s.store.LoadProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	for _, p := range projects {
		if p.Title == input.Title {
			return nil, ErrDuplicateTitle
		}
	}

	start := s.now()
	project := models.Project{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Leader:      input.Leader,
		Members:     []string{input.Leader},
		Tasks:       []models.Task{},
		Comments:    []models.Comment{},
		Priority:    models.PriorityOrDefault(input.Priority),
		Status:      models.StatusOrDefault(input.Status),
		StartTime:   start,
		EndTime:     start.Add(models.LeaseDuration),
	}

	projects = append(projects, project)
	if err := s.store.SaveProjects(projects); err != nil {
		return nil, fmt.Errorf("failed to save projects: %w", err)
	}

	s.audit.Record("User %s created a new project: %s", input.Leader, input.Title)
	return &project, nil
}

// AddMember adds a username to the project's member set. Only the recorded
// leader may do this. The username is a weak reference and is not required
// to resolve to a registered user.
func (s *ProjectService) AddMember(leader, title, username string) error {
	projects, err := s.store.LoadProjects()
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	p := findLedProject(projects, title, leader)
	if p == nil {
		return ErrProjectNotFound
	}
	if p.IsMember(username) {
		return ErrAlreadyMember
	}

	p.Members = append(p.Members, username)
	if err := s.store.SaveProjects(projects); err != nil {
		return fmt.Errorf("failed to save projects: %w", err)
	}

	s.audit.Record("User %s added %s to the project %s", leader, username, title)
	return nil
}

// RemoveMember removes a username from the member set. The leader is never
// removable through this path: membership of the leader is an invariant.
func (s *ProjectService) RemoveMember(leader, title, username string) error {
	projects, err := s.store.LoadProjects()
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	p := findLedProject(projects, title, leader)
	if p == nil {
		return ErrProjectNotFound
	}
	if username == p.Leader {
		return ErrLeaderNotRemovable
	}
	if !p.IsMember(username) {
		return ErrNotAMember
	}

	members := make([]string, 0, len(p.Members)-1)
	for _, m := range p.Members {
		if m != username {
			members = append(members, m)
		}
	}
	p.Members = members

	if err := s.store.SaveProjects(projects); err != nil {
		return fmt.Errorf("failed to save projects: %w", err)
	}

	s.audit.Record("User %s removed %s from the project %s", leader, username, title)
	return nil
}

// Delete removes a project and everything it owns. Leader-only,
// irreversible.
func (s *ProjectService) Delete(leader, title string) error {
	projects, err := s.store.LoadProjects()
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	for i := range projects {
		if projects[i].Title != title || !projects[i].IsLeader(leader) {
			continue
		}
		projects = append(projects[:i], projects[i+1:]...)
		if err := s.store.SaveProjects(projects); err != nil {
			return fmt.Errorf("failed to save projects: %w", err)
		}
		s.audit.Record("User %s deleted the project %s", leader, title)
		return nil
	}

	return ErrProjectNotFound
}

// SweepExpired removes every project whose lease has run out at the given
// time and returns how many were removed. It is run once at process start;
// there is no background timer.
func (s *ProjectService) SweepExpired(now time.Time) (int, error) {
	projects, err := s.store.LoadProjects()
	if err != nil {
		return 0, fmt.Errorf("failed to load projects: %w", err)
	}

	kept := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if !p.Expired(now) {
			kept = append(kept, p)
		}
	}

	removed := len(projects) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.store.SaveProjects(kept); err != nil {
		return 0, fmt.Errorf("failed to save projects: %w", err)
	}

	s.audit.Record("Removed %d expired project(s)", removed)
	return removed, nil
}

// ListLed returns the projects the user leads, in stored order.
func (s *ProjectService) ListLed(username string) ([]models.Project, error) {
	projects, err := s.store.LoadProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	led := []models.Project{}
	for _, p := range projects {
		if p.IsLeader(username) {
			led = append(led, p)
		}
	}
	return led, nil
}

// ListMember returns the projects the user belongs to, in stored order.
// Projects the user leads are included since the leader is always a member.
func (s *ProjectService) ListMember(username string) ([]models.Project, error) {
	projects, err := s.store.LoadProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	member := []models.Project{}
	for _, p := range projects {
		if p.IsMember(username) || p.IsLeader(username) {
			member = append(member, p)
		}
	}
	return member, nil
}

// View returns a project's full detail. Readable by members and the leader.
func (s *ProjectService) View(actor, title string) (*models.Project, error) {
	projects, err := s.store.LoadProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	for i := range projects {
		if projects[i].Title != title {
			continue
		}
		if !projects[i].IsMember(actor) && !projects[i].IsLeader(actor) {
			return nil, ErrNotProjectMember
		}
		return &projects[i], nil
	}

	return nil, ErrNotProjectMember
}

// findLedProject returns a pointer into the slice for the project with the
// given title led by the given user, or nil.
func findLedProject(projects []models.Project, title, leader string) *models.Project {
	for i := range projects {
		if projects[i].Title == title && projects[i].IsLeader(leader) {
			return &projects[i]
		}
	}
	return nil
}
