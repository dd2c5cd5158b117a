package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"trellomize/internal/models"
)

// TaskServiceTestSuite covers the task workflow on a project led by alice
// with bob as a member.
type TaskServiceTestSuite struct {
	suite.Suite
	env *testEnv
}

func (s *TaskServiceTestSuite) SetupTest() {
	s.env = setupTestEnv(s.T())

	_, err := s.env.projects.Create(CreateProjectInput{Leader: "alice", Title: "Launch"})
	s.Require().NoError(err)
	s.Require().NoError(s.env.projects.AddMember("alice", "Launch", "bob"))
}

func (s *TaskServiceTestSuite) assignTask(description string) *models.Task {
	task, err := s.env.tasks.Assign(AssignTaskInput{
		Leader:       "alice",
		ProjectTitle: "Launch",
		Assignee:     "bob",
		Description:  description,
	})
	s.Require().NoError(err)
	return task
}

func (s *TaskServiceTestSuite) loadTask(taskID string) models.Task {
	projects, err := s.env.store.LoadProjects()
	s.Require().NoError(err)
	for _, p := range projects {
		for _, t := range p.Tasks {
			if t.ID == taskID {
				return t
			}
		}
	}
	s.Require().FailNow("task not found in store")
	return models.Task{}
}

func (s *TaskServiceTestSuite) TestAssignDefaults() {
	task := s.assignTask("Write spec")

	s.Equal("bob", task.AssignedTo)
	s.Equal(models.PriorityLow, task.Priority)
	s.Equal(models.StatusBacklog, task.Status)
	s.Empty(task.Comments)
	s.True(task.EndTime.Equal(s.env.now.Add(models.LeaseDuration)))
}

func (s *TaskServiceTestSuite) TestAssignToNonMember() {
	_, err := s.env.tasks.Assign(AssignTaskInput{
		Leader:       "alice",
		ProjectTitle: "Launch",
		Assignee:     "carol",
		Description:  "Write spec",
	})
	s.ErrorIs(err, ErrNotAMember)

	projects, err := s.env.store.LoadProjects()
	s.Require().NoError(err)
	s.Empty(projects[0].Tasks)
}

func (s *TaskServiceTestSuite) TestAssignRequiresLeader() {
	_, err := s.env.tasks.Assign(AssignTaskInput{
		Leader:       "bob",
		ProjectTitle: "Launch",
		Assignee:     "bob",
		Description:  "Write spec",
	})
	s.ErrorIs(err, ErrProjectNotFound)
}

func (s *TaskServiceTestSuite) TestEditStatusByAssignee() {
	task := s.assignTask("Write spec")

	s.Require().NoError(s.env.tasks.EditStatus("bob", task.ID, "doing"))
	s.Equal(models.StatusDoing, s.loadTask(task.ID).Status)

	// No transition table: any status may follow any other.
	s.Require().NoError(s.env.tasks.EditStatus("bob", task.ID, "ARCHIVED"))
	s.Require().NoError(s.env.tasks.EditStatus("bob", task.ID, "BACKLOG"))
	s.Equal(models.StatusBacklog, s.loadTask(task.ID).Status)
}

func (s *TaskServiceTestSuite) TestEditStatusInvalidValue() {
	task := s.assignTask("Write spec")

	err := s.env.tasks.EditStatus("bob", task.ID, "FINISHED")
	s.ErrorIs(err, models.ErrInvalidStatus)
	s.Equal(models.StatusBacklog, s.loadTask(task.ID).Status)
}

func (s *TaskServiceTestSuite) TestEditPriorityInvalidValue() {
	task := s.assignTask("Write spec")

	err := s.env.tasks.EditPriority("alice", task.ID, "URGENT")
	s.ErrorIs(err, models.ErrInvalidPriority)
	s.Equal(models.PriorityLow, s.loadTask(task.ID).Priority)
}

func (s *TaskServiceTestSuite) TestEditForbiddenForOtherMember() {
	s.Require().NoError(s.env.projects.AddMember("alice", "Launch", "carol"))
	task := s.assignTask("Write spec")

	// carol is a member but neither leader nor assignee.
	err := s.env.tasks.EditStatus("carol", task.ID, "DONE")
	s.ErrorIs(err, ErrTaskForbidden)

	err = s.env.tasks.EditDescription("carol", task.ID, "hijacked")
	s.ErrorIs(err, ErrTaskForbidden)
	s.Equal("Write spec", s.loadTask(task.ID).Description)
}

func (s *TaskServiceTestSuite) TestEditDescriptionAndDetails() {
	task := s.assignTask("Write spec")

	s.Require().NoError(s.env.tasks.EditDescription("alice", task.ID, "Write the spec"))
	s.Require().NoError(s.env.tasks.EditDetails("bob", task.ID, "Cover all the edge cases"))

	stored := s.loadTask(task.ID)
	s.Equal("Write the spec", stored.Description)
	s.Equal("Cover all the edge cases", stored.Details)
}

func (s *TaskServiceTestSuite) TestEditUnknownTask() {
	err := s.env.tasks.EditStatus("alice", "no-such-task", "DONE")
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestAddComment() {
	task := s.assignTask("Write spec")

	first, err := s.env.tasks.AddComment("bob", task.ID, "started on this")
	s.Require().NoError(err)
	s.Equal("bob", first.Username)
	s.True(first.Timestamp.Equal(s.env.now))

	_, err = s.env.tasks.AddComment("alice", task.ID, "looks good")
	s.Require().NoError(err)

	stored := s.loadTask(task.ID)
	s.Require().Len(stored.Comments, 2)
	s.Equal("started on this", stored.Comments[0].Content)
	s.Equal("looks good", stored.Comments[1].Content)
}

func (s *TaskServiceTestSuite) TestAddCommentForbidden() {
	s.Require().NoError(s.env.projects.AddMember("alice", "Launch", "carol"))
	task := s.assignTask("Write spec")

	_, err := s.env.tasks.AddComment("carol", task.ID, "drive-by")
	s.ErrorIs(err, ErrTaskForbidden)

	_, err = s.env.tasks.AddComment("mallory", task.ID, "outsider")
	s.ErrorIs(err, ErrTaskForbidden)
}

func (s *TaskServiceTestSuite) TestView() {
	task := s.assignTask("Write spec")

	view, err := s.env.tasks.View("bob", task.ID)
	s.Require().NoError(err)
	s.Equal("Launch", view.ProjectTitle)
	s.Equal("alice", view.Leader)
	s.Equal(task.ID, view.Task.ID)

	s.Require().NoError(s.env.projects.AddMember("alice", "Launch", "carol"))
	_, err = s.env.tasks.View("carol", task.ID)
	s.ErrorIs(err, ErrTaskForbidden)
}

func (s *TaskServiceTestSuite) TestTasksByStatusScenario() {
	// alice creates "Launch", adds bob, assigns "Write spec" to bob, and bob
	// moves it to DOING: exactly the DOING bucket holds it afterwards.
	task := s.assignTask("Write spec")
	s.Require().NoError(s.env.tasks.EditStatus("bob", task.ID, "DOING"))

	buckets, err := s.env.tasks.TasksByStatus("bob", "Launch")
	s.Require().NoError(err)

	s.Require().Len(buckets[models.StatusDoing], 1)
	s.Equal(task.ID, buckets[models.StatusDoing][0].ID)
	for _, status := range models.AllStatuses() {
		if status == models.StatusDoing {
			continue
		}
		s.Empty(buckets[status])
	}
}

func (s *TaskServiceTestSuite) TestTasksByStatusPreservesInsertionOrder() {
	first := s.assignTask("first")
	second := s.assignTask("second")
	third := s.assignTask("third")
	s.Require().NoError(s.env.tasks.EditStatus("alice", second.ID, "DONE"))

	buckets, err := s.env.tasks.TasksByStatus("alice", "Launch")
	s.Require().NoError(err)

	backlog := buckets[models.StatusBacklog]
	s.Require().Len(backlog, 2)
	s.Equal(first.ID, backlog[0].ID)
	s.Equal(third.ID, backlog[1].ID)
	s.Require().Len(buckets[models.StatusDone], 1)
}

func (s *TaskServiceTestSuite) TestTasksByStatusMemberGate() {
	_, err := s.env.tasks.TasksByStatus("mallory", "Launch")
	s.ErrorIs(err, ErrNotProjectMember)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
