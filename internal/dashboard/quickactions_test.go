package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/dashboard/internal/domain"
	"example.com/dashboard/internal/feed"
	"example.com/dashboard/internal/persistence/memory"
)

var sarah = domain.Actor{Name: "Sarah Chen", Avatar: "/avatars/sarah.jpg"}

func newTestService(t *testing.T) (*Service, *feed.Store, *memory.TaskRepository) {
	t.Helper()
	store := feed.NewStore(feed.DefaultBound)
	tasks := memory.NewTaskRepository()
	fixed := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(tasks, LocalRecorder{Sink: store}, WithClock(func() time.Time { return fixed }))
	return svc, store, tasks
}

func TestCreateTaskPersistsAndRecordsActivity(t *testing.T) {
	svc, store, tasks := newTestService(t)

	result, err := svc.Execute(context.Background(), sarah, ActionCreateTask, ActionInput{Title: " Ship beta ", Description: "cut the build"})
	require.NoError(t, err)
	require.NotNil(t, result.Task)
	require.Equal(t, "Ship beta", result.Task.Title)

	stored, err := tasks.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "Sarah Chen", stored[0].CreatedBy)

	head := store.Snapshot()[0]
	require.Equal(t, domain.KindTask, head.Kind)
	require.Equal(t, "created", head.Action)
	require.Equal(t, "Ship beta", head.Target)
	require.Equal(t, sarah, head.Actor)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Execute(context.Background(), sarah, ActionCreateTask, ActionInput{Title: "   "})
	require.ErrorIs(t, err, ErrTitleRequired)
	require.Zero(t, store.Len())
}

func TestMeetingAndCampaignDefaults(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Execute(context.Background(), sarah, ActionStartMeeting, ActionInput{})
	require.NoError(t, err)
	_, err = svc.Execute(context.Background(), sarah, ActionNewCampaign, ActionInput{Title: "Spring Launch"})
	require.NoError(t, err)

	snap := store.Snapshot()
	require.Equal(t, domain.KindProject, snap[0].Kind)
	require.Equal(t, "Spring Launch", snap[0].Target)
	require.Equal(t, domain.KindMeeting, snap[1].Kind)
	require.Equal(t, "Team Meeting", snap[1].Target)
}

func TestUnknownAction(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Execute(context.Background(), sarah, "order_pizza", ActionInput{})
	require.ErrorIs(t, err, ErrUnknownAction)
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, domain.ActivityRecord) error {
	return errors.New("broker down")
}

func TestRecorderFailureIsReported(t *testing.T) {
	svc := NewService(memory.NewTaskRepository(), failingRecorder{})
	_, err := svc.Execute(context.Background(), sarah, ActionStartMeeting, ActionInput{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "broker down")
}

func TestCreateTaskSurvivesRecorderFailure(t *testing.T) {
	tasks := memory.NewTaskRepository()
	svc := NewService(tasks, failingRecorder{})

	result, err := svc.Execute(context.Background(), sarah, ActionCreateTask, ActionInput{Title: "Draft brief"})
	require.NoError(t, err)
	require.NotNil(t, result.Task)
	require.Equal(t, "Draft brief", result.Task.Title)
	require.Equal(t, domain.KindTask, result.Activity.Kind)

	stored, err := tasks.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, result.Task.ID, stored[0].ID)
}
