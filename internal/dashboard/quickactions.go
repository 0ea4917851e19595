package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"example.com/dashboard/internal/domain"
	"example.com/dashboard/internal/feed"
	"example.com/dashboard/internal/observability"
)

var (
	// ErrUnknownAction is returned for quick action ids that do not exist.
	ErrUnknownAction = errors.New("unknown quick action")
	// ErrTitleRequired is returned when creating a task without a title.
	ErrTitleRequired = errors.New("task title is required")
)

// Quick action identifiers.
const (
	ActionCreateTask   = "create_task"
	ActionStartMeeting = "start_meeting"
	ActionNewCampaign  = "new_campaign"
)

// QuickAction is one button in the quick actions widget.
type QuickAction struct {
	ID    string
	Title string
	Icon  string
	Color string
}

// QuickActions lists the widget buttons in display order.
var QuickActions = []QuickAction{
	{ID: ActionCreateTask, Title: "Create Task", Icon: "/icons/task.svg", Color: "blue"},
	{ID: ActionStartMeeting, Title: "Start Meeting", Icon: "/icons/meeting.svg", Color: "green"},
	{ID: ActionNewCampaign, Title: "New Campaign", Icon: "/icons/campaign.svg", Color: "purple"},
}

// ActivityRecorder delivers activity produced by quick actions to the feed.
type ActivityRecorder interface {
	Record(ctx context.Context, record domain.ActivityRecord) error
}

// LocalRecorder hands records straight to an in-process feed sink.
type LocalRecorder struct {
	Sink feed.Sink
}

// Record implements ActivityRecorder.
func (r LocalRecorder) Record(_ context.Context, record domain.ActivityRecord) error {
	r.Sink.OnNewActivity(record)
	return nil
}

// ActionInput carries the optional form fields of a quick action.
type ActionInput struct {
	Title       string
	Description string
}

// ActionResult reports what a quick action produced.
type ActionResult struct {
	Activity domain.ActivityRecord
	Task     *domain.Task
}

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithLogger overrides the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service executes quick actions.
type Service struct {
	tasks    domain.TaskRepository
	recorder ActivityRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewService constructs a Service.
func NewService(tasks domain.TaskRepository, recorder ActivityRecorder, opts ...Option) *Service {
	s := &Service{
		tasks:    tasks,
		recorder: recorder,
		logger:   zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs the quick action identified by actionID on behalf of actor.
func (s *Service) Execute(ctx context.Context, actor domain.Actor, actionID string, input ActionInput) (result *ActionResult, err error) {
	defer func() {
		label := actionID
		if errors.Is(err, ErrUnknownAction) {
			label = "unknown"
		}
		observability.RecordQuickAction(label, err)
	}()

	now := s.now()
	title := strings.TrimSpace(input.Title)

	record := domain.ActivityRecord{
		ID:         feed.NewID(now),
		Actor:      actor,
		OccurredAt: now,
	}
	result = &ActionResult{}

	switch actionID {
	case ActionCreateTask:
		if title == "" {
			return nil, ErrTitleRequired
		}
		task := domain.Task{
			ID:          uuid.NewString(),
			Title:       title,
			Description: strings.TrimSpace(input.Description),
			CreatedBy:   actor.Name,
			CreatedAt:   now,
		}
		if err := s.tasks.Create(ctx, task); err != nil {
			return nil, fmt.Errorf("create task: %w", err)
		}
		result.Task = &task
		record.Kind = domain.KindTask
		record.Action = "created"
		record.Target = title
	case ActionStartMeeting:
		record.Kind = domain.KindMeeting
		record.Action = "started"
		record.Target = orDefault(title, "Team Meeting")
	case ActionNewCampaign:
		record.Kind = domain.KindProject
		record.Action = "launched"
		record.Target = orDefault(title, "New Campaign")
	default:
		return nil, ErrUnknownAction
	}

	if err := s.recorder.Record(ctx, record); err != nil {
		// Once the task is persisted the action succeeds even if its activity is lost.
		if result.Task == nil {
			return nil, fmt.Errorf("record activity: %w", err)
		}
		s.logger.Warn("task created but activity not recorded",
			zap.String("task_id", result.Task.ID),
			zap.String("activity_id", record.ID),
			zap.Error(err))
	}
	s.logger.Info("quick action executed",
		zap.String("action", actionID),
		zap.String("actor", actor.Name),
		zap.String("activity_id", record.ID))

	result.Activity = record
	return result, nil
}

// Tasks lists the most recent tasks.
func (s *Service) Tasks(ctx context.Context, limit int) ([]domain.Task, error) {
	return s.tasks.List(ctx, limit)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
