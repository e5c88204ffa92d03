package presenter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trucksimfm/companion/internal/model"
)

type stubSource struct {
	entries []model.ScheduleEntry
	err     error
}

func (s *stubSource) Schedule(ctx context.Context) ([]model.ScheduleEntry, error) {
	return s.entries, s.err
}

type stubOverrides struct {
	forced *model.LivePresenter
	err    error
}

func (s *stubOverrides) ActiveOverride(ctx context.Context) (*model.LivePresenter, error) {
	return s.forced, s.err
}

func TestServiceDegradesToAutoDJOnFetchFailure(t *testing.T) {
	svc := NewService(&stubSource{err: errors.New("upstream down")}, nil, testResolver())

	got := svc.At(context.Background(), at(monday, 10, 30))
	if !got.IsAutoDJ {
		t.Fatalf("fetch failure must resolve to auto-DJ, got %+v", got)
	}
}

func TestServiceResolvesFromFetchedSchedule(t *testing.T) {
	src := &stubSource{entries: []model.ScheduleEntry{weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0)}}
	svc := NewService(src, nil, testResolver())

	got := svc.At(context.Background(), at(monday, 10, 30))
	if got.Name != "Alice" {
		t.Fatalf("got %+v", got)
	}
}

func TestServiceOverrideBeatsSchedule(t *testing.T) {
	src := &stubSource{entries: []model.ScheduleEntry{weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0)}}
	end := at(monday, 12, 0)
	forced := &model.LivePresenter{Name: "Charlie", ShowName: "Emergency Broadcast", EndTime: &end}
	svc := NewService(src, &stubOverrides{forced: forced}, testResolver())

	got := svc.At(context.Background(), at(monday, 10, 30))
	if got.Name != "Charlie" {
		t.Fatalf("override should win, got %+v", got)
	}
}

func TestServiceIgnoresOverrideLookupFailure(t *testing.T) {
	src := &stubSource{entries: []model.ScheduleEntry{weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0)}}
	svc := NewService(src, &stubOverrides{err: errors.New("redis down")}, testResolver())

	got := svc.At(context.Background(), at(monday, 10, 30))
	if got.Name != "Alice" {
		t.Fatalf("override failure must fall through to the schedule, got %+v", got)
	}
}

func TestServiceAppliesFetchDeadline(t *testing.T) {
	src := &deadlineSource{}
	svc := NewService(src, nil, testResolver())
	svc.At(context.Background(), time.Now())

	if !src.sawDeadline {
		t.Fatal("schedule fetch ran without a deadline")
	}
}

type deadlineSource struct {
	sawDeadline bool
}

func (d *deadlineSource) Schedule(ctx context.Context) ([]model.ScheduleEntry, error) {
	_, d.sawDeadline = ctx.Deadline()
	return nil, nil
}
