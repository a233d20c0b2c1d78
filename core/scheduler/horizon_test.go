package scheduler

import (
	"testing"
	"time"

	"github.com/inventree-tools/crewplan/core/model"
)

func day(offset int) string {
	return testToday.AddDate(0, 0, offset).Format(model.DateLayout)
}

func TestHorizonFromLatestDeadline(t *testing.T) {
	tasks := []model.Task{
		{TargetDate: day(2)},
		{TargetDate: day(5)},
		{}, // no deadline
	}
	h := horizonDays(tasks, testToday, 7, ModeMultiDay)
	if h != 5+7+1 {
		t.Fatalf("expected 13 got %d", h)
	}
}

func TestHorizonWithoutDeadlines(t *testing.T) {
	tasks := []model.Task{{}, {}}
	if h := horizonDays(tasks, testToday, 7, ModeSingleDay); h != 1 {
		t.Fatalf("single-day horizon must be 1, got %d", h)
	}
	if h := horizonDays(tasks, testToday, 7, ModeMultiDay); h != 8 {
		t.Fatalf("multi-day horizon defaults to padding+1, got %d", h)
	}
}

func TestHorizonPastDeadlineClampsToOne(t *testing.T) {
	tasks := []model.Task{{TargetDate: day(-30)}}
	if h := horizonDays(tasks, testToday, 0, ModeMultiDay); h != 1 {
		t.Fatalf("expected clamp to 1 got %d", h)
	}
}

func TestStartDayClampsToHorizonEnd(t *testing.T) {
	// a deadline beyond the horizon forces the last index even though it
	// is nominally still too early; this is the documented safety
	// fallback, not regular behavior
	task := model.Task{TargetDate: day(5)}
	if s := startDay(task, testToday, 3); s != 2 {
		t.Fatalf("expected clamp to 2 got %d", s)
	}
}

func TestStartDayPastDeadlineAllowsToday(t *testing.T) {
	task := model.Task{TargetDate: day(-3)}
	if s := startDay(task, testToday, 5); s != 0 {
		t.Fatalf("expected 0 got %d", s)
	}
}

func TestStartDayUnparsableDateMeansNoDeadline(t *testing.T) {
	task := model.Task{TargetDate: "sometime"}
	if s := startDay(task, testToday, 5); s != 0 {
		t.Fatalf("expected 0 got %d", s)
	}
}

func TestEligibilitySubstringCaseInsensitive(t *testing.T) {
	staff := []model.Staff{
		{ID: "s1", Location: "Chennai Workshop"},
		{ID: "s2", Location: "Avadi"},
		{ID: "s3"},
	}
	got, err := eligibleStaff(model.Task{Location: "chennai"}, staff, PolicyStrict)
	if err != nil {
		t.Fatalf("eligible: %v", err)
	}
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected only s1, got %v", got)
	}
}

func TestEligibilityEmptyLocationOpensRoster(t *testing.T) {
	staff := []model.Staff{{ID: "s1", Location: "delhi"}, {ID: "s2"}}
	got, err := eligibleStaff(model.Task{}, staff, PolicyStrict)
	if err != nil {
		t.Fatalf("eligible: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected full roster, got %v", got)
	}
}

func TestTodayTruncates(t *testing.T) {
	noon := time.Date(2026, 8, 31, 12, 30, 0, 0, time.UTC)
	if !Today(noon).Equal(testToday) {
		t.Fatalf("expected midnight truncation")
	}
}
