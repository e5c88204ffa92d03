package presenter

import (
	"testing"
	"time"

	"github.com/trucksimfm/companion/internal/model"
)

// Monday 2025-06-02, used as the anchor week throughout.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, time.UTC)
}

func weekly(show, username string, day time.Time, startHour, startMin, endHour, endMin int) model.ScheduleEntry {
	return model.ScheduleEntry{
		ShowName:  show,
		StartTime: at(day, startHour, startMin),
		EndTime:   at(day, endHour, endMin),
		Permanent: true,
		Presenter: &model.Presenter{Username: username},
	}
}

func oneOff(show, username string, day time.Time, startHour, startMin, endHour, endMin int) model.ScheduleEntry {
	e := weekly(show, username, day, startHour, startMin, endHour, endMin)
	e.Permanent = false
	return e
}

func testResolver() *Resolver {
	return NewResolver(DefaultFallback, "https://trucksim.fm")
}

func TestResolveEmptyScheduleFallsBackToAutoDJ(t *testing.T) {
	got := testResolver().Resolve(nil, at(monday, 10, 30))
	if !got.IsAutoDJ {
		t.Fatalf("expected auto-DJ, got %+v", got)
	}
	if got.Name != "DJ Cruise Control" {
		t.Errorf("fallback name = %q", got.Name)
	}
	if got.EndTime != nil {
		t.Errorf("fallback must not carry an end time, got %v", got.EndTime)
	}
}

func TestResolveWeeklyShowWithinWindow(t *testing.T) {
	entries := []model.ScheduleEntry{weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0)}

	got := testResolver().Resolve(entries, at(monday, 10, 30))
	if got.IsAutoDJ {
		t.Fatal("expected a live presenter, got auto-DJ")
	}
	if got.Name != "Alice" {
		t.Errorf("name = %q, want Alice", got.Name)
	}
	if got.ShowName != "Morning Haul" {
		t.Errorf("show = %q", got.ShowName)
	}
	if got.EndTime == nil || !got.EndTime.Equal(at(monday, 11, 0)) {
		t.Errorf("end time = %v, want 11:00", got.EndTime)
	}
}

func TestResolveWindowIsHalfOpen(t *testing.T) {
	entries := []model.ScheduleEntry{weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0)}
	r := testResolver()

	if got := r.Resolve(entries, at(monday, 10, 0)); got.IsAutoDJ {
		t.Error("show starting this exact minute should be live")
	}
	if got := r.Resolve(entries, at(monday, 11, 0)); !got.IsAutoDJ {
		t.Error("show ending this exact minute should not be live")
	}
	if got := r.Resolve(entries, at(monday, 9, 59)); !got.IsAutoDJ {
		t.Error("one minute before start should not be live")
	}
}

func TestResolveWeeklyShowOnlyMatchesItsWeekday(t *testing.T) {
	entries := []model.ScheduleEntry{weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0)}

	tuesday := monday.AddDate(0, 0, 1)
	if got := testResolver().Resolve(entries, at(tuesday, 10, 30)); !got.IsAutoDJ {
		t.Fatalf("Monday show matched on Tuesday: %+v", got)
	}
	// same weekday one week later still matches
	nextMonday := monday.AddDate(0, 0, 7)
	if got := testResolver().Resolve(entries, at(nextMonday, 10, 30)); got.Name != "Alice" {
		t.Fatalf("recurring show did not match the following week: %+v", got)
	}
}

func TestResolveOneOffOutranksWeekly(t *testing.T) {
	entries := []model.ScheduleEntry{
		weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0),
		oneOff("Convoy Special", "Bob", monday, 10, 0, 10, 30),
	}

	got := testResolver().Resolve(entries, at(monday, 10, 15))
	if got.Name != "Bob" {
		t.Fatalf("one-off should outrank the weekly slot, got %q", got.Name)
	}

	// after the one-off ends the weekly slot is back
	got = testResolver().Resolve(entries, at(monday, 10, 45))
	if got.Name != "Alice" {
		t.Fatalf("weekly slot should resume, got %q", got.Name)
	}
}

func TestResolveOneOffOnlyMatchesItsDate(t *testing.T) {
	entries := []model.ScheduleEntry{oneOff("Convoy Special", "Bob", monday, 10, 0, 11, 0)}

	nextMonday := monday.AddDate(0, 0, 7)
	if got := testResolver().Resolve(entries, at(nextMonday, 10, 30)); !got.IsAutoDJ {
		t.Fatalf("one-off matched a week later: %+v", got)
	}
}

func TestResolveExpiredPermanentShowNeverMatches(t *testing.T) {
	e := weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0)
	lastSunday := at(monday.AddDate(0, 0, -1), 23, 59)
	e.PermanentEnd = &lastSunday

	got := testResolver().Resolve([]model.ScheduleEntry{e}, at(monday, 10, 30))
	if !got.IsAutoDJ {
		t.Fatalf("expired show resolved as live: %+v", got)
	}
}

func TestResolvePermanentEndInFutureStillMatches(t *testing.T) {
	e := weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0)
	nextYear := monday.AddDate(1, 0, 0)
	e.PermanentEnd = &nextYear

	got := testResolver().Resolve([]model.ScheduleEntry{e}, at(monday, 10, 30))
	if got.Name != "Alice" {
		t.Fatalf("future expiry should not retire the show: %+v", got)
	}
}

func TestResolveExcludedDateSkipsOccurrence(t *testing.T) {
	e := weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0)
	e.ExcludedDates = []time.Time{monday}

	r := testResolver()
	if got := r.Resolve([]model.ScheduleEntry{e}, at(monday, 10, 30)); !got.IsAutoDJ {
		t.Fatalf("excluded date resolved as live: %+v", got)
	}
	// next week's occurrence is unaffected
	nextMonday := monday.AddDate(0, 0, 7)
	if got := r.Resolve([]model.ScheduleEntry{e}, at(nextMonday, 10, 30)); got.Name != "Alice" {
		t.Fatalf("exclusion leaked into the following week: %+v", got)
	}
}

func TestResolveEntryWithoutPresenterIsNeverLive(t *testing.T) {
	e := weekly("Ghost Hour", "", monday, 10, 0, 11, 0)
	e.Presenter = nil

	got := testResolver().Resolve([]model.ScheduleEntry{e}, at(monday, 10, 30))
	if !got.IsAutoDJ {
		t.Fatalf("presenter-less entry selected: %+v", got)
	}
}

func TestResolveNamedShowOutranksUnnamed(t *testing.T) {
	entries := []model.ScheduleEntry{
		weekly("", "Alice", monday, 10, 0, 11, 0),
		weekly("Midday Mix", "Bob", monday, 10, 0, 11, 0),
	}

	got := testResolver().Resolve(entries, at(monday, 10, 30))
	if got.Name != "Bob" {
		t.Fatalf("named show should win, got %q", got.Name)
	}
}

func TestResolveSoonestEndWinsAmongEqualRank(t *testing.T) {
	entries := []model.ScheduleEntry{
		weekly("Drive Block", "Alice", monday, 8, 0, 14, 0),
		weekly("Lunch Slot", "Bob", monday, 10, 0, 11, 0),
	}

	got := testResolver().Resolve(entries, at(monday, 10, 30))
	if got.Name != "Bob" {
		t.Fatalf("narrower slot should win, got %q", got.Name)
	}
}

func TestResolveFullTieKeepsInputOrder(t *testing.T) {
	entries := []model.ScheduleEntry{
		weekly("Slot A", "Alice", monday, 10, 0, 11, 0),
		weekly("Slot B", "Bob", monday, 10, 0, 11, 0),
	}

	r := testResolver()
	got := r.Resolve(entries, at(monday, 10, 30))
	if got.Name != "Alice" {
		t.Fatalf("deterministic tie-break should keep the first entry, got %q", got.Name)
	}
	// same schedule, same instant, same answer
	for i := 0; i < 5; i++ {
		if again := r.Resolve(entries, at(monday, 10, 30)); again.Name != got.Name {
			t.Fatal("resolution is not deterministic")
		}
	}
}

func TestResolveSynthesizesShowNameWhenEmpty(t *testing.T) {
	entries := []model.ScheduleEntry{weekly("  ", "Alice", monday, 10, 0, 11, 0)}

	got := testResolver().Resolve(entries, at(monday, 10, 30))
	if got.ShowName != "Live with Alice" {
		t.Fatalf("show name = %q, want synthesized label", got.ShowName)
	}
}

func TestResolvePhotoURLResolution(t *testing.T) {
	rel := "/uploads/alice.png"
	abs := "https://cdn.example.com/alice.png"

	cases := []struct {
		name string
		path *string
		want string
	}{
		{"relative path joins media base", &rel, "https://trucksim.fm/uploads/alice.png"},
		{"absolute path passes through", &abs, abs},
		{"missing photo stays nil", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0)
			e.Presenter.ProfilePhotoPath = tc.path

			got := testResolver().Resolve([]model.ScheduleEntry{e}, at(monday, 10, 30))
			if tc.want == "" {
				if got.PhotoURL != nil {
					t.Fatalf("photo url = %q, want nil", *got.PhotoURL)
				}
				return
			}
			if got.PhotoURL == nil || *got.PhotoURL != tc.want {
				t.Fatalf("photo url = %v, want %q", got.PhotoURL, tc.want)
			}
		})
	}
}

func TestResolveIgnoresCallerTimezone(t *testing.T) {
	entries := []model.ScheduleEntry{weekly("Morning Haul", "Alice", monday, 10, 0, 11, 0)}

	// 12:30 in UTC+2 is 10:30 UTC, inside the window
	local := time.FixedZone("CEST", 2*3600)
	now := time.Date(monday.Year(), monday.Month(), monday.Day(), 12, 30, 0, 0, local)

	got := testResolver().Resolve(entries, now)
	if got.Name != "Alice" {
		t.Fatalf("resolution must be UTC-based, got %+v", got)
	}
}
