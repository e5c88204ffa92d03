package presenter

import (
	"strings"
	"time"

	"github.com/trucksimfm/companion/internal/model"
)

// Fallback is the auto-DJ record returned whenever no scheduled presenter is
// on air. It is injected rather than hard-coded so tests and deployments can
// substitute their own.
type Fallback struct {
	Name        string
	Description string
	ShowName    string
	PhotoURL    string
}

// DefaultFallback matches the station's auto-DJ branding.
var DefaultFallback = Fallback{
	Name:        "DJ Cruise Control",
	Description: "Full throttle tunes...",
	ShowName:    "Auto DJ",
	PhotoURL:    "https://trucksim.fm/uploads/DJ_Cruise_Control_62185ad8f6.png",
}

// Resolver decides who is on air at a given instant. It is stateless; every
// call works on the schedule snapshot it is handed.
type Resolver struct {
	fallback     Fallback
	mediaBaseURL string
}

func NewResolver(fallback Fallback, mediaBaseURL string) *Resolver {
	return &Resolver{fallback: fallback, mediaBaseURL: mediaBaseURL}
}

// Resolve returns exactly one LivePresenter for the given schedule and
// instant. It never fails: with no live match it returns the auto-DJ.
//
// All comparisons are in UTC. Recurring shows match on day-of-week plus
// minute-of-day; one-off shows match on the exact calendar date. The window
// is half-open: a show starting this minute is live, one ending this minute
// is not.
func (r *Resolver) Resolve(entries []model.ScheduleEntry, now time.Time) model.LivePresenter {
	now = now.UTC()

	best := -1
	for i := range entries {
		if !isLive(&entries[i], now) {
			continue
		}
		// First live entry wins unless a later one strictly outranks it,
		// which keeps input order as the final tie-break.
		if best < 0 || outranks(&entries[i], &entries[best]) {
			best = i
		}
	}
	if best < 0 {
		return r.AutoDJ()
	}
	return r.render(&entries[best])
}

// AutoDJ returns the fallback result. EndTime stays unset: the auto-DJ has
// no slot boundary.
func (r *Resolver) AutoDJ() model.LivePresenter {
	out := model.LivePresenter{
		Name:        r.fallback.Name,
		Description: r.fallback.Description,
		ShowName:    r.fallback.ShowName,
		IsAutoDJ:    true,
	}
	if r.fallback.PhotoURL != "" {
		url := r.fallback.PhotoURL
		out.PhotoURL = &url
	}
	return out
}

// isLive reports whether the entry's slot contains now.
func isLive(e *model.ScheduleEntry, now time.Time) bool {
	if e.Presenter == nil {
		// a show nobody hosts can never be "live" here
		return false
	}

	nowMin := minuteOfDay(now)
	startMin := minuteOfDay(e.StartTime.UTC())
	endMin := minuteOfDay(e.EndTime.UTC())
	if nowMin < startMin || nowMin >= endMin {
		return false
	}

	if !e.Permanent {
		return sameUTCDate(e.StartTime, now)
	}

	if e.PermanentEnd != nil && e.PermanentEnd.Before(now) {
		// retired recurring show
		return false
	}
	for _, d := range e.ExcludedDates {
		if sameUTCDate(d, now) {
			return false
		}
	}
	return e.StartTime.UTC().Weekday() == now.Weekday()
}

// outranks reports whether a strictly beats b among simultaneously-live
// entries. Ties return false so the earlier entry in input order survives.
//
// Priority: a one-off scheduled for today beats the regular weekly slot;
// then a named show beats an unnamed one; then the slot ending soonest wins,
// on the theory that a sub-slot nested in a larger block is the more specific
// answer to "what is on right now".
func outranks(a, b *model.ScheduleEntry) bool {
	if a.Permanent != b.Permanent {
		return !a.Permanent
	}
	aNamed := strings.TrimSpace(a.ShowName) != ""
	bNamed := strings.TrimSpace(b.ShowName) != ""
	if aNamed != bNamed {
		return aNamed
	}
	return minuteOfDay(a.EndTime.UTC()) < minuteOfDay(b.EndTime.UTC())
}

func (r *Resolver) render(e *model.ScheduleEntry) model.LivePresenter {
	name := e.Presenter.Username
	show := strings.TrimSpace(e.ShowName)
	if show == "" {
		show = "Live with " + name
	}
	end := e.EndTime
	out := model.LivePresenter{
		Name:        name,
		Description: e.Description,
		ShowName:    show,
		EndTime:     &end,
	}
	if p := e.Presenter.ProfilePhotoPath; p != nil && *p != "" {
		url := r.mediaURL(*p)
		out.PhotoURL = &url
	}
	return out
}

// mediaURL resolves a profile photo path against the media base URL. Paths
// the CMS already made absolute pass through untouched.
func (r *Resolver) mediaURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(r.mediaBaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func sameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
