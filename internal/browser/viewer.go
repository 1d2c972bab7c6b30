package browser

import (
	"context"

	"go.uber.org/zap"

	"github.com/vidyasagar/hike/internal/location"
)

// Event reports a change in a Viewer's state to whoever displays or
// persists it.
type Event interface {
	viewerEvent()
}

// LocationChanged is emitted when the displayed location changes.
type LocationChanged struct {
	Location location.Location
}

// HistoryChanged is emitted when history entries are added or removed.
type HistoryChanged struct {
	Entries []location.Location
	Cursor  int
}

// HistoryVisited is emitted when the history cursor moves without the
// entries changing.
type HistoryVisited struct {
	Cursor int
}

func (LocationChanged) viewerEvent() {}
func (HistoryChanged) viewerEvent()  {}
func (HistoryVisited) viewerEvent()  {}

// LoadTask is a pending load for a Viewer. Run it off the interactive loop
// and hand the result back to Viewer.Apply.
type LoadTask struct {
	Token    uint64
	Location location.Location
	Forge    *location.ForgeRequest
	Remember bool

	ctx      context.Context
	loader   *Loader
	resolver *ForgeResolver
}

// LoadResult is the outcome of a LoadTask.
type LoadResult struct {
	Token    uint64
	Location location.Location
	Remember bool
	Content  Content
	Err      error
}

// Run performs the load. It blocks and may be called from any goroutine.
func (t *LoadTask) Run() LoadResult {
	res := LoadResult{Token: t.Token, Location: t.Location, Remember: t.Remember}
	if t.Forge != nil {
		loc, err := t.resolver.Resolve(t.ctx, *t.Forge)
		if err != nil {
			res.Err = err
			return res
		}
		res.Location = loc
	}
	res.Content, res.Err = t.loader.Load(t.ctx, res.Location)
	return res
}

// Viewer holds the navigation state of one viewing surface: the displayed
// location, its history, and the single load allowed in flight. Starting a
// load cancels the previous one, and results from a superseded load are
// ignored by Apply.
//
// Viewer is not safe for concurrent use; only LoadTask.Run may leave the
// interactive loop.
type Viewer struct {
	loader   *Loader
	resolver *ForgeResolver
	history  *History[location.Location]
	logger   *zap.Logger

	current location.Location
	token   uint64
	cancel  context.CancelFunc
}

// NewViewer creates a Viewer over history. A nil history starts empty.
func NewViewer(loader *Loader, resolver *ForgeResolver, history *History[location.Location], logger *zap.Logger) *Viewer {
	if history == nil {
		history = NewHistory[location.Location](DefaultHistoryLength)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Viewer{loader: loader, resolver: resolver, history: history, logger: logger}
}

// Location returns the displayed location.
func (v *Viewer) Location() location.Location { return v.current }

// History returns the viewer's history. Callers must not mutate it.
func (v *Viewer) History() *History[location.Location] { return v.history }

// Loading reports whether a load is in flight.
func (v *Viewer) Loading() bool { return v.cancel != nil }

// Visit starts loading loc. Remembered loads are added to history when
// they succeed.
func (v *Viewer) Visit(loc location.Location) *LoadTask {
	return v.start(loc, nil, true)
}

// VisitForge resolves req against its forge, then loads the result.
func (v *Viewer) VisitForge(req location.ForgeRequest) *LoadTask {
	return v.start(location.Location{}, &req, true)
}

// Reload loads the displayed location again without touching history.
func (v *Viewer) Reload() *LoadTask {
	if v.current.IsZero() {
		return nil
	}
	return v.start(v.current, nil, false)
}

// Resume shows the history's current entry when nothing is displayed, as
// after a saved history is restored at start-up.
func (v *Viewer) Resume() *LoadTask {
	cur, ok := v.history.Current()
	if !ok || !v.current.IsZero() {
		return nil
	}
	return v.start(cur, nil, false)
}

// Backward moves back through history.
func (v *Viewer) Backward() (*LoadTask, []Event) {
	if !v.history.Backward() {
		return nil, nil
	}
	return v.visitFromHistory()
}

// Forward moves forward through history.
func (v *Viewer) Forward() (*LoadTask, []Event) {
	if !v.history.Forward() {
		return nil, nil
	}
	return v.visitFromHistory()
}

// Goto jumps to a history index. It does nothing when already there.
func (v *Viewer) Goto(index int) (*LoadTask, []Event) {
	if v.history.Len() == 0 || v.history.Cursor() == index {
		return nil, nil
	}
	v.history.Goto(index)
	return v.visitFromHistory()
}

// Remove deletes a history entry and shows whatever is then current.
func (v *Viewer) Remove(index int) (*LoadTask, []Event) {
	if !v.history.Remove(index) {
		return nil, nil
	}
	return v.historyUpdated()
}

// ClearHistory replaces the history with an empty one and clears the
// display.
func (v *Viewer) ClearHistory() (*LoadTask, []Event) {
	v.history = NewHistory[location.Location](v.history.MaxLength())
	return v.historyUpdated()
}

// Apply folds a finished load into the viewer. It reports false, and
// changes nothing, when the result belongs to a superseded load. A failed
// load leaves the display and history as they were.
func (v *Viewer) Apply(res LoadResult) ([]Event, bool) {
	if res.Token != v.token {
		v.logger.Debug("dropping stale load",
			zap.Uint64("token", res.Token),
			zap.Stringer("location", res.Location),
		)
		return nil, false
	}
	v.finish()
	if res.Err != nil {
		return nil, true
	}

	var events []Event
	if res.Location != v.current {
		v.current = res.Location
		events = append(events, LocationChanged{Location: v.current})
	}
	if cur, ok := v.history.Current(); res.Remember && !res.Location.IsZero() && (!ok || cur != res.Location) {
		v.history.Add(res.Location)
		events = append(events, v.historyChanged())
	}
	return events, true
}

// Cancel abandons the in-flight load, if any.
func (v *Viewer) Cancel() {
	v.token++
	v.finish()
}

func (v *Viewer) start(loc location.Location, forge *location.ForgeRequest, remember bool) *LoadTask {
	if v.cancel != nil {
		v.cancel()
	}
	v.token++
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	return &LoadTask{
		Token:    v.token,
		Location: loc,
		Forge:    forge,
		Remember: remember,
		ctx:      ctx,
		loader:   v.loader,
		resolver: v.resolver,
	}
}

func (v *Viewer) finish() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *Viewer) visitFromHistory() (*LoadTask, []Event) {
	cur, _ := v.history.Current()
	return v.start(cur, nil, false), []Event{HistoryVisited{Cursor: v.history.Cursor()}}
}

func (v *Viewer) historyUpdated() (*LoadTask, []Event) {
	events := []Event{v.historyChanged()}
	if cur, ok := v.history.Current(); ok {
		return v.start(cur, nil, false), events
	}
	v.Cancel()
	if !v.current.IsZero() {
		v.current = location.Location{}
		events = append(events, LocationChanged{})
	}
	return nil, events
}

func (v *Viewer) historyChanged() HistoryChanged {
	return HistoryChanged{Entries: v.history.Entries(), Cursor: v.history.Cursor()}
}
