// Package dragdrop turns pointer gestures into alarm store mutations.
package dragdrop

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/models"
)

// Target is the surface under the pointer
type Target int

const (
	None Target = iota
	Timeline
	Palette
	Trash
)

func (t Target) String() string {
	switch t {
	case Timeline:
		return "timeline"
	case Palette:
		return "palette"
	case Trash:
		return "trash"
	default:
		return "none"
	}
}

// Event is a pointer position with the surface it is over. Index is the
// palette insertion index, used when Target is Palette.
type Event struct {
	Pos    Point
	Target Target
	Index  int
}

// Store is the set of alarm store mutations a gesture can commit
type Store interface {
	Alarm(id string) (models.Alarm, bool)
	AddAlarm(minutes int, color, label, icon string) models.Alarm
	MoveAlarm(id string, minutes int)
	DeleteAlarm(id string)
	AddPaletteTemplate(color, label string, index int, icon string)
	DeletePaletteTemplate(index int)
}

// Preview is the provisional time shown while dragging over the timeline
type Preview struct {
	Active  bool
	Kind    Kind
	AlarmID string
	Minutes float64
}

// Action is what a finished gesture did
type Action int

const (
	NoAction Action = iota
	Created
	Moved
	Deleted
	TemplateAdded
	TemplateDeleted
	EditorOpened
	EditorClosed
)

func (a Action) String() string {
	return [...]string{"none", "created", "moved", "deleted", "template added",
		"template deleted", "editor opened", "editor closed"}[a]
}

// Outcome describes the result of End
type Outcome struct {
	Action  Action
	AlarmID string
	Minutes int
	Index   int
}

// Resolver owns the pointer session and the preview. Entry points and
// frame callbacks are serialized by mu; store mutations run after mu is
// released.
type Resolver struct {
	mu sync.Mutex

	store  Store
	frames FrameScheduler
	log    *slog.Logger

	zoom       geometry.Zoom
	session    Session
	deleteMode bool
	editing    string

	preview Preview
	latest  Event
	// pending cancels the scheduled recompute; generation invalidates it
	// if it already started
	pending    func()
	generation uint64

	listeners []func(Preview)
}

// NewResolver creates a resolver at compact zoom. A nil frames scheduler
// means TimerFrames.
func NewResolver(store Store, frames FrameScheduler, log *slog.Logger) *Resolver {
	if frames == nil {
		frames = TimerFrames{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		store:   store,
		frames:  frames,
		log:     log,
		zoom:    geometry.Compact,
		session: Session{Threshold: DefaultThreshold},
	}
}

// SetThreshold changes the drag distance threshold
func (r *Resolver) SetThreshold(px float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session.Threshold = px
}

// SetZoom sets the zoom used to convert offsets to minutes
func (r *Resolver) SetZoom(z geometry.Zoom) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zoom = z
}

// SetDeleteMode switches taps from editing to deleting
func (r *Resolver) SetDeleteMode(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteMode = on
	if on {
		r.editing = ""
	}
}

func (r *Resolver) DeleteMode() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteMode
}

// Editing returns the id of the alarm whose editor is open, or ""
func (r *Resolver) Editing() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.editing
}

// CloseEditor closes the open editor, if any
func (r *Resolver) CloseEditor() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.editing = ""
}

// Phase returns the phase of the current session
func (r *Resolver) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Phase
}

// Preview returns the current preview
func (r *Resolver) Preview() Preview {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.preview
}

// Subscribe registers fn for preview changes
func (r *Resolver) Subscribe(fn func(Preview)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

func (r *Resolver) notify(p Preview) {
	r.mu.Lock()
	listeners := slices.Clone(r.listeners)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(p)
	}
}

// Begin starts a session from transferred data. A malformed payload aborts
// the gesture and leaves all state untouched.
func (r *Resolver) Begin(pos Point, data []byte) error {
	p, err := DecodePayload(data)
	if err != nil {
		r.log.Warn("drag aborted", logger.Err(err))
		return fmt.Errorf("begin drag: %w", err)
	}
	r.BeginPayload(pos, p)
	return nil
}

// BeginPayload starts a session from an already decoded payload
func (r *Resolver) BeginPayload(pos Point, p Payload) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelPendingLocked()
	r.session.Start(pos, p)
	// drags are off in delete mode and for the alarm being edited
	r.session.NoDrag = r.deleteMode || (p.Kind == KindAlarm && p.AlarmID == r.editing)
}

// Move feeds a pointer position. Once dragging, preview recomputes are
// coalesced to one per frame.
func (r *Resolver) Move(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session.Phase == Idle || !r.session.Move(ev.Pos) {
		return
	}

	r.latest = ev
	if r.pending != nil {
		return
	}
	r.generation++
	gen := r.generation
	r.pending = r.frames.RequestFrame(func() { r.frame(gen) })
}

func (r *Resolver) frame(gen uint64) {
	r.mu.Lock()
	if gen != r.generation || r.session.Phase != Dragging {
		r.mu.Unlock()
		return
	}
	r.pending = nil

	ev := r.latest
	p := r.session.Payload
	next := Preview{}
	if ev.Target == Timeline {
		// templates preview the slot they would land in, alarms track the pointer
		next = Preview{
			Active:  true,
			Kind:    p.Kind,
			AlarmID: p.AlarmID,
			Minutes: geometry.OffsetToMinutes(ev.Pos.Y, r.zoom, p.Kind == KindTemplate),
		}
	}
	changed := next != r.preview
	r.preview = next
	r.mu.Unlock()

	if changed {
		r.notify(next)
	}
}

// cancelPendingLocked drops any scheduled recompute, including one whose
// callback is already waiting on mu
func (r *Resolver) cancelPendingLocked() {
	r.generation++
	if r.pending != nil {
		r.pending()
		r.pending = nil
	}
}

// clearPreviewLocked reports whether a preview was showing
func (r *Resolver) clearPreviewLocked() bool {
	was := r.preview.Active
	r.preview = Preview{}
	return was
}

// Leave is called when the pointer leaves the timeline mid drag
func (r *Resolver) Leave() {
	r.mu.Lock()
	r.cancelPendingLocked()
	cleared := r.clearPreviewLocked()
	r.mu.Unlock()

	if cleared {
		r.notify(Preview{})
	}
}

// Cancel abandons the session without committing anything
func (r *Resolver) Cancel() {
	r.mu.Lock()
	r.cancelPendingLocked()
	cleared := r.clearPreviewLocked()
	r.session.Reset()
	r.mu.Unlock()

	if cleared {
		r.notify(Preview{})
	}
}

// End releases the pointer. Pending recomputes are cancelled and the
// preview cleared before anything is committed.
func (r *Resolver) End(ev Event) Outcome {
	r.mu.Lock()
	r.cancelPendingLocked()
	cleared := r.clearPreviewLocked()

	session := r.session
	r.session.Reset()
	zoom := r.zoom
	deleteMode := r.deleteMode
	r.mu.Unlock()

	if cleared {
		r.notify(Preview{})
	}

	var out Outcome
	switch session.Phase {
	case Armed:
		if session.Move(ev.Pos) {
			out = r.drop(session.Payload, ev, zoom)
		} else {
			out = r.tap(session.Payload, deleteMode)
		}
	case Dragging:
		out = r.drop(session.Payload, ev, zoom)
	}

	if out.Action != NoAction {
		r.log.Debug("gesture resolved",
			slog.String("action", out.Action.String()),
			slog.String("kind", string(session.Payload.Kind)),
			slog.String("target", ev.Target.String()),
		)
	}
	return out
}

func (r *Resolver) tap(p Payload, deleteMode bool) Outcome {
	switch {
	case deleteMode && p.Kind == KindAlarm:
		r.deleteAlarm(p.AlarmID)
		return Outcome{Action: Deleted, AlarmID: p.AlarmID}
	case deleteMode && p.Kind == KindTemplate:
		r.store.DeletePaletteTemplate(p.PaletteIndex)
		return Outcome{Action: TemplateDeleted, Index: p.PaletteIndex}
	case p.Kind == KindAlarm:
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.editing == p.AlarmID {
			r.editing = ""
			return Outcome{Action: EditorClosed, AlarmID: p.AlarmID}
		}
		if _, ok := r.store.Alarm(p.AlarmID); !ok {
			return Outcome{}
		}
		r.editing = p.AlarmID
		return Outcome{Action: EditorOpened, AlarmID: p.AlarmID}
	}
	return Outcome{}
}

func (r *Resolver) drop(p Payload, ev Event, z geometry.Zoom) Outcome {
	switch ev.Target {
	case Timeline:
		minutes := geometry.SnapMinutes(geometry.OffsetToMinutes(ev.Pos.Y, z, false), z)
		if p.Kind == KindTemplate {
			a := r.store.AddAlarm(minutes, p.Note.Color, p.Note.Label, p.Note.Icon)
			return Outcome{Action: Created, AlarmID: a.ID, Minutes: a.Time}
		}
		if _, ok := r.store.Alarm(p.AlarmID); !ok {
			return Outcome{}
		}
		r.store.MoveAlarm(p.AlarmID, minutes)
		return Outcome{Action: Moved, AlarmID: p.AlarmID, Minutes: minutes}

	case Trash:
		if p.Kind == KindTemplate {
			r.store.DeletePaletteTemplate(p.PaletteIndex)
			return Outcome{Action: TemplateDeleted, Index: p.PaletteIndex}
		}
		if _, ok := r.store.Alarm(p.AlarmID); !ok {
			return Outcome{}
		}
		r.deleteAlarm(p.AlarmID)
		return Outcome{Action: Deleted, AlarmID: p.AlarmID}

	case Palette:
		if p.Kind != KindAlarm {
			return Outcome{}
		}
		a, ok := r.store.Alarm(p.AlarmID)
		if !ok {
			return Outcome{}
		}
		r.store.AddPaletteTemplate(a.Color, a.Text, ev.Index, a.Icon)
		return Outcome{Action: TemplateAdded, AlarmID: a.ID, Index: ev.Index}
	}
	return Outcome{}
}

func (r *Resolver) deleteAlarm(id string) {
	r.store.DeleteAlarm(id)

	r.mu.Lock()
	if r.editing == id {
		r.editing = ""
	}
	r.mu.Unlock()
}
