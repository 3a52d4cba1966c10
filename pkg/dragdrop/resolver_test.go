package dragdrop

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/models"
	"github.com/borgmon/sticky-alarm/pkg/store"
)

type memoryKV struct {
	mu      sync.Mutex
	records map[string][]byte
}

func (m *memoryKV) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.records[key]; ok {
		return d, nil
	}
	return nil, store.ErrNotFound
}

func (m *memoryKV) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = data
	return nil
}

// manualFrames runs requested frames only on Flush
type manualFrames struct {
	mu       sync.Mutex
	queued   []*frameReq
	requests int
}

type frameReq struct {
	fn        func()
	cancelled bool
}

func (m *manualFrames) RequestFrame(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	req := &frameReq{fn: fn}
	m.queued = append(m.queued, req)
	m.requests++
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		req.cancelled = true
	}
}

func (m *manualFrames) Flush() {
	m.mu.Lock()
	queued := m.queued
	m.queued = nil
	m.mu.Unlock()

	for _, req := range queued {
		if !req.cancelled {
			req.fn()
		}
	}
}

type fixture struct {
	store  *store.AlarmStore
	frames *manualFrames
	r      *Resolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  store.Open(&memoryKV{records: map[string][]byte{}}, logger.Discard()),
		frames: &manualFrames{},
	}
	f.r = NewResolver(f.store, f.frames, logger.Discard())
	return f
}

func (f *fixture) begin(t *testing.T, pos Point, p Payload) {
	t.Helper()
	data, err := EncodePayload(p)
	require.NoError(t, err)
	require.NoError(t, f.r.Begin(pos, data))
}

func at(y float64, target Target) Event {
	return Event{Pos: Point{X: 100, Y: y}, Target: target}
}

func yFor(minutes float64, z geometry.Zoom) float64 {
	return geometry.MinutesToOffset(minutes, z)
}

func TestTemplateToTimelineCreatesSnappedAlarm(t *testing.T) {
	f := newFixture(t)
	note := f.store.Palette()[2]

	f.begin(t, Point{X: 10, Y: 10}, TemplatePayload(2, note))
	f.r.Move(at(yFor(487, geometry.Compact), Timeline))
	f.frames.Flush()

	p := f.r.Preview()
	assert.True(t, p.Active)
	assert.Equal(t, 480.0, p.Minutes, "template preview shows the snapped slot")

	out := f.r.End(at(yFor(487, geometry.Compact), Timeline))
	require.Equal(t, Created, out.Action)
	assert.Equal(t, 480, out.Minutes)

	a, ok := f.store.Alarm(out.AlarmID)
	require.True(t, ok)
	assert.Equal(t, note.Color, a.Color)
	assert.Equal(t, note.Label, a.Text)
	assert.Empty(t, a.RepeatDays)
	assert.False(t, f.r.Preview().Active)
	assert.Equal(t, Idle, f.r.Phase())
}

func TestAlarmDragPreviewThenSnappedCommit(t *testing.T) {
	f := newFixture(t)
	f.r.SetZoom(geometry.Expanded)
	a := f.store.AddAlarm(600, "#bef264", "", "")

	var previews []float64
	f.r.Subscribe(func(p Preview) {
		if p.Active {
			previews = append(previews, p.Minutes)
		}
	})

	start := yFor(600, geometry.Expanded)
	f.begin(t, Point{X: 100, Y: start}, AlarmPayload(a))
	for _, m := range []float64{603.3, 607.9, 611.2, 614.6} {
		f.r.Move(at(yFor(m, geometry.Expanded), Timeline))
		f.frames.Flush()
	}
	require.Len(t, previews, 4)
	for i := 1; i < len(previews); i++ {
		assert.Greater(t, previews[i], previews[i-1], "preview tracks the pointer")
	}
	assert.InDelta(t, 614.6, previews[3], 1e-6, "alarm preview is not snapped")

	out := f.r.End(at(yFor(615.2, geometry.Expanded), Timeline))
	require.Equal(t, Moved, out.Action)

	got, _ := f.store.Alarm(a.ID)
	assert.Equal(t, 615, got.Time)
	assert.False(t, f.r.Preview().Active)
}

func TestMovesCoalescePerFrame(t *testing.T) {
	f := newFixture(t)
	a := f.store.AddAlarm(600, "#bef264", "", "")

	f.begin(t, Point{Y: yFor(600, geometry.Compact)}, AlarmPayload(a))
	for i := 0; i < 10; i++ {
		f.r.Move(at(yFor(600+float64(i*10), geometry.Compact), Timeline))
	}
	assert.Equal(t, 1, f.frames.requests)

	f.frames.Flush()
	assert.InDelta(t, 690, f.r.Preview().Minutes, 1e-6, "the frame uses the latest position")

	f.r.Move(at(yFor(700, geometry.Compact), Timeline))
	assert.Equal(t, 2, f.frames.requests)
}

func TestEndCancelsPendingRecompute(t *testing.T) {
	f := newFixture(t)
	a := f.store.AddAlarm(600, "#bef264", "", "")

	f.begin(t, Point{Y: yFor(600, geometry.Compact)}, AlarmPayload(a))
	f.r.Move(at(yFor(700, geometry.Compact), Timeline))
	f.r.End(at(yFor(720, geometry.Compact), Timeline))

	// a frame that escaped cancellation must not resurrect the preview
	f.frames.mu.Lock()
	for _, req := range f.frames.queued {
		req.cancelled = false
	}
	f.frames.mu.Unlock()
	f.frames.Flush()

	assert.False(t, f.r.Preview().Active)
	got, _ := f.store.Alarm(a.ID)
	assert.Equal(t, 720, got.Time)
}

func TestLeaveClearsPreview(t *testing.T) {
	f := newFixture(t)
	a := f.store.AddAlarm(600, "#bef264", "", "")

	f.begin(t, Point{Y: yFor(600, geometry.Compact)}, AlarmPayload(a))
	f.r.Move(at(yFor(700, geometry.Compact), Timeline))
	f.frames.Flush()
	require.True(t, f.r.Preview().Active)

	f.r.Move(at(yFor(710, geometry.Compact), Timeline))
	f.r.Leave()
	f.frames.Flush()
	assert.False(t, f.r.Preview().Active)
	assert.Equal(t, Dragging, f.r.Phase())

	f.r.Cancel()
	assert.Equal(t, Idle, f.r.Phase())
	got, _ := f.store.Alarm(a.ID)
	assert.Equal(t, 600, got.Time)
}

func TestDropOnTrash(t *testing.T) {
	f := newFixture(t)
	a := f.store.AddAlarm(600, "#bef264", "", "")
	n := len(f.store.Palette())

	f.begin(t, Point{}, AlarmPayload(a))
	f.r.Move(at(40, Trash))
	out := f.r.End(at(40, Trash))
	assert.Equal(t, Deleted, out.Action)
	_, ok := f.store.Alarm(a.ID)
	assert.False(t, ok)

	f.begin(t, Point{}, TemplatePayload(0, f.store.Palette()[0]))
	f.r.Move(at(40, Trash))
	out = f.r.End(at(40, Trash))
	assert.Equal(t, TemplateDeleted, out.Action)
	assert.Len(t, f.store.Palette(), n-1)
}

func TestAlarmToPaletteInsertsTemplate(t *testing.T) {
	f := newFixture(t)
	a := f.store.AddAlarm(600, "#123456", "Gym", "Dumbbell")

	f.begin(t, Point{}, AlarmPayload(a))
	f.r.Move(Event{Pos: Point{X: 50, Y: 50}, Target: Palette, Index: 1})
	out := f.r.End(Event{Pos: Point{X: 50, Y: 50}, Target: Palette, Index: 1})
	require.Equal(t, TemplateAdded, out.Action)

	p := f.store.Palette()
	assert.Equal(t, models.PaletteNote{Color: "#123456", Label: "Gym", Icon: "Dumbbell"}, p[1])
	_, ok := f.store.Alarm(a.ID)
	assert.True(t, ok, "the alarm stays on the timeline")
}

func TestTemplateToPaletteIsNoop(t *testing.T) {
	f := newFixture(t)
	before := f.store.Palette()

	f.begin(t, Point{}, TemplatePayload(0, before[0]))
	f.r.Move(Event{Pos: Point{Y: 30}, Target: Palette, Index: 3})
	out := f.r.End(Event{Pos: Point{Y: 30}, Target: Palette, Index: 3})

	assert.Equal(t, NoAction, out.Action)
	assert.Equal(t, before, f.store.Palette())
}

func TestTapTogglesEditor(t *testing.T) {
	f := newFixture(t)
	a := f.store.AddAlarm(600, "#bef264", "", "")

	tap := Event{Pos: Point{X: 12, Y: 13}, Target: Timeline}
	f.begin(t, Point{X: 10, Y: 10}, AlarmPayload(a))
	f.r.Move(tap)
	out := f.r.End(tap)
	assert.Equal(t, EditorOpened, out.Action)
	assert.Equal(t, a.ID, f.r.Editing())

	// drags of the alarm being edited resolve as taps
	f.begin(t, Point{X: 10, Y: 10}, AlarmPayload(a))
	f.r.Move(at(300, Timeline))
	out = f.r.End(at(300, Timeline))
	assert.Equal(t, EditorClosed, out.Action)
	assert.Empty(t, f.r.Editing())

	got, _ := f.store.Alarm(a.ID)
	assert.Equal(t, 600, got.Time)
}

func TestDeleteModeTaps(t *testing.T) {
	f := newFixture(t)
	a := f.store.AddAlarm(600, "#bef264", "", "")
	n := len(f.store.Palette())
	f.r.SetDeleteMode(true)

	f.begin(t, Point{X: 10, Y: 10}, AlarmPayload(a))
	f.r.Move(at(400, Timeline)) // drags are off in delete mode
	out := f.r.End(at(400, Timeline))
	assert.Equal(t, Deleted, out.Action)
	assert.Empty(t, f.store.Alarms())

	f.begin(t, Point{}, TemplatePayload(n-1, f.store.Palette()[n-1]))
	out = f.r.End(at(0, None))
	assert.Equal(t, TemplateDeleted, out.Action)
	assert.Len(t, f.store.Palette(), n-1)
}

func TestMalformedPayloadAborts(t *testing.T) {
	f := newFixture(t)
	a := f.store.AddAlarm(600, "#bef264", "", "")

	for _, data := range [][]byte{
		[]byte("not json"),
		[]byte(`{"kind":"sticker"}`),
		[]byte(`{"kind":"alarm"}`),
		[]byte(`{"kind":"template","paletteIndex":-1}`),
	} {
		err := f.r.Begin(Point{}, data)
		assert.ErrorIs(t, err, ErrMalformedPayload, string(data))
		assert.Equal(t, Idle, f.r.Phase())
	}

	out := f.r.End(at(yFor(900, geometry.Compact), Timeline))
	assert.Equal(t, NoAction, out.Action)
	got, _ := f.store.Alarm(a.ID)
	assert.Equal(t, 600, got.Time)
	assert.Len(t, f.store.Alarms(), 1)
}

func TestStaleAlarmReferenceIsIgnored(t *testing.T) {
	f := newFixture(t)
	a := f.store.AddAlarm(600, "#bef264", "", "")

	f.begin(t, Point{}, AlarmPayload(a))
	f.r.Move(at(yFor(700, geometry.Compact), Timeline))
	f.store.DeleteAlarm(a.ID)

	out := f.r.End(at(yFor(700, geometry.Compact), Timeline))
	assert.Equal(t, NoAction, out.Action)
	assert.Empty(t, f.store.Alarms())
}

func TestDropOutsideTargetsCancels(t *testing.T) {
	f := newFixture(t)
	a := f.store.AddAlarm(600, "#bef264", "", "")

	f.begin(t, Point{}, AlarmPayload(a))
	f.r.Move(at(500, None))
	out := f.r.End(at(500, None))

	assert.Equal(t, NoAction, out.Action)
	got, _ := f.store.Alarm(a.ID)
	assert.Equal(t, 600, got.Time)
}

func TestPaletteDropIndex(t *testing.T) {
	tops := []float64{0, 60, 120}
	const height = 50.0

	assert.Equal(t, 0, PaletteDropIndex(10, tops, height))
	assert.Equal(t, 1, PaletteDropIndex(30, tops, height))
	assert.Equal(t, 1, PaletteDropIndex(55, tops, height), "gap before the second note")
	assert.Equal(t, 2, PaletteDropIndex(100, tops, height))
	assert.Equal(t, 3, PaletteDropIndex(160, tops, height))
	assert.Equal(t, 3, PaletteDropIndex(500, tops, height))
	assert.Equal(t, 0, PaletteDropIndex(10, nil, height))
}

func TestSessionThreshold(t *testing.T) {
	s := Session{Threshold: 6}
	s.Start(Point{X: 0, Y: 0}, Payload{Kind: KindTemplate})

	assert.False(t, s.Move(Point{X: 3, Y: 4.9}))
	assert.Equal(t, Armed, s.Phase)
	assert.True(t, s.Move(Point{X: 0, Y: 6}))
	assert.Equal(t, Dragging, s.Phase)

	// once dragging, returning near the origin stays a drag
	assert.True(t, s.Move(Point{}))

	s.Reset()
	assert.Equal(t, Idle, s.Phase)
	assert.Equal(t, 6.0, s.Threshold)
}
