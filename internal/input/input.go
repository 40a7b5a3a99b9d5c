// Package input defines the device-neutral key events the game loop consumes.
package input

// Kind separates printable characters from special keys.
type Kind int

const (
	KindChar Kind = iota
	KindSpecial
)

// SpecialKey identifies a non-printable key.
type SpecialKey int

const (
	KeyNone SpecialKey = iota
	KeyUp
	KeyDown
)

// Control characters delivered as KindChar.
const (
	CharEnter  = '\r'
	CharEscape = 0x1b
	CharCtrlC  = 0x03
)

// Event is a single key press.
type Event struct {
	Kind Kind
	Char rune
	Key  SpecialKey
}

// Char builds a printable-character event.
func Char(r rune) Event {
	return Event{Kind: KindChar, Char: r}
}

// Special builds a special-key event.
func Special(k SpecialKey) Event {
	return Event{Kind: KindSpecial, Key: k}
}

// Poller returns pending events without blocking. ok is false once the
// queue is empty.
type Poller interface {
	PollEvent() (ev Event, ok bool)
}

// Queue is an in-memory Poller, handy for scripted input.
type Queue struct {
	events []Event
}

// Push appends events to the queue.
func (q *Queue) Push(evs ...Event) {
	q.events = append(q.events, evs...)
}

// Len reports how many events are pending.
func (q *Queue) Len() int {
	return len(q.events)
}

func (q *Queue) PollEvent() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}
