package mouse

import tea "github.com/charmbracelet/bubbletea"

// Kind classifies an Event.
type Kind int

const (
	KindNone Kind = iota
	KindPress
	KindRelease
	KindMotion
	KindWheel
	// KindLeave is synthesized when the pointer moves out of a region.
	KindLeave
)

func (k Kind) String() string {
	switch k {
	case KindPress:
		return "press"
	case KindRelease:
		return "release"
	case KindMotion:
		return "motion"
	case KindWheel:
		return "wheel"
	case KindLeave:
		return "leave"
	default:
		return "none"
	}
}

// Event is a mouse event in screen cells. LocalX/LocalY are relative to
// the region being dispatched to.
type Event struct {
	Kind   Kind
	Button tea.MouseButton
	X, Y   int
	LocalX int
	LocalY int
	// WheelX and WheelY are notch directions (-1, 0, 1) for KindWheel.
	WheelX int
	WheelY int
	Shift  bool
}

// FromMsg converts a bubbletea mouse message.
func FromMsg(msg tea.MouseMsg) Event {
	ev := Event{
		Button: msg.Button,
		X:      msg.X,
		Y:      msg.Y,
		LocalX: msg.X,
		LocalY: msg.Y,
		Shift:  msg.Shift,
	}

	if tea.MouseEvent(msg).IsWheel() {
		ev.Kind = KindWheel
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			ev.WheelY = -1
		case tea.MouseButtonWheelDown:
			ev.WheelY = 1
		// Native horizontal scroll (trackpad) - reversed for Mac natural scrolling
		case tea.MouseButtonWheelLeft:
			ev.WheelX = 1
		case tea.MouseButtonWheelRight:
			ev.WheelX = -1
		}
		// Shift+scroll = horizontal scroll
		if msg.Shift && ev.WheelY != 0 {
			ev.WheelX, ev.WheelY = ev.WheelY, 0
		}
		return ev
	}

	switch msg.Action {
	case tea.MouseActionPress:
		ev.Kind = KindPress
	case tea.MouseActionRelease:
		ev.Kind = KindRelease
	case tea.MouseActionMotion:
		ev.Kind = KindMotion
	}
	return ev
}
