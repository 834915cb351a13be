package mouse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFromMsg(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.MouseMsg
		kind   Kind
		wx, wy int
	}{
		{"press", tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, KindPress, 0, 0},
		{"release", tea.MouseMsg{Button: tea.MouseButtonNone, Action: tea.MouseActionRelease}, KindRelease, 0, 0},
		{"motion", tea.MouseMsg{Button: tea.MouseButtonNone, Action: tea.MouseActionMotion}, KindMotion, 0, 0},
		{"wheel down", tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}, KindWheel, 0, 1},
		{"wheel up", tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}, KindWheel, 0, -1},
		{"shift wheel down", tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress, Shift: true}, KindWheel, 1, 0},
		{"wheel left", tea.MouseMsg{Button: tea.MouseButtonWheelLeft, Action: tea.MouseActionPress}, KindWheel, 1, 0},
		{"wheel right", tea.MouseMsg{Button: tea.MouseButtonWheelRight, Action: tea.MouseActionPress}, KindWheel, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := FromMsg(tt.msg)
			if ev.Kind != tt.kind || ev.WheelX != tt.wx || ev.WheelY != tt.wy {
				t.Errorf("FromMsg() = %+v, want kind %v wheel (%d, %d)", ev, tt.kind, tt.wx, tt.wy)
			}
		})
	}
}
