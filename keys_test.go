package vtui

import "testing"

func TestKeyCodeString(t *testing.T) {
	ctrlC := Char('c')
	ctrlC.Ctrl = true
	altCtrlX := Char('x')
	altCtrlX.Alt = true
	altCtrlX.Ctrl = true

	tests := []struct {
		key  KeyCode
		want string
	}{
		{Char('a'), "a"},
		{Special(KeyEnter), "enter"},
		{Special(KeyBackTab), "shift+tab"},
		{Function(12), "f12"},
		{ctrlC, "ctrl+c"},
		{altCtrlX, "ctrl+alt+x"},
		{KeyCode{}, "none"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestIsRune(t *testing.T) {
	ctrlQ := Char('q')
	ctrlQ.Ctrl = true

	if !Char('q').IsRune('q') {
		t.Error("expected q to match")
	}
	if ctrlQ.IsRune('q') {
		t.Error("expected ctrl+q not to match a plain q")
	}
	if Special(KeyEsc).IsRune(0) {
		t.Error("expected a special key never to match")
	}
}
