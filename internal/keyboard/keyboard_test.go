package keyboard

import (
	"reflect"
	"testing"
)

func TestRecognized(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{name: "empty string means no action", key: "", want: true},
		{name: "single letter", key: "w", want: true},
		{name: "single digit", key: "3", want: true},
		{name: "single non-ascii rune", key: "ö", want: true},
		{name: "arrow key name", key: "up", want: true},
		{name: "underscore name", key: "page_up", want: true},
		{name: "function key", key: "f5", want: true},
		{name: "unknown name", key: "warp", want: false},
		{name: "uppercase name is not recognized", key: "UP", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recognized(tt.key); got != tt.want {
				t.Errorf("Recognized(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestRobotgoKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "single character passes through", key: "w", want: "w"},
		{name: "same spelling", key: "left", want: "left"},
		{name: "page up respelled", key: "page_up", want: "pageup"},
		{name: "caps lock respelled", key: "caps_lock", want: "capslock"},
		{name: "left shift variant", key: "shift_l", want: "lshift"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := robotgoKey(tt.key); got != tt.want {
				t.Errorf("robotgoKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestLogKeyboard(t *testing.T) {
	t.Run("records commands in order", func(t *testing.T) {
		kb := NewLogKeyboard()

		kb.Press("up")
		kb.Press("left")
		kb.Release("up")

		if got, want := kb.Pressed(), []string{"up", "left"}; !reflect.DeepEqual(got, want) {
			t.Errorf("Pressed() = %v, want %v", got, want)
		}
		if got, want := kb.Released(), []string{"up"}; !reflect.DeepEqual(got, want) {
			t.Errorf("Released() = %v, want %v", got, want)
		}
	})

	t.Run("reset forgets the recording", func(t *testing.T) {
		kb := NewLogKeyboard()

		kb.Press("up")
		kb.Reset()

		if len(kb.Pressed()) != 0 {
			t.Errorf("expected no pressed keys after reset, got %v", kb.Pressed())
		}
		if len(kb.Released()) != 0 {
			t.Errorf("expected no released keys after reset, got %v", kb.Released())
		}
	})

	t.Run("implements Keyboard interface", func(t *testing.T) {
		var _ Keyboard = (*LogKeyboard)(nil)
		var _ Keyboard = (*OSKeyboard)(nil)
	})
}
