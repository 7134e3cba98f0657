// Package tray provides a system tray interface for running the controller headless.
package tray

import (
	"strings"
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application. It is the only control
// surface in headless mode, where no preview window listens for 'q'.
type Tray struct {
	onToggle func(enabled bool)
	onQuit   func()
	enabled  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle     *systray.MenuItem
	menuActiveKeys *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	// Set the tray title and tooltip
	systray.SetTitle("Volante")
	systray.SetTooltip("Volante Virtual Steering Wheel")

	// Create menu items
	t.menuToggle = systray.AddMenuItem("● Enabled", "Toggle key injection")
	systray.AddSeparator()

	t.menuActiveKeys = systray.AddMenuItem("Keys: none", "Keys currently held down")
	t.menuActiveKeys.Disable()
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Volante")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
// It performs cleanup tasks.
func (t *Tray) onExit() {
	// Cleanup resources if needed
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	// Update menu item text based on new state
	if enabled {
		t.menuToggle.SetTitle("● Enabled")
	} else {
		t.menuToggle.SetTitle("○ Disabled")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// Quit closes the system tray and unblocks Run. Safe to call more than
// once and safe to call next to the Quit menu item.
func (t *Tray) Quit() {
	systray.Quit()
}

// SetActiveKeys updates the held-keys display in the menu.
func (t *Tray) SetActiveKeys(keys []string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuActiveKeys != nil {
		if len(keys) == 0 {
			t.menuActiveKeys.SetTitle("Keys: none")
		} else {
			t.menuActiveKeys.SetTitle("Keys: " + strings.Join(keys, ", "))
		}
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
