package tray

import (
	"fmt"
	"time"

	"eyebreak/internal/core/scheduler"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "EyeBreak"

// PauseOptions are the fixed "Pause for" choices.
var PauseOptions = []time.Duration{
	10 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	45 * time.Minute,
	time.Hour,
	2 * time.Hour,
	4 * time.Hour,
	8 * time.Hour,
	24 * time.Hour,
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnTakeBreakNow     func()
	OnExtend           func(time.Duration)
	OnPauseFor         func(time.Duration)
	OnPauseUntilResume func()
	OnResume           func()
	OnSkipBreak        func()
	OnQuit             func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	breakNow   *fyne.MenuItem
	addOne     *fyne.MenuItem
	addFive    *fyne.MenuItem
	pauseFor   *fyne.MenuItem
	skipItem   *fyne.MenuItem
	resumeItem *fyne.MenuItem
	quitItem   *fyne.MenuItem
	menu       *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
// A nil app builds the menu without installing it.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem(StatusLabel(scheduler.Status{Phase: scheduler.PhaseIdle}), nil)
	manager.statusItem.Disabled = true

	manager.breakNow = fyne.NewMenuItem("Start this break now", func() {
		if manager.callbacks.OnTakeBreakNow != nil {
			manager.callbacks.OnTakeBreakNow()
		}
	})
	manager.addOne = fyne.NewMenuItem("Add 1 minute", manager.extend(time.Minute))
	manager.addFive = fyne.NewMenuItem("Add 5 minutes", manager.extend(5*time.Minute))

	pauseItems := make([]*fyne.MenuItem, 0, len(PauseOptions)+2)
	for _, duration := range PauseOptions {
		duration := duration
		pauseItems = append(pauseItems, fyne.NewMenuItem(PauseLabel(duration), func() {
			if manager.callbacks.OnPauseFor != nil {
				manager.callbacks.OnPauseFor(duration)
			}
		}))
	}
	pauseItems = append(pauseItems, fyne.NewMenuItemSeparator(), fyne.NewMenuItem("Until I resume", func() {
		if manager.callbacks.OnPauseUntilResume != nil {
			manager.callbacks.OnPauseUntilResume()
		}
	}))
	manager.pauseFor = fyne.NewMenuItem("Pause for", nil)
	manager.pauseFor.ChildMenu = fyne.NewMenu("", pauseItems...)

	manager.skipItem = fyne.NewMenuItem("Skip this break", func() {
		if manager.callbacks.OnSkipBreak != nil {
			manager.callbacks.OnSkipBreak()
		}
	})

	manager.resumeItem = fyne.NewMenuItem("Resume", func() {
		if manager.callbacks.OnResume != nil {
			manager.callbacks.OnResume()
		}
	})
	manager.resumeItem.Disabled = true

	manager.quitItem = fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	// fyne appends its own Quit item unless one is flagged.
	manager.quitItem.IsQuit = true

	manager.menu = fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.breakNow,
		manager.addOne,
		manager.addFive,
		manager.pauseFor,
		manager.skipItem,
		manager.resumeItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	)
	manager.refreshMenu()

	return manager
}

// Update reflects a scheduler snapshot in the menu. It only reinstalls the
// menu when something visible changed. Must run on the fyne thread.
func (manager *Manager) Update(status scheduler.Status) {
	label := StatusLabel(status)
	onBreak := status.Phase == scheduler.PhaseOnBreak
	countingDown := status.Phase == scheduler.PhaseCountingDown && !status.Paused

	changed := manager.statusItem.Label != label ||
		manager.breakNow.Disabled != onBreak ||
		manager.addOne.Disabled != !countingDown ||
		manager.resumeItem.Disabled != !status.Paused

	if !changed {
		return
	}
	manager.statusItem.Label = label
	manager.breakNow.Disabled = onBreak
	manager.addOne.Disabled = !countingDown
	manager.addFive.Disabled = !countingDown
	manager.pauseFor.Disabled = onBreak
	manager.skipItem.Disabled = onBreak
	manager.resumeItem.Disabled = !status.Paused
	manager.refreshMenu()
}

// StatusLabel renders the first menu line for a scheduler snapshot.
func StatusLabel(status scheduler.Status) string {
	remaining := scheduler.FormatRemaining(scheduler.Seconds(status.Remaining))
	switch {
	case status.Phase == scheduler.PhaseOnBreak:
		return fmt.Sprintf("On a break, %s left", remaining)
	case status.Paused:
		return "Breaks paused until you resume"
	case status.Phase == scheduler.PhaseCountingDown:
		return "Your break begins in " + remaining
	default:
		return "Starting..."
	}
}

// PauseLabel renders a pause option such as "45 minutes" or "2 hours".
func PauseLabel(duration time.Duration) string {
	if duration >= time.Hour && duration%time.Hour == 0 {
		hours := int(duration / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	minutes := int(duration / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

func (manager *Manager) extend(by time.Duration) func() {
	return func() {
		if manager.callbacks.OnExtend != nil {
			manager.callbacks.OnExtend(by)
		}
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}
