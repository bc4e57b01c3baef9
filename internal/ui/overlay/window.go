package overlay

import (
	"context"
	"image/color"
	"time"

	"eyebreak/internal/core/scheduler"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	hintText        = "Find a distant spot to rest your eyes on while you wait"
	refreshInterval = 500 * time.Millisecond

	overlayWidthFraction  = float32(0.4)
	overlayHeightFraction = float32(0.5)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

// Config defines overlay visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
	Message    string
}

// RemainingFunc reports how much of the current break is left.
type RemainingFunc func() time.Duration

// Window manages the break overlay UI.
type Window struct {
	window     fyne.Window
	config     Config
	remaining  RemainingFunc
	clockLabel *canvas.Text
	timerLabel *canvas.Text
	skipButton *widget.Button
	cancelCtx  context.CancelFunc
	onSkip     func()
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. remaining is polled while the overlay is shown.
func New(app fyne.App, config Config, remaining RemainingFunc) *Window {
	window := app.NewWindow("EyeBreak")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	background := canvas.NewRectangle(color.NRGBA{A: config.Opacity})

	clockLabel := canvas.NewText("", white)
	clockLabel.Alignment = fyne.TextAlignCenter
	clockLabel.TextStyle = fyne.TextStyle{Bold: true}
	clockLabel.TextSize = 16

	titleLabel := canvas.NewText(config.Message, white)
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 48

	hintLabel := canvas.NewText(hintText, white)
	hintLabel.Alignment = fyne.TextAlignCenter
	hintLabel.TextSize = 22

	timerLabel := canvas.NewText(scheduler.FormatBreakClock(0), white)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 72

	overlay := &Window{
		window:     window,
		config:     config,
		remaining:  remaining,
		clockLabel: clockLabel,
		timerLabel: timerLabel,
	}
	overlay.skipButton = widget.NewButton("Skip", func() {
		if overlay.onSkip != nil {
			overlay.onSkip()
		}
	})

	content := container.NewCenter(container.NewVBox(
		clockLabel,
		layoutSpacer(40),
		titleLabel,
		hintLabel,
		layoutSpacer(40),
		timerLabel,
		container.NewCenter(overlay.skipButton),
	))
	window.SetContent(container.NewStack(background, content))
	overlay.applyWindowMode()

	return overlay
}

// SetOnSkip sets the skip handler.
func (overlay *Window) SetOnSkip(handler func()) {
	overlay.onSkip = handler
}

// Show presents the overlay for a break of the given duration and keeps the
// countdown in sync with the scheduler until Hide. Must run on the fyne thread.
func (overlay *Window) Show(duration time.Duration) {
	overlay.stopRefresh()
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancelCtx = cancel

	overlay.render(time.Now(), duration)
	overlay.applyWindowMode()
	overlay.window.Show()
	overlay.window.RequestFocus()

	go overlay.refreshLoop(ctx)
}

// Hide closes the overlay and stops the countdown refresh.
func (overlay *Window) Hide() {
	overlay.stopRefresh()
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Hide()
}

func (overlay *Window) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			remaining := overlay.remaining()
			fyne.Do(func() {
				if ctx.Err() != nil {
					return
				}
				overlay.render(now, remaining)
			})
		}
	}
}

func (overlay *Window) render(now time.Time, remaining time.Duration) {
	overlay.clockLabel.Text = ClockText(now)
	overlay.clockLabel.Refresh()
	overlay.timerLabel.Text = scheduler.FormatBreakClock(scheduler.Seconds(remaining))
	overlay.timerLabel.Refresh()
}

func (overlay *Window) stopRefresh() {
	if overlay.cancelCtx != nil {
		overlay.cancelCtx()
		overlay.cancelCtx = nil
	}
}

func (overlay *Window) applyWindowMode() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	size := fyne.NewSize(screenSize.Width*overlayWidthFraction, screenSize.Height*overlayHeightFraction)
	minSize := overlay.window.Content().MinSize()
	size = size.Max(minSize)

	overlay.window.Resize(size)
	overlay.window.CenterOnScreen()
}

// ClockText renders the wall-clock line shown above the headline.
func ClockText(now time.Time) string {
	return "Current time is " + now.Format("3:04 PM")
}

func layoutSpacer(height float32) fyne.CanvasObject {
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(0, height))
	return spacer
}
