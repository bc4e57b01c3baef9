package main

import (
	"context"
	"log"
	"time"

	"eyebreak/internal/core/scheduler"
	"eyebreak/internal/ui/overlay"
	"eyebreak/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"
)

const trayRefreshInterval = 500 * time.Millisecond

func runTray(cmd *cobra.Command, args []string) error {
	logger := log.Default()
	s, err := openSession(logger)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	fyneApp := app.NewWithID("com.eyebreak.app")
	fyneApp.SetIcon(theme.VisibilityIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Printf("system tray unsupported on this platform, try `eyebreak tui`")
		return nil
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("EyeBreak is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	keeper := s.scheduler
	overlayWindow := overlay.New(fyneApp, overlay.Config{
		Opacity:    s.settings.OverlayAlpha(),
		Fullscreen: s.settings.Fullscreen,
		Message:    s.settings.Message,
	}, keeper.TimeRemaining)
	overlayWindow.SetOnSkip(keeper.EndBreakNow)

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnTakeBreakNow:     keeper.TakeBreakNow,
		OnExtend:           keeper.Extend,
		OnPauseFor:         keeper.PauseFor,
		OnPauseUntilResume: keeper.PauseUntilResume,
		OnResume:           keeper.Start,
		OnSkipBreak:        keeper.SkipNextBreak,
		OnQuit: func() {
			keeper.Stop()
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(theme.VisibilityIcon())

	events := keeper.Subscribe(8)
	go func() {
		for event := range events {
			handleEvent(event, overlayWindow)
		}
	}()
	go refreshTray(ctx, keeper, trayManager)

	watchWake(ctx, s, logger)
	fyneApp.Lifecycle().SetOnStarted(keeper.Start)
	fyneApp.Run()
	return nil
}

func handleEvent(event scheduler.Event, overlayWindow *overlay.Window) {
	switch event.Type {
	case scheduler.EventBreakStarted:
		fyne.Do(func() {
			overlayWindow.Show(event.Duration)
		})
	case scheduler.EventBreakEnded:
		fyne.Do(overlayWindow.Hide)
	}
}

// refreshTray polls the scheduler so the status line counts down.
func refreshTray(ctx context.Context, keeper *scheduler.Scheduler, trayManager *tray.Manager) {
	ticker := time.NewTicker(trayRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status := keeper.Status()
			fyne.Do(func() {
				trayManager.Update(status)
			})
		}
	}
}
