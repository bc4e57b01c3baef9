package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"eyebreak/internal/ui/terminal"

	"github.com/spf13/cobra"
)

var tuiLogFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the break reminder in the terminal",
	RunE:  runTerminal,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", filepath.Join(os.TempDir(), "eyebreak.log"), "where to write logs while the terminal UI owns the screen")
}

func runTerminal(cmd *cobra.Command, args []string) error {
	logOutput, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logOutput.Close()
	logger := log.New(logOutput, "", log.LstdFlags)

	s, err := openSession(logger)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := s.scheduler.Subscribe(8)
	watchWake(ctx, s, logger)
	s.scheduler.Start()

	model := terminal.New(s.scheduler, events, s.settings.Message)
	return terminal.Run(ctx, model, os.Stdin, os.Stdout)
}
