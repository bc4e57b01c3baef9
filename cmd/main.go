package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "EyeBreak"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "eyebreak",
	Short:        "Reminds you to rest your eyes every twenty minutes",
	SilenceUsage: true,
	RunE:         runTray,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config.yaml (default: user config dir)")
	rootCmd.AddCommand(tuiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
