package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsigner/wallslide/api/client"
)

var ctlAddr string

var ctlCmd = &cobra.Command{
	Use:   "ctl",
	Short: "Control a running slideshow through its api",
}

var ctlStatusCmd = &cobra.Command{
	Use:          "status",
	Short:        "Show the slideshow state",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := client.NewControlClient(ctlAddr).Status()
		if err != nil {
			return err
		}
		fmt.Printf("current:    %s\n", status.Current)
		fmt.Printf("images:     %d\n", status.Count)
		fmt.Printf("interval:   %ds\n", status.IntervalSeconds)
		fmt.Printf("resolution: %s\n", status.Resolution)
		fmt.Printf("shuffle:    %t\n", status.Shuffle)
		fmt.Printf("paused:     %t\n", status.Paused)
		return nil
	},
}

var ctlNextCmd = &cobra.Command{
	Use:          "next",
	Short:        "Advance to the next image",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return client.NewControlClient(ctlAddr).Next()
	},
}

var ctlPauseCmd = &cobra.Command{
	Use:          "pause",
	Short:        "Pause wallpaper changes",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return client.NewControlClient(ctlAddr).Pause()
	},
}

var ctlResumeCmd = &cobra.Command{
	Use:          "resume",
	Short:        "Resume wallpaper changes",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return client.NewControlClient(ctlAddr).Resume()
	},
}

func init() {
	ctlCmd.PersistentFlags().StringVar(&ctlAddr, "addr", "http://127.0.0.1:8766", "Base URL of the control api")
	ctlCmd.AddCommand(ctlStatusCmd, ctlNextCmd, ctlPauseCmd, ctlResumeCmd)
	rootCmd.AddCommand(ctlCmd)
}
