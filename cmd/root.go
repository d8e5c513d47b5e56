// Package cmd holds the wallslide command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsigner/wallslide/api"
	"github.com/jsigner/wallslide/config"
	"github.com/jsigner/wallslide/display"
	"github.com/jsigner/wallslide/imaging"
	"github.com/jsigner/wallslide/remote"
	"github.com/jsigner/wallslide/slideshow"
	"github.com/jsigner/wallslide/store"
	"github.com/jsigner/wallslide/wallpaper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wallslide",
	Short: "Wallpaper slideshow for macOS",
	Long: `Cycles the desktop wallpaper through a directory of images at a fixed
interval, scaling each image to the display resolution.`,
	RunE:         runSlideshow,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("directory", "d", "", "Directory containing images to use as wallpaper")
	rootCmd.Flags().IntP("transition-time", "t", 10, "Time in seconds between wallpaper changes")
	rootCmd.Flags().StringP("resolution", "r", "", `Display resolution as "WIDTHxHEIGHT" (defaults to the primary display)`)
	rootCmd.Flags().String("fit", "fill", `How images map onto the resolution: "fill" crops, "fit" letterboxes`)
	rootCmd.Flags().Bool("shuffle", false, "Show images in random order instead of name order")
	rootCmd.Flags().String("listen", "", "Address for the control api, e.g. 127.0.0.1:8766 (disabled when empty)")
	rootCmd.Flags().String("db", "", "Path of the settings database (no persistence when empty)")
	rootCmd.Flags().String("s3-bucket", "", "S3 bucket to mirror into the image directory")
	rootCmd.Flags().String("s3-profile", "", "AWS shared config profile used for S3 sync")
}

func runSlideshow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags given on the command line override the config file.
	flags := cmd.Flags()
	if flags.Changed("directory") {
		cfg.Directory, _ = flags.GetString("directory")
	}
	if flags.Changed("transition-time") {
		cfg.TransitionTime, _ = flags.GetInt("transition-time")
	}
	if flags.Changed("resolution") {
		cfg.Resolution, _ = flags.GetString("resolution")
	}
	if flags.Changed("fit") {
		cfg.Fit, _ = flags.GetString("fit")
	}
	if flags.Changed("shuffle") {
		cfg.Shuffle, _ = flags.GetBool("shuffle")
	}
	if flags.Changed("listen") {
		cfg.Listen, _ = flags.GetString("listen")
	}
	if flags.Changed("db") {
		cfg.DB, _ = flags.GetString("db")
	}
	if flags.Changed("s3-bucket") {
		cfg.S3Bucket, _ = flags.GetString("s3-bucket")
	}
	if flags.Changed("s3-profile") {
		cfg.S3Profile, _ = flags.GetString("s3-profile")
	}

	if cfg.Directory == "" {
		return errors.New("an image directory is required (-d)")
	}
	if cfg.TransitionTime <= 0 {
		return fmt.Errorf("transition time must be a positive number of seconds, got %d", cfg.TransitionTime)
	}

	var db *store.Database
	if cfg.DB != "" {
		db, err = store.NewDatabase(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		// Stored settings fill in anything not given on the command line.
		stored, err := db.GetSettings()
		if err != nil {
			return err
		}
		if !flags.Changed("transition-time") && stored.IntervalSeconds > 0 {
			cfg.TransitionTime = stored.IntervalSeconds
		}
		if !flags.Changed("shuffle") {
			cfg.Shuffle = stored.ShuffleEnabled
		}
		if !flags.Changed("fit") && stored.FitMode != "" {
			cfg.Fit = stored.FitMode
		}
	}

	var res display.Resolution
	if cfg.Resolution != "" {
		res, err = display.Parse(cfg.Resolution)
		if err != nil {
			return err
		}
	} else {
		res, err = display.Detect()
		if err != nil {
			return fmt.Errorf("unable to detect the display resolution, specify one with -r WIDTHxHEIGHT: %w", err)
		}
	}

	fit, err := imaging.ParseFit(cfg.Fit)
	if err != nil {
		return err
	}

	renderer, err := imaging.NewRenderer(fit)
	if err != nil {
		return err
	}
	defer renderer.Close()

	setter, err := wallpaper.New()
	if err != nil {
		return err
	}

	show, err := slideshow.New(slideshow.Options{
		Directory:  cfg.Directory,
		Interval:   time.Duration(cfg.TransitionTime) * time.Second,
		Resolution: res,
		Shuffle:    cfg.Shuffle,
	}, renderer, setter)
	if err != nil {
		return err
	}

	if cfg.Listen != "" {
		webServer := api.NewWebServer(show, db)
		go webServer.Start(cfg.Listen)
	}

	if db != nil {
		scheduleManager, err := api.NewScheduleManager(db, show)
		if err != nil {
			return err
		}
		go scheduleManager.Run()
	}

	if cfg.S3Bucket != "" {
		remoteManager, err := remote.NewManager(cfg.Directory, cfg.S3Profile, cfg.S3Bucket)
		if err != nil {
			return err
		}
		go remoteManager.Run()
		go func() {
			for range remoteManager.Updated {
				slog.Info("album updated from remote, advancing slideshow")
				show.Next()
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting slideshow",
		"directory", cfg.Directory,
		"interval_seconds", cfg.TransitionTime,
		"resolution", res.String(),
		"fit", string(fit),
		"shuffle", cfg.Shuffle,
	)
	return show.Run(ctx)
}
