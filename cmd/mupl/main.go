package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/glebovdev/mupl/internal/audio"
	"github.com/glebovdev/mupl/internal/cache"
	"github.com/glebovdev/mupl/internal/catalog"
	"github.com/glebovdev/mupl/internal/config"
	"github.com/glebovdev/mupl/internal/playlist"
	"github.com/glebovdev/mupl/internal/service"
	"github.com/glebovdev/mupl/internal/session"
	"github.com/glebovdev/mupl/internal/ui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	debug       bool
	musicFolder string
	dataDir     string
}

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         config.AppDescription,
		Version:       config.AppVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts.debug)
			return run(cmd.Context(), opts)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("%s v{{.Version}}\n%s\n", config.AppName, config.AppDescription))

	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.musicFolder, "music-folder", "", "Music folder to scan (overrides config.json)")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding config.json, data.json and playlist.json")

	return cmd
}

func setupLogging(debug bool) {
	if !debug {
		// Avoid TUI corruption by only logging errors to /dev/null
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		logFile, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0644)
		if err == nil {
			log.Logger = log.Output(logFile)
		}
		return
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	cacheDir, err := cache.GetCacheDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not get cache dir: %v\n", err)
		cacheDir = os.TempDir()
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log dir: %v\n", err)
	}
	logPath := filepath.Join(cacheDir, "debug.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log file: %v\n", err)
		logFile = os.Stderr
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: logFile, TimeFormat: "15:04:05"})
	fmt.Printf("Debug log: %s\n", logPath)
	log.Info().Msgf("Starting %s v%s (debug mode)", config.AppName, config.AppVersion)
}

func resolvePaths(dataDir string) (config.Paths, error) {
	if dataDir != "" {
		abs, err := filepath.Abs(dataDir)
		if err != nil {
			return config.Paths{}, fmt.Errorf("failed to resolve data dir: %w", err)
		}
		return config.Paths{Dir: abs}, nil
	}
	return config.DefaultPaths()
}

func run(ctx context.Context, opts *options) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	paths, err := resolvePaths(opts.dataDir)
	if err != nil {
		return err
	}
	if err := paths.EnsureDefaultFiles(); err != nil {
		return err
	}
	log.Debug().Msgf("Data dir: %s", paths.Dir)

	cfg, err := config.Load(paths.ConfigPath())
	if err != nil {
		return err
	}
	if opts.musicFolder != "" {
		cfg.MusicFolder = opts.musicFolder
	}
	root, err := cfg.ResolveMusicFolder()
	if err != nil {
		if errors.Is(err, config.ErrNoMusicFolder) {
			return fmt.Errorf("%w: set it in %s or pass --music-folder", err, paths.ConfigPath())
		}
		return err
	}

	metadata, err := config.LoadMetadata(paths.MetadataPath())
	if err != nil {
		return err
	}
	store, err := playlist.Open(paths.PlaylistPath())
	if err != nil {
		return err
	}

	probeCache, err := cache.NewCache()
	if err != nil {
		log.Warn().Err(err).Msg("Probe cache disabled")
	}

	library := service.NewLibraryService(catalog.FileProber{}, probeCache, metadata)
	if _, err := library.Load(ctx, root, cfg.Extensions); err != nil {
		return err
	}

	actor, err := audio.Spawn(audio.OpenSpeaker)
	if err != nil {
		return err
	}
	defer func() {
		actor.Close()
		<-actor.Done()
		log.Debug().Msg("Audio actor stopped")
	}()

	s := session.New(session.Options{
		Library:   library,
		Playlists: store,
		Audio:     actor,
		Volume:    cfg.Volume,
	})
	if err := s.Start(cfg.Autoplay); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}

	err = ui.NewUI(s, cfg).Run(ctx, screen)
	screen.Fini()
	if err != nil {
		log.Error().Err(err).Msg("Session ended with error")
		return err
	}

	log.Info().Msgf("%s stopped", config.AppName)
	return nil
}
