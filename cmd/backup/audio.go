package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"funenglish/internal/audio"
	"funenglish/internal/catalog"
	"funenglish/internal/config"
	"funenglish/internal/logging"
)

var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Manage the cached speech files",
}

var audioPrefetchCmd = &cobra.Command{
	Use:   "prefetch",
	Short: "Download speech for every catalog entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		tts, err := openTTS()
		if err != nil {
			return err
		}

		var texts []string
		for _, c := range catalog.Default().Categories() {
			for i := 0; i < c.Len(); i++ {
				entry := c.Entry(i)
				texts = append(texts, entry.Label, entry.Speech)
			}
		}

		files, err := tts.Prefetch(cmd.Context(), texts)
		if err != nil {
			return fmt.Errorf("prefetch failed after %d files: %w", len(files), err)
		}
		cmd.Printf("Cached %d phrases\n", len(files))
		return nil
	},
}

var audioPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all cached speech files",
	RunE: func(cmd *cobra.Command, args []string) error {
		tts, err := openTTS()
		if err != nil {
			return err
		}
		removed, err := tts.Purge()
		if err != nil {
			return err
		}
		cmd.Printf("Removed %d files\n", removed)
		return nil
	},
}

func openTTS() (*audio.TTSService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return audio.NewTTSService(cfg.AudioDir,
		audio.WithLanguage(cfg.SpeechLanguage),
		audio.WithRate(cfg.SpeechRate),
		audio.WithLogger(logger),
	)
}

func init() {
	audioCmd.AddCommand(audioPrefetchCmd, audioPurgeCmd)
	rootCmd.AddCommand(audioCmd)
}
