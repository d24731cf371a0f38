package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Belphemur/MediaProc/internal/services"
)

func newDownloadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "download <url> <output>",
		Short: "Download a video with yt-dlp (YouTube) or plain HTTP",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.videoDownloader().Download(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Video downloaded to: %s\n", args[1])
			return nil
		},
	}
}

func newExtractAudioCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract-audio <video> <audio>",
		Short: "Extract 16 kHz mono WAV audio from a video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.audioExtractor().ExtractAudio(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Audio extracted to: %s\n", args[1])
			return nil
		},
	}
}

func newGenerateSubtitlesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate-subtitles <audio> <output.srt> <api_url>",
		Short: "Transcribe audio to SRT with a remote ASR service",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcriber, release, err := a.transcriber(args[2])
			if err != nil {
				return err
			}
			defer release()

			if err := transcriber.Transcribe(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subtitles generated: %s\n", args[1])
			return nil
		},
	}
}

func newBurnSubtitlesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "burn-subtitles <video> <subtitles> <output>",
		Short: "Render a subtitle file onto a video",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.subtitleBurner().BurnSubtitles(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Video with subtitles: %s\n", args[2])
			return nil
		},
	}
}

func newCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup <temp_dir>",
		Short: "Delete everything inside a temp directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.NewCleaner().ClearDirectory(args[0])
			if err != nil {
				return err
			}
			for _, failed := range report.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not delete %s: %s\n", failed.Path, failed.Err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleanup completed")
			return nil
		},
	}
}
