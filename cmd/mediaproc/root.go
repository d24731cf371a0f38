package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mediaproc",
		Short:         "Download, transcode and subtitle videos with ffmpeg and yt-dlp",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newDownloadCommand(a))
	rootCmd.AddCommand(newExtractAudioCommand(a))
	rootCmd.AddCommand(newGenerateSubtitlesCommand(a))
	rootCmd.AddCommand(newBurnSubtitlesCommand(a))
	rootCmd.AddCommand(newCleanupCommand())
	rootCmd.AddCommand(newServeCommand(a))

	return rootCmd
}
