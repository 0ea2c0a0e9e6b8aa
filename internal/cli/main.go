package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "autoclip <url>",
		Short:        "Turn a long-form video into short vertical clips",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", "out", "Output directory")
	root.Flags().Int("clips", 5, "Max number of clips")
	root.Flags().Int("min", 30, "Min clip duration seconds")
	root.Flags().Int("max", 90, "Max clip duration seconds")
	root.Flags().String("lang", "id", "Transcription language")
	root.Flags().Bool("dry-run", false, "Build and validate descriptors without rendering")
	root.Flags().BoolP("verbose", "v", false, "Debug logging")

	// Hidden tuning flags (internal)
	root.Flags().Bool("no-faces", false, "Skip face detection, center-crop every clip")
	_ = root.Flags().MarkHidden("no-faces")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
