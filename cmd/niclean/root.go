package main

import (
	"github.com/spf13/cobra"
)

type cleanFlags struct {
	configPath        string
	input             string
	output            string
	preset            string
	includeSubfolders bool
	dryRun            bool
	gui               bool
	keepTimestamps    bool
	strictTools       bool
	noOpen            bool
	toolsDir          string
	imageTool         string
	videoTool         string
	logLevel          string
	logFormat         string
}

func newRootCommand() *cobra.Command {
	flags := &cleanFlags{}

	rootCmd := &cobra.Command{
		Use:           "niclean [input-folder]",
		Short:         "Copy photos and videos with their metadata stripped",
		Long: `niclean reads a folder of photos and videos, writes metadata-stripped
copies into an output folder, and renames them the way a phone camera
would. The source files are never modified.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, args, flags)
		},
	}

	rootCmd.Flags().StringVarP(&flags.input, "input", "i", "", "Input folder to clean (defaults to the current directory)")
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output folder (name inside the input folder, or an absolute path)")
	rootCmd.Flags().StringVarP(&flags.preset, "naming", "n", "", "Naming preset: iphone or android")
	rootCmd.Flags().BoolVarP(&flags.includeSubfolders, "include-subfolders", "r", false, "Also process files in subfolders")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report what would happen without writing anything")
	rootCmd.Flags().BoolVar(&flags.gui, "gui", false, "Launch the graphical front-end")
	rootCmd.Flags().BoolVar(&flags.keepTimestamps, "keep-timestamps", true, "Carry source file times over to the copies")
	rootCmd.Flags().BoolVar(&flags.strictTools, "strict-tools", false, "Refuse to run when a stripping tool is missing")
	rootCmd.Flags().BoolVar(&flags.noOpen, "no-open", false, "Do not open the output folder when the batch finishes")
	rootCmd.Flags().StringVar(&flags.toolsDir, "tools-dir", "", "Directory checked for bundled tool binaries before PATH")
	rootCmd.Flags().StringVar(&flags.imageTool, "image-tool", "", "Image metadata tool binary name or path")
	rootCmd.Flags().StringVar(&flags.videoTool, "video-tool", "", "Video remux tool binary name or path")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&flags.logFormat, "log-format", "", "Log format: console or json")
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newToolsCommand(flags))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
