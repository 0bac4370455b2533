package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"niclean/internal/capability"
	"niclean/internal/config"
)

func newToolsCommand(flags *cleanFlags) *cobra.Command {
	var toolsDir, imageTool, videoTool string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Show which stripping tools were found",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(flags.configPath, "")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if strings.TrimSpace(toolsDir) != "" {
				cfg.Tools.Dir = toolsDir
			}
			if strings.TrimSpace(imageTool) != "" {
				cfg.Tools.Image = imageTool
			}
			if strings.TrimSpace(videoTool) != "" {
				cfg.Tools.Video = videoTool
			}

			resolver := capability.Resolver{
				BundledDir: cfg.Tools.Dir,
				ImageTool:  cfg.Tools.Image,
				VideoTool:  cfg.Tools.Video,
			}
			caps := resolver.Resolve(cmd.Context())

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Tool", "Purpose", "Found", "Location"})
			for _, cap := range []capability.Capability{caps.Image, caps.Video} {
				location := cap.Command
				if !cap.Available {
					location = cap.Detail
				}
				tw.AppendRow(table.Row{cap.Name, cap.Description, yesNo(cap.Available), location})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tw.Render())
			if missing := caps.Missing(); len(missing) > 0 {
				fmt.Fprintf(out, "Missing: %s. Files handled by a missing tool are copied without stripping.\n", strings.Join(missing, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&toolsDir, "tools-dir", "", "Directory checked for bundled tool binaries before PATH")
	cmd.Flags().StringVar(&imageTool, "image-tool", "", "Image metadata tool binary name or path")
	cmd.Flags().StringVar(&videoTool, "video-tool", "", "Video remux tool binary name or path")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
