package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"niclean/internal/batch"
	"niclean/internal/capability"
	"niclean/internal/config"
	"niclean/internal/logging"
	"niclean/internal/media"
	"niclean/internal/naming"
)

// errMissingTools is returned under --strict-tools when a stripping tool
// could not be resolved. main maps it to its own exit status.
var errMissingTools = errors.New("required tools are missing")

// errGUIUnavailable covers --gui invocations. The graphical front-end
// is distributed separately from this binary.
var errGUIUnavailable = errors.New("the graphical front-end is not part of this binary; run `niclean <input-folder>` instead")

func runClean(cmd *cobra.Command, args []string, flags *cleanFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flags.gui {
		return errGUIUnavailable
	}

	inputDir, err := resolveInputFolder(cmd, args, flags)
	if err != nil {
		return err
	}

	cfg, _, _, err := config.Load(flags.configPath, inputDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlagOverrides(cmd, cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	preset, err := naming.ParsePreset(cfg.Naming.Preset)
	if err != nil {
		return err
	}

	resolver := capability.Resolver{
		BundledDir: cfg.Tools.Dir,
		ImageTool:  cfg.Tools.Image,
		VideoTool:  cfg.Tools.Video,
	}
	caps := resolver.Resolve(ctx)
	if cfg.Processing.StrictTools {
		if missing := caps.Missing(); len(missing) > 0 {
			return fmt.Errorf("%w: %s", errMissingTools, strings.Join(missing, ", "))
		}
	}

	outputRoot := resolveOutputRoot(inputDir, cfg.Naming.OutputFolder)
	classifier := media.NewClassifier(cfg.Extensions.Image, cfg.Extensions.Video)

	orchestrator, err := batch.New(batch.Params{
		InputRoot:      inputDir,
		OutputRoot:     outputRoot,
		Preset:         preset,
		Recursive:      cfg.Processing.IncludeSubfolders,
		DryRun:         cfg.Processing.DryRun,
		KeepTimestamps: cfg.Processing.KeepTimestamps,
		ToolTimeout:    time.Duration(cfg.Tools.TimeoutSeconds) * time.Second,
	}, caps, classifier, logger)
	if err != nil {
		return err
	}

	report, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderReport(report, cfg.Processing.DryRun))

	if cfg.Processing.OpenWhenDone && !cfg.Processing.DryRun && !report.Canceled {
		if err := openFolder(outputRoot); err != nil {
			logger.Debug("could not open output folder", logging.Error(err))
		}
	}
	if report.Canceled {
		return ctx.Err()
	}
	return nil
}

// resolveInputFolder picks the folder to clean: the positional argument,
// then --input, then a prompt on an interactive terminal, and finally
// the current directory.
func resolveInputFolder(cmd *cobra.Command, args []string, flags *cleanFlags) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return config.ExpandPath(args[0])
	}
	if strings.TrimSpace(flags.input) != "" {
		return config.ExpandPath(flags.input)
	}

	if stdin, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(stdin.Fd()) {
		fmt.Fprint(cmd.OutOrStdout(), "Input folder [.]: ")
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read input folder: %w", err)
		}
		if line = strings.TrimSpace(line); line != "" {
			return config.ExpandPath(line)
		}
	}
	return os.Getwd()
}

// resolveOutputRoot treats a bare folder name as relative to the input
// folder and an absolute value as a full destination path.
func resolveOutputRoot(inputDir, outputFolder string) string {
	outputFolder = strings.TrimSpace(outputFolder)
	if outputFolder == "" {
		outputFolder = config.DefaultOutputFolder
	}
	if filepath.IsAbs(outputFolder) {
		return filepath.Clean(outputFolder)
	}
	return filepath.Join(inputDir, outputFolder)
}

// applyFlagOverrides layers explicitly-set flags over the loaded
// configuration. Unset flags leave the file values alone.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, flags *cleanFlags) {
	set := cmd.Flags().Changed

	if set("output") {
		cfg.Naming.OutputFolder = flags.output
	}
	if set("naming") {
		cfg.Naming.Preset = flags.preset
	}
	if set("include-subfolders") {
		cfg.Processing.IncludeSubfolders = flags.includeSubfolders
	}
	if set("dry-run") {
		cfg.Processing.DryRun = flags.dryRun
	}
	if set("keep-timestamps") {
		cfg.Processing.KeepTimestamps = flags.keepTimestamps
	}
	if set("strict-tools") {
		cfg.Processing.StrictTools = flags.strictTools
	}
	if set("no-open") {
		cfg.Processing.OpenWhenDone = !flags.noOpen
	}
	if set("tools-dir") {
		cfg.Tools.Dir = flags.toolsDir
	}
	if set("image-tool") {
		cfg.Tools.Image = flags.imageTool
	}
	if set("video-tool") {
		cfg.Tools.Video = flags.videoTool
	}
	if set("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if set("log-format") {
		cfg.Logging.Format = flags.logFormat
	}
}
