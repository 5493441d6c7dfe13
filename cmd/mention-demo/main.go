package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/atmention"
	"github.com/iw2rmb/atmention/editor"
	"github.com/iw2rmb/atmention/internal/config"
	"github.com/iw2rmb/atmention/internal/logging"
	"github.com/iw2rmb/atmention/mention"
)

func newRootCmd() *cobra.Command {
	loader := config.New()
	cmd := &cobra.Command{
		Use:           "mention-demo",
		Short:         "Edit a document with inline @mentions",
		Version:       atmention.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, loader)
		},
	}

	f := cmd.Flags()
	f.StringP("config", "c", "", "config file (default $HOME/.config/atmention/atmention.yaml)")
	f.StringP("load", "l", "", "HTML document to open")
	f.StringP("out", "o", "", "write the document HTML here on exit instead of stdout")
	f.Duration("delay", mention.DefaultDelay, "delay before suggestions appear (0 shows them on the next tick)")
	f.Bool("drop-stale", false, "discard suggestions computed for superseded input")
	f.BoolP("debug", "d", false, "debug logging")
	f.String("log-file", "", "log file (default "+logging.DefaultPath()+")")

	if err := loader.BindFlags(f); err != nil {
		panic(err)
	}
	return cmd
}

func run(cmd *cobra.Command, loader *config.Loader) error {
	flags := cmd.Flags()
	cfgPath, _ := flags.GetString("config")
	cfg, err := loader.Load(cfgPath)
	if err != nil {
		return err
	}

	logOpts := cfg.LogOptions()
	debug, _ := flags.GetBool("debug")
	if debug {
		logOpts.Level = slog.LevelDebug
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)
	slog.Info("starting", "version", atmention.Version(), "config", loader.File(), "log", logger.Path())

	if loader.File() != "" {
		loader.Watch(func(c *config.Config, err error) {
			if err != nil {
				slog.Warn("config reload failed", "error", err)
				return
			}
			if !debug {
				logger.SetLevel(c.LogLevel())
			}
			slog.Info("config reloaded", "log_level", c.Log.Level)
		})
	}

	html := ""
	if path, _ := flags.GetString("load"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("load document: %w", err)
		}
		html = string(data)
	}

	opts := cfg.MentionOptions()
	if dropStale, _ := flags.GetBool("drop-stale"); dropStale {
		opts.StalePolicy = mention.StaleDropSuperseded
	}

	zone.NewGlobal()
	m, err := newModel(editor.Config{
		HTML:       html,
		Style:      editor.DefaultStyle(),
		Mention:    opts,
		Zones:      zone.DefaultManager,
		ShowStatus: cfg.Editor.ShowStatus,
		Logger:     logger.Logger,
	})
	if err != nil {
		return err
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := program.Run()
	if err != nil {
		slog.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	out, err := final.(model).editor.HTML()
	if err != nil {
		return err
	}
	return writeOutput(cmd, out)
}

func writeOutput(cmd *cobra.Command, html string) error {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), html)
		return err
	}
	if err := os.WriteFile(path, []byte(html+"\n"), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
