package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"chat-viewer/internal/adapters/exporter"
	"chat-viewer/internal/domain"
	"chat-viewer/internal/ports"
	"chat-viewer/internal/tui"
	"chat-viewer/internal/viewer/view"
)

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "viewer",
		Short: "Viewer for chat transcripts imported into the backend",
		Long: `viewer uploads exported chat transcripts to the backend, lists the
imported chats and shows their messages. Without a subcommand it starts the
interactive viewer; when stdout is not a terminal it prints the chat list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to the YAML config file (default config.yml)")
	rootCmd.PersistentFlags().StringVar(&opts.backendURL, "backend", "", "backend base URL, overrides backend.url")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Start the interactive viewer",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTUI(cmd.Context(), opts)
			},
		},
		newUploadCmd(opts),
		newChatsCmd(opts),
		newShowCmd(opts),
		newExportCmd(opts),
	)

	return rootCmd
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runTUI(parent context.Context, opts *options) error {
	a, err := newApp(opts, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext(parent)
	defer cancel()

	if !a.terminal.Interactive() {
		a.logger.Info("stdout is not a terminal, printing chat list")
		return printChats(ctx, a)
	}

	presenter := tui.NewPresenter()
	chatList, _, uploader := a.loaders(presenter, presenter, presenter)

	p := tea.NewProgram(tui.New(ctx, chatList, uploader), tea.WithContext(ctx))
	presenter.Bind(p.Send)

	a.logger.Info("starting interactive viewer", "backend", a.cfg.Backend.URL)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running viewer: %w", err)
	}
	return nil
}

func printChats(ctx context.Context, a *app) error {
	console := exporter.NewConsoleRenderer(os.Stdout)
	chatList, _, _ := a.loaders(console, console, console)

	state := chatList.Load(ctx)
	if state.Placeholder.Kind == view.PlaceholderError {
		return errors.New(state.Placeholder.Text)
	}
	return nil
}

func newChatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chats",
		Short: "List imported chats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return printChats(ctx, a)
		},
	}
}

func newUploadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload chat exports one by one, then print the refreshed chat list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			console := exporter.NewConsoleRenderer(os.Stdout)
			_, _, uploader := a.loaders(console, console, console)

			report := uploader.Upload(ctx, args)
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d file(s) could not be uploaded", report.Failed, report.Attempted)
			}
			return nil
		},
	}
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID [NAME]",
		Short: "Print the messages of one chat",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			capture := &exporter.ThreadCapture{}
			console := exporter.NewConsoleRenderer(os.Stdout)
			_, messages, _ := a.loaders(console, exporter.TeeThreadView(console, capture), console)

			messages.Load(ctx, domain.NewChatID(args[0]), chatNameArg(args))
			_, state := capture.Snapshot()
			if state.Placeholder.Kind == view.PlaceholderError || state.Placeholder.Kind == view.PlaceholderInvalid {
				return errors.New(state.Placeholder.Text)
			}
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export ID [NAME]",
		Short: "Export the messages of one chat to an Excel workbook",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			capture := &exporter.ThreadCapture{}
			console := exporter.NewConsoleRenderer(os.Stderr)
			_, messages, _ := a.loaders(console, exporter.TeeThreadView(console, capture), console)

			messages.Load(ctx, domain.NewChatID(args[0]), chatNameArg(args))
			header, state := capture.Snapshot()

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer f.Close()

			var exp ports.ThreadExporter = exporter.NewExcelExporter(f, a.logger)
			if err := exp.Export(header, state); err != nil {
				_ = os.Remove(outPath)
				return fmt.Errorf("export failed: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Exported %d message(s) to %s\n", len(state.Messages), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "path of the .xlsx file to write")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func chatNameArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}
