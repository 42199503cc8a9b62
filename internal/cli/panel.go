package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/gradientfill/internal/config"
	"github.com/jmylchreest/gradientfill/internal/host"
	"github.com/jmylchreest/gradientfill/internal/panel"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

func newPanelCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Open the interactive gradient panel",
		Long: `Open the plugin panel in the terminal. Type a colour and press enter to apply
it, press ctrl+r for a random colour, esc to quit. The panel shows the gradient
preview the plugin sends back and any notice from the host.

Logs would corrupt the panel, so they are discarded unless --log-file is set.

Examples:
  gradientfill panel
  gradientfill panel --document card.yaml --verbose --log-file panel.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("the panel needs an interactive terminal")
			}

			logOut := io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				logOut = f
			}

			s, err := openSession(cmd, logOut)
			if err != nil {
				return err
			}
			defer s.Close()

			return runPanel(cmd, s)
		},
	}
	cmd.Flags().Uint64(config.FlagSeed, 0, "seed for random colours, unseeded when 0 (env: "+config.EnvSeed+")")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the panel runs")
	return cmd
}

func runPanel(cmd *cobra.Command, s *session) error {
	// The host needs the program to post into and the model needs the host
	// to deliver through, so the host is bound after the program exists.
	var h *host.Host
	deliver := func(ctx context.Context, msg plugin.Message) error {
		return s.deliver(ctx, h, msg)
	}

	width, height := s.panelSize()
	p := tea.NewProgram(
		panel.New(deliver, width, height),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	h = host.New(s.doc, s.dispatcher, panel.NewProgramPanel(p), s.logger)

	s.logger.Info("panel open", "plugin", s.info.Name, "width", width, "height", height)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("panel failed: %w", err)
	}
	return nil
}
