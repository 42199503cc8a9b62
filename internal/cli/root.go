// Package cli provides the command-line interface for gradientfill.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/gradientfill/internal/colour"
	"github.com/jmylchreest/gradientfill/internal/config"
	"github.com/jmylchreest/gradientfill/internal/handler"
	"github.com/jmylchreest/gradientfill/internal/host"
	"github.com/jmylchreest/gradientfill/internal/plugin/executor"
	"github.com/jmylchreest/gradientfill/internal/scene"
	"github.com/jmylchreest/gradientfill/internal/security"
	"github.com/jmylchreest/gradientfill/internal/version"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// DotEnvFile is read from the working directory before the environment.
const DotEnvFile = ".env"

// NewRootCmd builds the gradientfill command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gradientfill",
		Short: "Fill shapes with a colour and its complement",
		Long: `gradientfill takes a colour, or picks one at random, works out its
complementary colour and fills the selected shape of a scene document with a
three-stop linear gradient between the two.

The scene document is a YAML or JSON file holding nodes and the current
selection. Messages can be sent from the command line or from the interactive
panel, and are handled by the builtin plugin or by an external plugin binary.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(config.FlagDocument, "d", config.DefaultDocument, "scene document to load and update (env: "+config.EnvDocument+")")
	flags.String(config.FlagPlugin, "", "external plugin binary, builtin plugin when empty (env: "+config.EnvPlugin+")")
	flags.BoolP(config.FlagVerbose, "v", false, "enable verbose output (env: "+config.EnvVerbose+")")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newSelectColorCmd(),
		newRandomiseCmd(),
		newSendCmd(),
		newPanelCmd(),
		newPreviewCmd(),
		newSceneCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the flags set on cmd over .env and the environment.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.NewBuilder().
		WithDotEnv(DotEnvFile).
		WithEnv().
		WithFlags(cmd.Flags()).
		Build()
	if err != nil {
		return cfg, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(out io.Writer, verbose bool) hclog.Logger {
	level := hclog.Off
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "gradientfill",
		Output: out,
		Level:  level,
	})
}

// session is a loaded document and a ready plugin for one command run.
type session struct {
	cfg        config.Config
	logger     hclog.Logger
	doc        *scene.Document
	dispatcher host.Dispatcher
	info       plugin.PluginInfo
	closeFn    func()
}

// openSession resolves configuration, loads the document and starts the
// configured plugin. Logs go to logOut. Callers must call Close.
func openSession(cmd *cobra.Command, logOut io.Writer) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(logOut, cfg.Verbose)

	doc, err := scene.Load(cfg.DocumentPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w (create one with `gradientfill scene init`)", err)
	}
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger, doc: doc, closeFn: func() {}}
	if err := s.startPlugin(cmd.Context()); err != nil {
		return nil, err
	}
	logger.Debug("session ready", "document", cfg.DocumentPath, "plugin", s.info.Name, "plugin_version", s.info.Version)
	return s, nil
}

func (s *session) startPlugin(ctx context.Context) error {
	if s.cfg.PluginPath == "" {
		p := handler.NewPlugin(handler.New(
			handler.WithSource(colour.NewSource(s.cfg.Seed)),
			handler.WithLogger(s.logger.Named("handler")),
		))
		s.dispatcher = p
		s.info = p.GetMetadata()
		return nil
	}

	opts := []executor.Option{
		executor.WithVerbose(s.cfg.Verbose),
		executor.WithLogger(s.logger),
	}
	if s.cfg.Seed != 0 {
		opts = append(opts, executor.WithEnv(fmt.Sprintf("%s=%d", config.EnvSeed, s.cfg.Seed)))
	}

	path, err := security.ValidatePluginPath(s.cfg.PluginPath)
	if err != nil {
		return err
	}
	pe, err := executor.New(ctx, path, opts...)
	if err != nil {
		return fmt.Errorf("failed to load plugin %s: %w", s.cfg.PluginPath, err)
	}
	s.dispatcher = pe
	s.info = pe.Info()
	s.closeFn = pe.Close
	return nil
}

// panelSize is the panel size the plugin asked for, or the configured default.
func (s *session) panelSize() (int, int) {
	w, h := s.cfg.UIWidth, s.cfg.UIHeight
	if s.info.UIWidth > 0 && s.info.UIHeight > 0 {
		w, h = s.info.UIWidth, s.info.UIHeight
	}
	return w, h
}

// deliver sends msg through h and saves the document when the plugin
// changed any fills.
func (s *session) deliver(ctx context.Context, h *host.Host, msg plugin.Message) error {
	effects, err := h.Deliver(ctx, msg)
	if err != nil {
		return err
	}
	if len(effects.Fills) == 0 {
		return nil
	}
	if err := s.doc.Save(s.cfg.DocumentPath); err != nil {
		return err
	}
	s.logger.Debug("saved document", "path", s.cfg.DocumentPath)
	return nil
}

// Close stops the plugin process, if any.
func (s *session) Close() {
	s.closeFn()
}

// runMessage delivers a single message and prints what the plugin sent back.
func runMessage(cmd *cobra.Command, msg plugin.Message) error {
	s, err := openSession(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	h := host.New(s.doc, s.dispatcher, host.NewPrintPanel(cmd.OutOrStdout()), s.logger)
	return s.deliver(cmd.Context(), h, msg)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
