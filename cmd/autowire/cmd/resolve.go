package cmd

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sectrean/autowire"
	"github.com/sectrean/autowire/config"
	"github.com/sectrean/autowire/container"
	"github.com/sectrean/autowire/internal/errors"
	"github.com/sectrean/autowire/manifest"
)

// ResolveOptions are the flags of the resolve command.
type ResolveOptions struct {
	ConfigPath string
	Output     string
	Watch      bool
	Bundles    map[string]string
}

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	opts := &ResolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the wiring of all discovered classes",
		Long: `Resolve loads the configuration, seeds the container with parameters and the
services file, discovers class manifests, runs one autowiring pass, validates the
result and writes it as a services file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Watch {
				return Watch(cmd.Context(), opts, cmd.OutOrStdout())
			}

			_, err := Resolve(opts, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "autowire.yaml", "Configuration file (.yaml or .toml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Resolve again when the configuration, the services file or a manifest changes")
	cmd.Flags().StringToStringVarP(&opts.Bundles, "bundle", "b", nil, "Bundle directory for @name/ paths, as name=dir")

	return cmd
}

// Run is the outcome of one resolve run.
type Run struct {
	Config    *config.Config
	Container *container.Container
	Files     []string
	Result    *autowire.Result
}

// Resolve runs the whole pipeline once and writes the services file.
func Resolve(opts *ResolveOptions, stdout io.Writer) (*Run, error) {
	cfg, err := config.Load(opts.ConfigPath, config.WithBundles(opts.Bundles))
	if err != nil {
		return nil, err
	}

	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	defer func() { _ = logger.Sync() }()

	run, err := resolve(cfg, logger)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := run.Container.Dump(&buf); err != nil {
		return nil, err
	}
	if err := writeOutput(opts.Output, buf.Bytes(), stdout); err != nil {
		return nil, err
	}

	logger.Info("services written",
		zap.String("output", opts.Output),
		zap.Int("definitions", len(run.Container.DefinitionIDs())),
	)
	return run, nil
}

func resolve(cfg *config.Config, logger *zap.Logger) (*Run, error) {
	c, err := container.New(container.WithParameters(cfg.Parameters))
	if err != nil {
		return nil, err
	}
	if cfg.Services != "" {
		if err := c.LoadFile(cfg.Services); err != nil {
			return nil, err
		}
	}

	run := &Run{Config: cfg, Container: c}
	batch := &manifest.Batch{}

	if cfg.Discovers() {
		run.Files, err = manifest.Discover(cfg.Autowiring.BuildDefinitions.Paths)
		if err != nil {
			return nil, err
		}
		logger.Debug("manifests discovered", zap.Strings("files", run.Files))

		batch, err = manifest.LoadFiles(run.Files)
		if err != nil {
			return nil, err
		}
	}

	r, err := autowire.NewResolver(c,
		autowire.WithSettings(cfg.Settings()),
		autowire.WithLogger(logger),
		autowire.WithTypes(batch.Types...),
	)
	if err != nil {
		return nil, err
	}

	run.Result, err = r.Resolve(batch.Classes)
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return run, nil
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}

	err := os.WriteFile(path, data, 0o644)
	return errors.Wrapf(err, "write %s", path)
}

// NewLogger builds the zap logger described by the log configuration.
func NewLogger(cfg config.Log) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, errors.Wrap(err, "log level")
		}
		zc.Level = level
	}

	logger, err := zc.Build()
	return logger, errors.Wrap(err, "build logger")
}
