// Command girsurface translates GObject Introspection data into
// target-surface type declaration files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/girsurface/girsurface/internal/cli"
	"github.com/girsurface/girsurface/internal/config"
	"github.com/girsurface/girsurface/internal/diag"
	"github.com/girsurface/girsurface/internal/emit"
	"github.com/girsurface/girsurface/internal/generate"
	"github.com/girsurface/girsurface/internal/watch"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runGenerate := func(ctx context.Context, opts cli.GenerateOptions) error {
		cfg, err := loadEffectiveConfig(configOverlay{
			girDirs:        opts.GIRDirectories,
			outDir:         opts.OutDir,
			environment:    opts.Environment,
			buildType:      opts.BuildType,
			inheritance:    opts.Inheritance,
			inheritanceSet: opts.InheritanceSet,
			verbose:        opts.Verbose,
			configPath:     opts.ConfigPath,
		})
		if err != nil {
			return err
		}
		summary, err := generate.Run(generate.Options{Cfg: cfg, Overrides: emit.Overrides{}, Namespace: opts.Namespace})
		if err != nil {
			return err
		}
		generate.PrintSummary(os.Stdout, summary, diag.ForModule("generate"))
		return nil
	}

	runWatch := func(ctx context.Context, opts cli.WatchOptions) error {
		cfg, err := loadEffectiveConfig(configOverlay{
			girDirs:        opts.GIRDirectories,
			outDir:         opts.OutDir,
			environment:    opts.Environment,
			buildType:      opts.BuildType,
			inheritance:    opts.Inheritance,
			inheritanceSet: opts.InheritanceSet,
			verbose:        opts.Verbose,
			configPath:     opts.ConfigPath,
		})
		if err != nil {
			return err
		}
		rerun := func() error {
			summary, err := generate.Run(generate.Options{Cfg: cfg, Overrides: emit.Overrides{}})
			if err != nil {
				return err
			}
			generate.PrintSummary(os.Stdout, summary, diag.ForModule("watch"))
			return nil
		}
		if err := rerun(); err != nil {
			return err
		}
		w, err := watch.New(cfg.GIRDirectories, rerun)
		if err != nil {
			return err
		}
		defer w.Close()
		fmt.Fprintln(os.Stderr, "watching for changes, press Ctrl-C to stop")
		go func() {
			<-ctx.Done()
			w.Close()
		}()
		return w.Run()
	}

	runListNamespaces := func(ctx context.Context, opts cli.ListNamespacesOptions) error {
		cfg, err := loadEffectiveConfig(configOverlay{girDirs: opts.GIRDirectories})
		if err != nil {
			return err
		}
		entries, err := generate.ListNamespaces(cfg)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(os.Stdout, "%s-%s\t%s\n", e.Namespace, e.Version, e.Path)
		}
		return nil
	}

	root := cli.NewRootCmd(version)
	root.AddCommand(cli.NewGenerateCmd(runGenerate))
	root.AddCommand(cli.NewWatchCmd(runWatch))
	root.AddCommand(cli.NewListNamespacesCmd(runListNamespaces))

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		jsonOut, _ := cmd.Flags().GetBool("json")
		return diag.Init(jsonOut, verbose)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// configOverlay carries the CLI flag values that take precedence over
// whatever loadEffectiveConfig reads from a config file or the process
// environment — one field per flag the generate/watch subcommands bind.
type configOverlay struct {
	girDirs        []string
	outDir         string
	environment    string
	buildType      string
	inheritance    bool
	inheritanceSet bool
	verbose        bool
	configPath     string
}

func loadEffectiveConfig(o configOverlay) (*config.Config, error) {
	configPath := o.configPath
	if configPath == "" {
		configPath, _ = os.LookupEnv("GIRSURFACE_CONFIG")
	}
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if len(o.girDirs) > 0 {
		cfg.GIRDirectories = o.girDirs
	}
	if o.outDir != "" {
		cfg.OutDir = o.outDir
	}
	if o.environment != "" {
		cfg.Environment = o.environment
	}
	if o.buildType != "" {
		cfg.BuildType = o.buildType
	}
	if o.inheritanceSet {
		cfg.Inheritance = o.inheritance
	}
	if o.verbose {
		cfg.Verbose = o.verbose
	}
	return cfg, nil
}
