package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/brettbedarf/repotree/config"
	"github.com/brettbedarf/repotree/internal/util"
	"github.com/brettbedarf/repotree/manifest"
	"github.com/brettbedarf/repotree/repository"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configPath string
		verbose    int
		checksums  bool
	)
	flagSet := pflag.NewFlagSet("repotree", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "Path to config override file (.yaml, .yml or .json)")
	flagSet.IntVarP(&verbose, "verbose", "v", config.InfoVerbose,
		"Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flagSet.BoolVar(&checksums, "checksums", false, "Print checksum values in the listing")
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: repotree [flags] manifest...\n\n%s", flagSet.FlagUsages())
	}
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	override := &config.ConfigOverride{}
	if configPath != "" {
		var err error
		if override, err = config.LoadConfigOverrideFile(configPath); err != nil {
			return err
		}
	}
	// CLI flag wins over the file only when given explicitly
	if flagSet.Changed("verbose") || override.LogLvl == nil {
		override.LogLvl = &verbose
	}
	cfg := config.NewConfig(override)
	if err := cfg.Validate(); err != nil {
		return err
	}

	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")

	manifests := flagSet.Args()
	if len(manifests) == 0 {
		flagSet.Usage()
		return fmt.Errorf("no manifest specified")
	}
	logger.Info().Strs("manifests", manifests).Str("metadata", cfg.MetadataName).
		Stringer("checksum", cfg.ChecksumAlgorithm).Msg("Building repository tree")

	repo := repository.New(cfg)
	var failed int
	for _, path := range manifests {
		reqs, err := manifest.LoadFile(path, manifest.Defaults{Overwrite: cfg.AllowOverwrite})
		if err != nil {
			return err
		}
		logger.Debug().Str("manifest", path).Int("artifacts", len(reqs)).Msg("Manifest loaded")

		res, err := repo.Load(reqs)
		if err != nil {
			logger.Error().Err(err).Str("manifest", path).Msg("Failed to add some artifacts")
		}
		failed += res.Failed
	}

	stats := repo.Stats()
	logger.Info().Int("directories", stats.Directories).Int("artifacts", stats.Artifacts).
		Int("metadata", stats.Metadata).Msg("Repository tree built")

	out := bufio.NewWriter(os.Stdout)
	if err := repo.Listing(out, checksums); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d artifact(s) could not be added", failed)
	}
	return nil
}
