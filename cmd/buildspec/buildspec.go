// Package buildspec implements the build-spec sub-command.
package buildspec

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/DrW3RK/parachain-node/chainspec"
	"github.com/DrW3RK/parachain-node/cmd/common"
	"github.com/DrW3RK/parachain-node/config"
	"github.com/DrW3RK/parachain-node/log"
)

const moduleName = "build_spec"

var (
	// Path to the configuration file.
	configFile string
	// Chain profile id or chain spec path.
	chain string
	// Path to the compiled runtime. Overrides chain_spec.runtime.
	runtimePath string
	// Output path; empty writes to stdout.
	outputPath string

	buildSpecCmd = &cobra.Command{
		Use:   "build-spec",
		Short: "Build a chain spec",
		Run:   runBuildSpec,
	}
)

func runBuildSpec(cmd *cobra.Command, args []string) {
	cfg := common.LoadConfig(configFile)
	logger := common.RootLogger().WithModule(moduleName)

	if err := buildToOutput(outputPath, chain, resolveRuntimePath(cfg), cfg, logger); err != nil {
		logger.Error("build-spec failed", "chain", chain, "output", outputPath, "err", err)
		os.Exit(1)
	}
}

// buildToOutput runs Build against the output file, or stdout when path is
// empty. The file is closed before returning so a failed flush is reported.
func buildToOutput(path string, chainID string, runtime string, cfg *config.Config, logger *log.Logger) error {
	if path == "" {
		return Build(os.Stdout, chainID, runtime, cfg, logger)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	if err = Build(f, chainID, runtime, cfg, logger); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

func resolveRuntimePath(cfg *config.Config) string {
	if runtimePath != "" {
		return runtimePath
	}
	if cfg.ChainSpec != nil {
		return cfg.ChainSpec.Runtime
	}
	return ""
}

// Build resolves the chain, builds its spec and writes it as indented JSON.
// The runtime is read from runtime unless it is empty.
func Build(w io.Writer, chainID string, runtime string, cfg *config.Config, logger *log.Logger) error {
	var code []byte
	if runtime != "" {
		var err error
		if code, err = os.ReadFile(runtime); err != nil {
			return fmt.Errorf("reading runtime: %w", err)
		}
		logger.Debug("read runtime", "path", runtime, "size", len(code))
	}

	var live *config.LiveConfig
	if cfg != nil && cfg.ChainSpec != nil {
		live = cfg.ChainSpec.Live
	}
	spec, err := chainspec.NewBuilder(logger).Load(chainID, code, live)
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding chain spec: %w", err)
	}
	if _, err = w.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("writing chain spec: %w", err)
	}
	return nil
}

// Register registers the build-spec sub-command.
func Register(parentCmd *cobra.Command) {
	buildSpecCmd.Flags().StringVar(&configFile, "config", "", "path to the config.yml file")
	buildSpecCmd.Flags().StringVar(&chain, "chain", "local", "chain profile (dev, local, live) or path to a chain spec file")
	buildSpecCmd.Flags().StringVar(&runtimePath, "runtime", "", "path to the compiled runtime")
	buildSpecCmd.Flags().StringVar(&outputPath, "output", "", "path to write the chain spec to (default stdout)")
	parentCmd.AddCommand(buildSpecCmd)
}
