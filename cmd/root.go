package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Avyakta000/mcp-client/internal/cli"
	"github.com/Avyakta000/mcp-client/internal/client"
	"github.com/Avyakta000/mcp-client/internal/config"
	"github.com/Avyakta000/mcp-client/pkg/logging"
)

var (
	rootConfigPath string
	rootEndpoint   string
	rootNoColor    bool
	rootVerbose    bool
)

// rootCmd is the base command for the MCP dashboard CLI.
var rootCmd = &cobra.Command{
	Use:   "mcp-client",
	Short: "Manage and explore MCP server connections",
	Long: `mcp-client is a dashboard for MCP tool-server connections: inspect
connection status, activate/deactivate/restart servers, create and edit
server definitions, and browse the tools a connected server exposes.

All server lifecycle work happens in the aggregator backend; this CLI only
renders its state and forwards your requests.`,
	// SilenceUsage prevents Cobra from printing the usage message on
	// errors that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if rootVerbose {
			level = logging.LevelDebug
		}
		logging.Init(level, os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Config file path (default ~/.config/mcp-client/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootEndpoint, "endpoint", "", "Aggregator endpoint URL (env: "+config.EndpointEnvVar+")")
	rootCmd.PersistentFlags().BoolVar(&rootNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
}

// SetVersion sets the version for the root command. Called from main with
// the build-time version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcp-client version %s\n" .Version}}`)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// activeConfig loads the configuration and applies flag overrides.
func activeConfig() (config.Config, error) {
	path := rootConfigPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return config.Default(), err
		}
		path = defaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if rootEndpoint != "" {
		cfg.Endpoint = rootEndpoint
	}
	if rootNoColor {
		color := false
		cfg.Color = &color
	}
	return cfg, nil
}

// resolveOutput picks the output format: the command's flag when set,
// otherwise the configured default.
func resolveOutput(flagValue string, cfg config.Config) (cli.OutputFormat, error) {
	format := flagValue
	if format == "" {
		format = cfg.Output
	}
	if err := cli.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return cli.OutputFormat(format), nil
}

// connectBackend creates and connects the aggregator-backed collaborator.
// The caller owns Close.
func connectBackend(ctx context.Context, cfg config.Config) (*client.Backend, error) {
	backend, err := client.New(client.Options{
		Endpoint:  cfg.Endpoint,
		Transport: cfg.Transport,
		Timeout:   cfg.Timeout(),
	})
	if err != nil {
		return nil, err
	}
	if err := backend.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to aggregator at %s: %w", cfg.Endpoint, err)
	}
	return backend, nil
}
