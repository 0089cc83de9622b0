// file: cmd/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/cmd/server"
	"github.com/dkoosis/sonarr-mcp/internal/config"
	"github.com/dkoosis/sonarr-mcp/internal/credentials"
	"github.com/dkoosis/sonarr-mcp/internal/format"
	"github.com/dkoosis/sonarr-mcp/internal/logging"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Version information, set during build via ldflags.
var (
	Version    = "0.1.0-dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

const checkTimeout = time.Minute

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Command output goes to out; logs always go to stderr.
func newRootCmd(out io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "sonarr-mcp",
		Short:         "MCP server for managing a Sonarr instance",
		Long:          "sonarr-mcp exposes Sonarr series, episodes, queue, history and calendar as MCP tools and resources over stdio.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to YAML configuration file (default $"+config.PathEnvVar+")")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the MCP server on stdio",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return server.RunServer(configPath, Version)
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Validate configuration and test the Sonarr connection",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runCheck(cmd.Context(), cmd.OutOrStdout(), configPath)
			},
		},
		&cobra.Command{
			Use:   "config",
			Short: "Print the effective configuration with secrets masked",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runConfig(cmd.OutOrStdout(), configPath)
			},
		},
		newKeyringCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "sonarr-mcp %s\n", Version)
				fmt.Fprintf(cmd.OutOrStdout(), "Build: %s (%s)\n", commitHash, buildDate)
				fmt.Fprintf(cmd.OutOrStdout(), "Compiler: %s\n", runtime.Version())
			},
		},
	)
	return root
}

func loadConfig(path string) (*config.Config, error) {
	logging.SetupDefaultLogger("warn")
	cfg, err := config.Load(path, credentials.NewKeyringStore(logging.GetLogger("keyring")))
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCheck(ctx context.Context, out io.Writer, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	client, err := sonarr.NewClient(server.Connection(cfg.Sonarr), logging.GetLogger("sonarr"))
	if err != nil {
		return err
	}
	status, disks, err := sonarr.FetchStatusAndDisks(ctx, client)
	if err != nil {
		return errors.Wrapf(err, "Failed to connect to %s", client.BaseURL())
	}

	fmt.Fprintf(out, "Connected to %s %s at %s\n", status.AppName, status.Version, client.BaseURL())
	fmt.Fprintf(out, "OS: %s %s\n", status.OsName, status.OsVersion)
	for _, d := range format.Disks(disks) {
		fmt.Fprintf(out, "Disk %s: %.2f GB free of %.2f GB (%d%%)\n", d.Path, d.FreeSpaceGB, d.TotalSpaceGB, d.PercentFree)
	}
	return nil
}

func runConfig(out io.Writer, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Masked()); err != nil {
		return errors.Wrap(err, "failed to encode configuration")
	}
	return enc.Close()
}

func newKeyringCmd() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "keyring",
		Short: "Manage the Sonarr API key stored in the system keyring",
	}
	cmd.PersistentFlags().StringVar(&url, "url", "", "Sonarr base URL the key belongs to (required)")
	_ = cmd.MarkPersistentFlagRequired("url")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set [api-key]",
			Short: "Store an API key; reads it from stdin when not given as an argument",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				key, err := keyArg(c.InOrStdin(), args)
				if err != nil {
					return err
				}
				if err := credentials.NewKeyringStore(nil).Save(url, key); err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "Stored API key for %s\n", url)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Remove the stored API key",
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				if err := credentials.NewKeyringStore(nil).Delete(url); err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "Deleted API key for %s\n", url)
				return nil
			},
		},
	)
	return cmd
}

// keyArg returns the key from args, or the first line of r.
func keyArg(r io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}
	b, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "", errors.Wrap(err, "failed to read API key from stdin")
	}
	key, _, _ := strings.Cut(string(b), "\n")
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("API key is empty")
	}
	return key, nil
}
