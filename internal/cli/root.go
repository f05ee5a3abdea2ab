// Package cli implements the regctl command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/model-pkgs/registry"
	"github.com/model-pkgs/registry/client"
	"github.com/model-pkgs/registry/session"
)

var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Client for the model package registry",
	Long: `regctl talks to a model/package registry: log in, search and inspect
packages, ingest models behind the quality gate, rate them, and run
admin operations.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .regctl.toml)")
	rootCmd.PersistentFlags().String("api-url", "", "registry base URL")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".regctl")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("REGCTL")
	viper.AutomaticEnv()
	viper.SetDefault("timeout", 30*time.Second)

	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))

	// It's fine if no config file is found; env and flags still apply.
	_ = viper.ReadInConfig()

	level := slog.LevelWarn
	if verbose, _ := rootCmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// sessionToken defers token reads to the session store so the HTTP
// client and the store can be wired before either exists.
type sessionToken struct {
	store *session.Store
}

func (s *sessionToken) Token() string {
	if s.store == nil {
		return ""
	}
	return s.store.Token()
}

// stack is everything a command needs: the API client and the session.
type stack struct {
	reg   *registry.Registry
	store *session.Store
}

func newStack() (*stack, error) {
	base := viper.GetString("api_url")
	if base == "" {
		return nil, fmt.Errorf("registry URL not configured (set --api-url, REGCTL_API_URL, or api_url in .regctl.toml)")
	}

	credPath := viper.GetString("credentials")
	if credPath == "" {
		var err error
		credPath, err = session.DefaultCredentialsPath()
		if err != nil {
			return nil, fmt.Errorf("locating credentials file: %w", err)
		}
	}

	tok := &sessionToken{}
	c := client.NewClient(
		client.WithTimeout(viper.GetDuration("timeout")),
		client.WithTokenSource(tok),
	)
	reg := registry.New(base, c)
	store := session.NewStore(reg, &session.FileStore{Path: credPath})
	tok.store = store

	slog.Debug("stack ready", "api_url", base, "credentials", credPath)
	return &stack{reg: reg, store: store}, nil
}

// newHydratedStack additionally restores a persisted session, probing the
// backend for current identity with stale-identity fallback.
func newHydratedStack(cmd *cobra.Command) (*stack, error) {
	s, err := newStack()
	if err != nil {
		return nil, err
	}
	s.store.Hydrate(cmd.Context())
	return s, nil
}
