package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyAPIURL = "api_url"
	keyToken  = "token"
	keyEmail  = "email"

	defaultAPIURL = "http://localhost:8080/api/v1"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "wishctl",
		Short: "Manage wishlists from the terminal",
		Long: `wishctl talks to the wishlist API: sign in, curate wishlists, items and
categories, and react to items on shared wishlists.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/wishctl/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", defaultAPIURL, "wishlist API base URL")
	_ = viper.BindPFlag(keyAPIURL, rootCmd.PersistentFlags().Lookup("api-url"))

	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(wishlistsCmd())
	rootCmd.AddCommand(itemsCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(publicCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("WISHCTL")
	viper.AutomaticEnv()
	viper.SetDefault(keyAPIURL, defaultAPIURL)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "wishctl"), nil
}

// saveConfig writes the current viper state back to the config file,
// creating ~/.config/wishctl on first sign in.
func saveConfig() error {
	path := viper.ConfigFileUsed()
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return os.Chmod(path, 0o600)
}
