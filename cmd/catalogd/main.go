package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talkincode/productcatalog/config"
	"github.com/talkincode/productcatalog/internal/app"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catalogd",
	Short: "Product catalog service",
	Long: `Product catalog service.

Available subcommands:
  serve    - Run the HTTP bindings and the storefront page
  seed     - Insert the fixture products
  migrate  - Create or update the database schema
  version  - Print version information`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "catalogd %s (built %s)\n", version, buildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (or set CATALOG_CONFIG env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadApplication reads the configuration and initializes the application.
// The caller must Release it.
func loadApplication() (app.AppContext, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		application.Release()
		return nil, err
	}
	return application, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
