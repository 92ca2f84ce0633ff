// Greenstack runs the control core of a GreenStack planter: sensor readings,
// the timed watering pump and wireless provisioning, served over HTTP.
//
//	greenstack serve            run the device (default)
//	greenstack wifi show        print the stored network
//	greenstack wifi clear       delete the stored network
//	greenstack version
//
// @title        GreenStack device API
// @version      1.0
// @description  Sensor readings, pump control and wireless provisioning for a GreenStack planter.
// @BasePath     /
package main

import (
	"fmt"
	"os"

	"greenstack/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile  string
	port     string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "greenstack",
	Short:         "GreenStack planter control core",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default configs/config.yml)")
	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "", "HTTP port, overrides config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error, overrides config")

	rootCmd.AddCommand(serveCmd, wifiCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and env, then applies explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, *viper.Viper, error) {
	v := config.New(cfgFile)
	flags := cmd.Flags()
	if err := v.BindPFlag("port", flags.Lookup("port")); err != nil {
		return nil, nil, err
	}
	if err := v.BindPFlag("log.level", flags.Lookup("log-level")); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "greenstack %s\n", version)
	},
}
