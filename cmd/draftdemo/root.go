package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "draftdemo",
	Short: "Drive the 2D drafting core from scripts",
	Long: `draftdemo runs the drafting core without a user interface:
  - grid prints the grid spacing chosen at each zoom level
  - draw replays a scripted construction session and renders it to PNG`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $"+config.EnvPath+")")
	pf.String("units", "", "unit family: decimal-inch, fractional-inch or metric")
	pf.Float64("tolerance", 0, "snap tolerance in device pixels")
	pf.Bool("grid", true, "snap to the grid")
	pf.String("language", "", "ruler label language (BCP 47)")
	pf.String("log-level", "", "log level: debug, info, warn or error")

	_ = viper.BindPFlag("units", pf.Lookup("units"))
	_ = viper.BindPFlag("snap_tolerance_px", pf.Lookup("tolerance"))
	_ = viper.BindPFlag("grid_visible", pf.Lookup("grid"))
	_ = viper.BindPFlag("language", pf.Lookup("language"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
}

func initConfig() {
	viper.SetEnvPrefix("DRAFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the YAML configuration and overlays environment and
// flag values, then installs the logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}

	if viper.IsSet("units") {
		if cfg.Units, err = draft.ParseUnitFamily(viper.GetString("units")); err != nil {
			return cfg, err
		}
	}
	if viper.IsSet("snap_tolerance_px") {
		cfg.SnapTolerancePx = viper.GetFloat64("snap_tolerance_px")
	}
	if viper.IsSet("grid_visible") {
		cfg.GridVisible = viper.GetBool("grid_visible")
	}
	if viper.IsSet("language") {
		cfg.Language = viper.GetString("language")
	}
	if viper.IsSet("log.level") {
		cfg.Log.Level = viper.GetString("log.level")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	lvl, _ := cfg.Log.SlogLevel()
	draft.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return cfg, nil
}
