// internal/commands/root.go
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nimbusmcp/nimbus/internal/appconfig"
	"github.com/nimbusmcp/nimbus/internal/logging"
)

var (
	cfgFile       string
	debugFlag     bool
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nimbus",
	Short: "nimbus — weather tools served over the MCP stdio protocol",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if debugFlag {
			cfg.Debug = true
		}
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if cfg.Debug {
			_, _ = pp.Fprintln(os.Stderr, cfg)
		}
		return nil
	},
}

// loadConfig resolves configuration in layers: config file first, then
// .env, then NIMBUS_* environment variables on top.
func loadConfig() (appconfig.Config, error) {
	// Optional .env overlay; absence is the normal case.
	_ = godotenv.Load()

	fileCfg, err := appconfig.Load(cfgFile)
	if err != nil {
		return appconfig.Config{}, err
	}

	viper.SetEnvPrefix("NIMBUS")
	viper.AutomaticEnv()

	// File values seed viper's defaults so environment variables can
	// override any individual key.
	viper.SetDefault("timeout", fileCfg.TimeoutSeconds)
	viper.SetDefault("forecastDays", fileCfg.ForecastDays)
	viper.SetDefault("alertDescriptionLimit", fileCfg.AlertDescriptionLimit)
	viper.SetDefault("userAgent", fileCfg.UserAgent)
	viper.SetDefault("logFile", fileCfg.LogFile)
	viper.SetDefault("httpAddr", fileCfg.HTTPAddr)
	viper.SetDefault("debug", fileCfg.Debug)
	viper.SetDefault("geocodingUrl", fileCfg.GeocodingURL)
	viper.SetDefault("forecastUrl", fileCfg.ForecastURL)
	viper.SetDefault("airQualityUrl", fileCfg.AirQualityURL)
	viper.SetDefault("alertsBaseUrl", fileCfg.AlertsBaseURL)

	var cfg appconfig.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return appconfig.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return appconfig.Config{}, err
	}
	cfg.ConfigPath = fileCfg.ConfigPath
	return cfg, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "dump the resolved configuration to stderr")
}
