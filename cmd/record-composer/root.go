package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"record-composer/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "record-composer",
	Short: "Generate fixed-shape record types from YAML declarations",
	Long: `record-composer turns YAML record declarations into Go source files:
struct definitions, synthesized constructors, a fixed attribute surface,
and operation methods delegated to a declared field.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(viper.GetBool("verbose"), viper.GetBool("json-logs"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("json-logs", false, "emit structured JSON logs")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json-logs", rootCmd.PersistentFlags().Lookup("json-logs"))
}

func initConfig() {
	viper.SetConfigName(".record-composer")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("RECORD_COMPOSER")
	viper.AutomaticEnv()

	// A config file is optional; flags and environment cover everything.
	_ = viper.ReadInConfig()
}
