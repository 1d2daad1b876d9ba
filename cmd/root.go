package cmd

import (
	"strings"

	"github.com/primait/auroramap/pkg/io/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagVerbose         = "verbose"
	flagDebug           = "debug"
	flagAWSProfile      = "aws-profile"
	flagAWSEndpointUrl  = "aws-endpoint-url"
	flagOutputDirectory = "output-dir"
	flagOutputFormat    = "output-format"
	flagRegions         = "regions"
	flagCluster         = "cluster"
	flagRegion          = "region"
	flagDatabase        = "database"
	flagUsername        = "username"
	flagPassword        = "password"
	flagSecretID        = "secret-id"
	flagIAMAuth         = "iam-auth"
	flagIncludeGlobal   = "include-global"
	flagOverrides       = "overrides"
	flagOutputFile      = "output-file"
)

var (
	logger         logging.LogManager
	awsProfile     string
	awsEndpointUrl string
	regions        []string
	rootCmd        = &cobra.Command{
		Use:   "auroramap",
		Short: "Discover Aurora cluster topology across regions and build replication configs",
	}
)

func init() {
	logger = logging.GetLogManager()
	cobra.OnInitialize(initViper)
	rootCmd.PersistentFlags().BoolP(flagVerbose, "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolP(flagDebug, "d", false, "Debug output")
	rootCmd.PersistentFlags().StringVarP(&awsProfile, flagAWSProfile, "p", "default", "AWS Profile to use")
	rootCmd.PersistentFlags().StringVar(&awsEndpointUrl, flagAWSEndpointUrl, "", "Custom AWS endpoint URL (LocalStack)")
	rootCmd.PersistentFlags().StringSliceVarP(&regions, flagRegions, "r", nil, "Regions to scan (default: all enabled regions)")
}

func initViper() {
	viper.SetEnvPrefix("AURORAMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setLogLevels(cmd *cobra.Command) {
	if cmd.Flags().Changed(flagVerbose) {
		logger.SetVerboseLevel()
	}
	if cmd.Flags().Changed(flagDebug) {
		logger.SetDebugLevel()
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Error executing command", "err", err)
	}
}
