package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/primait/auroramap/pkg/connector"
	"github.com/primait/auroramap/pkg/connector/services/aws/database"
	"github.com/primait/auroramap/pkg/connector/services/aws/secrets"
	"github.com/primait/auroramap/pkg/io/filesystem"
	"github.com/primait/auroramap/pkg/io/logging"
	"github.com/primait/auroramap/pkg/replication"
	"github.com/primait/auroramap/pkg/topology"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	clusterID     string
	clusterRegion string
	secretID      string
	iamAuth       bool
	includeGlobal bool
	overridesFile string
	outputFile    string
)

var replconfigCmd = &cobra.Command{
	Use:   "replconfig",
	Short: "Build a pooled, retrying replication config for one Aurora cluster",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevels(cmd)

		cloudConnector, err := connector.NewCloudConnector(awsProfile, awsEndpointUrl)
		if err != nil {
			logger.Error(err.Error())
		}

		cluster, instances, err := cloudConnector.FindCluster(clusterID, clusterRegion)
		if err != nil {
			logger.Error("Cluster lookup failed", "cluster", clusterID, "region", clusterRegion, "err", err)
		}

		classifier, err := topology.NewClassifier(cluster)
		if err != nil {
			logger.Error("Invalid cluster descriptor", "cluster", clusterID, "err", err)
		}
		endpoints := classifier.Classify(instances, clusterRegion)

		credentials, err := resolveCredentials(cloudConnector, endpoints)
		if err != nil {
			logger.Error("Cannot resolve database credentials", "cluster", clusterID, "err", err)
		}

		opts := buildOptions()
		config, err := replication.BuildConfig(endpoints, credentials, opts...)
		if err != nil {
			logger.Error("Cannot build replication config", "cluster", clusterID, "err", err)
		}
		if iamAuth {
			applyIAMTokens(cloudConnector, config)
		}

		if outputFile != "" {
			target := filesystem.NormalizePath(outputFile)
			filesystem.PrettyJSONToFile(filepath.Dir(target), filepath.Base(target), config)
		} else {
			fmt.Println(string(logger.PrettyJSON(config)))
		}
	},
}

func buildOptions() []replication.Option {
	var opts []replication.Option
	if includeGlobal {
		opts = append(opts, replication.WithGlobalReaders())
	}
	if overridesFile != "" {
		overrides, err := replication.LoadOverrides(filesystem.NormalizePath(overridesFile))
		if err != nil {
			logger.Error("Cannot load overrides file", "file", overridesFile, "err", err)
		}
		opts = append(opts, overrides.Options()...)
	}
	return opts
}

// resolveCredentials picks the credential source: a Secrets Manager secret,
// an IAM auth token, or explicit flags/environment. There is no fallback
// default.
func resolveCredentials(cc *connector.CloudConnector, endpoints []topology.Endpoint) (replication.Credentials, error) {
	databaseName := viper.GetString(flagDatabase)
	if secretID != "" {
		return secrets.GetCredentials(context.TODO(), regionConfig(cc), secretID, databaseName)
	}

	credentials := replication.Credentials{
		Database: databaseName,
		Username: viper.GetString(flagUsername),
		Password: viper.GetString(flagPassword),
	}
	if iamAuth && credentials.Password == "" {
		writer := writerEndpoint(endpoints)
		if writer == nil {
			return credentials, fmt.Errorf("resolving IAM auth target: %w", replication.ErrNoWriter)
		}
		token, err := database.BuildIAMAuthToken(context.TODO(), regionConfig(cc), writer.Endpoint, writer.Port, credentials.Username)
		if err != nil {
			return credentials, err
		}
		credentials.Password = token
	}
	return credentials, nil
}

// applyIAMTokens replaces every host password with a token bound to that
// host, since tokens are endpoint-specific.
func applyIAMTokens(cc *connector.CloudConnector, config *replication.Config) {
	hosts := []*replication.Host{&config.Replication.Write}
	for i := range config.Replication.Read {
		hosts = append(hosts, &config.Replication.Read[i])
	}
	for _, host := range hosts {
		token, err := database.BuildIAMAuthToken(context.TODO(), regionConfig(cc), host.Host, host.Port, host.Username)
		if err != nil {
			logger.Error("Cannot build IAM auth token", "host", host.Host, "err", err)
		}
		host.Password = token
	}
}

func regionConfig(cc *connector.CloudConnector) aws.Config {
	cfg := cc.AWSConfig.Config.Copy()
	cfg.Region = clusterRegion
	return cfg
}

func writerEndpoint(endpoints []topology.Endpoint) *topology.Endpoint {
	for i := range endpoints {
		if endpoints[i].IsWriter() {
			return &endpoints[i]
		}
	}
	return nil
}

func init() {
	replconfigCmd.Flags().StringVarP(&clusterID, flagCluster, "c", "", "Aurora cluster identifier")
	replconfigCmd.Flags().StringVar(&clusterRegion, flagRegion, "", "Region hosting the cluster")
	replconfigCmd.Flags().String(flagDatabase, "", "Database name (env: AURORAMAP_DATABASE)")
	replconfigCmd.Flags().String(flagUsername, "", "Database username (env: AURORAMAP_USERNAME)")
	replconfigCmd.Flags().String(flagPassword, "", "Database password (env: AURORAMAP_PASSWORD)")
	replconfigCmd.Flags().StringVar(&secretID, flagSecretID, "", "Secrets Manager secret holding username/password")
	replconfigCmd.Flags().BoolVar(&iamAuth, flagIAMAuth, false, "Use RDS IAM authentication tokens as passwords")
	replconfigCmd.Flags().BoolVar(&includeGlobal, flagIncludeGlobal, false, "Include global-role endpoints among the readers")
	replconfigCmd.Flags().StringVar(&overridesFile, flagOverrides, "", "YAML file overriding pool/retry defaults")
	replconfigCmd.Flags().StringVarP(&outputFile, flagOutputFile, "o", "", "Write the config to a file instead of stdout")

	lm := logging.GetLogManager()
	for _, flag := range []string{flagCluster, flagRegion} {
		if err := replconfigCmd.MarkFlagRequired(flag); err != nil {
			lm.Error("Required flags not provided", "err", err, "flag", flag)
		}
	}
	for _, flag := range []string{flagDatabase, flagUsername, flagPassword} {
		if err := viper.BindPFlag(flag, replconfigCmd.Flags().Lookup(flag)); err != nil {
			lm.Error("Cannot bind flag", "err", err, "flag", flag)
		}
	}

	rootCmd.AddCommand(replconfigCmd)
}
