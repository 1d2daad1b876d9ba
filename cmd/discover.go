package cmd

import (
	"fmt"
	"time"

	"github.com/primait/auroramap/pkg/connector"
	"github.com/primait/auroramap/pkg/io/filesystem"
	"github.com/primait/auroramap/pkg/topology"
	"github.com/spf13/cobra"
)

var (
	outputDirectory string
	outputFormat    string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Enumerate Aurora clusters and classify instance endpoints across regions",
	Run: func(cmd *cobra.Command, args []string) {
		startTime := time.Now()
		setLogLevels(cmd)

		cloudConnector, err := connector.NewCloudConnector(awsProfile, awsEndpointUrl)
		if err != nil {
			logger.Error(err.Error())
		}

		results := cloudConnector.DiscoverAll(regions)
		printEndpoints(results)
		saveResults(results)
		logger.Info("Execution Time", "seconds", time.Since(startTime))
	},
}

func printEndpoints(results map[string]interface{}) {
	endpoints, _ := results["Endpoints"].([]topology.Endpoint)
	logger.PrintGreen(fmt.Sprintf("Discovered %d Aurora endpoints", len(endpoints)))
	for _, endpoint := range endpoints {
		line := fmt.Sprintf("%-8s %s:%d (%s, %s)", endpoint.Role, endpoint.Endpoint, endpoint.Port, endpoint.Region, endpoint.InstanceClass)
		if endpoint.IsWriter() {
			logger.PrintRed(line)
		} else {
			logger.PrintDarkGreen(line)
		}
	}
}

func saveResults(results map[string]interface{}) {
	if outputDirectory == "" {
		return
	}
	outputDir := filesystem.NormalizePath(outputDirectory)

	today := time.Now().Format("20060102")
	switch outputFormat {
	case "zip":
		filesystem.Zip(outputDir, awsProfile, &results)
	case "csv":
		endpoints, _ := results["Endpoints"].([]topology.Endpoint)
		filesystem.CSVToFile(outputDir, fmt.Sprintf("Endpoints_%s.csv", today), &endpoints)
	default:
		for key, value := range results {
			filesystem.PrettyJSONToFile(outputDir, fmt.Sprintf("%s_%s.json", key, today), value)
		}
	}
}

func init() {
	discoverCmd.Flags().StringVarP(&outputDirectory, flagOutputDirectory, "o", "", "Output folder where the files will be saved (default: print only)")
	discoverCmd.Flags().StringVarP(&outputFormat, flagOutputFormat, "f", "json", "Output format: json files, zip or csv")
	rootCmd.AddCommand(discoverCmd)
}
