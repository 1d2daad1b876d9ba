package connector

import (
	awsconfig "github.com/primait/auroramap/pkg/connector/services/aws"
	"github.com/primait/auroramap/pkg/io/logging"
)

type CloudConnector struct {
	AWSConfig awsconfig.AWSConfig
	logger    logging.LogManager
}
