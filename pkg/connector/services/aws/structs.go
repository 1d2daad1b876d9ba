package awsconnector

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/primait/auroramap/pkg/io/logging"
)

type AWSConfig struct {
	Profile string
	aws.Config
	logger logging.LogManager
}
