package ec2

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/primait/auroramap/pkg/io/logging"
)

var Regions []string

// ListAndSaveRegions fills the Regions list once with every region enabled
// for the account.
func ListAndSaveRegions(cfg aws.Config) {
	if len(Regions) == 0 {
		var re *awshttp.ResponseError
		ec2Client := ec2.NewFromConfig(cfg)

		output, err := ec2Client.DescribeRegions(context.TODO(), &ec2.DescribeRegionsInput{})
		if errors.As(err, &re) || output == nil {
			logging.GetLogManager().Warn("Error on listing regions", "err", err)
		} else {
			for _, region := range output.Regions {
				Regions = append(Regions, aws.ToString(region.RegionName))
			}
		}
	}
}
