package dynamolib

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/guregu/dynamo"

	"github.com/cockroachdb/errors"
	"github.com/voxsplit/voxsplit-be/src/shared/config"
)

// NewDB connects to DynamoDB per the given config, either real AWS
// or a local instance for development and tests.
func NewDB(conf config.Dynamo) (DynamoDBWrapper, error) {
	awsConfig, err := awsConfigFor(conf)
	if err != nil {
		return DynamoDBWrapper{}, errors.Wrap(err, "Failed to build AWS config for dynamo")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return DynamoDBWrapper{}, errors.Wrap(err, "Failed to create AWS session")
	}

	return NewDynamoDBWrapper(dynamo.New(sess)), nil
}

func awsConfigFor(conf config.Dynamo) (*aws.Config, error) {
	switch c := conf.(type) {
	case config.ProdDynamo:
		return &aws.Config{
			Region:      aws.String(c.Region),
			Credentials: credentials.NewStaticCredentials(c.AccessKeyID, c.SecretAccessKey, ""),
		}, nil

	case config.LocalDynamo:
		return &aws.Config{
			Region:      aws.String(c.Region),
			Endpoint:    aws.String(c.Host),
			Credentials: credentials.NewStaticCredentials(c.AccessKeyID, c.SecretAccessKey, ""),
		}, nil

	default:
		return nil, errors.New("Unrecognized dynamo config")
	}
}
