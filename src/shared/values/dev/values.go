package dev

import "github.com/voxsplit/voxsplit-be/src/shared/config"

// DynamoDB
const (
	DynamoAccessKeyID     = "local"
	DynamoSecretAccessKey = "local"
	DynamoDBHost          = "http://localhost:8000"
	DynamoDBRegion        = "localhost"
)

var DynamoConfig = config.LocalDynamo{
	AccessKeyID:     DynamoAccessKeyID,
	SecretAccessKey: DynamoSecretAccessKey,
	Region:          DynamoDBRegion,
	Host:            DynamoDBHost,
}

// RabbitMQ
const (
	RabbitMQHost      = "amqp://localhost:5672"
	RabbitMQQueueName = "voxsplit-jobs-dev"
)

// Cloud storage, served by a local fake GCS container
const (
	GoogleStorageHost     = "http://localhost:4443"
	GoogleStorageEndpoint = "http://localhost:4443/storage/v1/"
	GoogleStorageBucket   = "voxsplit-dev"
)

var CloudStorageConfig = config.LocalCloudStorage{
	StorageHost:  GoogleStorageHost,
	HostEndpoint: GoogleStorageEndpoint,
	BucketName:   GoogleStorageBucket,
}
