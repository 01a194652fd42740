package prod

// DynamoDB
const (
	DynamoDBRegion = "us-east-1"
)

// Cloud storage
const (
	GoogleStorageHost = "https://storage.googleapis.com"
)
