package application

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"google.golang.org/api/option"

	"github.com/cockroachdb/errors"
	"github.com/voxsplit/voxsplit-be/src/shared/config"
	"github.com/voxsplit/voxsplit-be/src/shared/enhance"
	"github.com/voxsplit/voxsplit-be/src/shared/job/storage"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/cloudstorage"
	dynamolib "github.com/voxsplit/voxsplit-be/src/shared/lib/dynamo"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/env"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/rabbitmq"
	"github.com/voxsplit/voxsplit-be/src/shared/noise"
	"github.com/voxsplit/voxsplit-be/src/shared/separation"
	"github.com/voxsplit/voxsplit-be/src/shared/values/dev"
	"github.com/voxsplit/voxsplit-be/src/shared/values/envvar"
	"github.com/voxsplit/voxsplit-be/src/shared/values/prod"
	"github.com/voxsplit/voxsplit-be/src/worker/internal/application/jobs"
	savestems "github.com/voxsplit/voxsplit-be/src/worker/internal/application/jobs/save_stems"
	"github.com/voxsplit/voxsplit-be/src/worker/internal/application/jobs/separate"
	"github.com/voxsplit/voxsplit-be/src/worker/internal/application/jobs/start"
	"github.com/voxsplit/voxsplit-be/src/worker/internal/application/worker"
)

type App struct {
	worker worker.QueueWorker
}

func NewApp() (App, error) {
	dynamoDB, err := dynamolib.NewDB(dynamoConfigForEnv())
	if err != nil {
		return App{}, errors.Wrap(err, "Failed to connect to dynamo")
	}

	fileStore, err := newFileStore(context.Background(), cloudStorageForEnv())
	if err != nil {
		return App{}, errors.Wrap(err, "Failed to create cloud storage file store")
	}

	rabbitURL, queueName := rabbitForEnv()
	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return App{}, errors.Wrap(err, "Failed to connect to rabbitmq")
	}

	publisher, err := rabbitmq.NewQueuePublisher(conn, queueName)
	if err != nil {
		return App{}, errors.Wrap(err, "Failed to create rabbitmq publisher")
	}

	channel, err := conn.Channel()
	if err != nil {
		return App{}, errors.Wrap(err, "Failed to open consume channel")
	}

	queue, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return App{}, errors.Wrap(err, "Failed to declare job queue")
	}

	deliveries, err := channel.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return App{}, errors.Wrap(err, "Failed to start consuming job queue")
	}

	jobDB := storage.NewDB(dynamoDB)
	router := jobs.NewJobRouter(jobDB,
		start.NewJobHandler(jobDB, &publisher),
		separate.NewJobHandler(jobDB,
			fileStore,
			separation.NewSeparator(separation.NullModel{}),
			enhance.NewEnhancer(),
			noise.NewRemover(),
			&publisher),
		savestems.NewJobHandler(jobDB))

	return App{
		worker: worker.NewQueueWorker(deliveries, router),
	}, nil
}

func (a App) Start() {
	a.worker.Start()
}

func dynamoConfigForEnv() config.Dynamo {
	switch env.Get() {
	case env.Production:
		return config.ProdDynamo{
			AccessKeyID:     envvar.MustGet(envvar.AWS_ACCESS_KEY_ID),
			SecretAccessKey: envvar.MustGet(envvar.AWS_SECRET_ACCESS_KEY),
			Region:          prod.DynamoDBRegion,
		}
	default:
		return dev.DynamoConfig
	}
}

func cloudStorageForEnv() config.CloudStorage {
	switch env.Get() {
	case env.Production:
		return config.ProdCloudStorage{
			StorageHost: prod.GoogleStorageHost,
			SecretKey:   envvar.MustGet(envvar.GOOGLE_CLOUD_KEY),
			BucketName:  envvar.MustGet(envvar.GOOGLE_CLOUD_STORAGE_BUCKET_NAME),
		}
	default:
		return dev.CloudStorageConfig
	}
}

func newFileStore(ctx context.Context, conf config.CloudStorage) (cloudstorage.GoogleFileStore, error) {
	switch c := conf.(type) {
	case config.ProdCloudStorage:
		return cloudstorage.NewGoogleFileStore(ctx, c.StorageHost, c.BucketName,
			option.WithCredentialsJSON([]byte(c.SecretKey)))

	case config.LocalCloudStorage:
		return cloudstorage.NewGoogleFileStore(ctx, c.StorageHost, c.BucketName,
			option.WithEndpoint(c.HostEndpoint),
			option.WithAPIKey("fake_api_key"))

	default:
		return cloudstorage.GoogleFileStore{}, errors.Errorf("Unrecognized cloud storage config %T", conf)
	}
}

func rabbitForEnv() (string, string) {
	switch env.Get() {
	case env.Production:
		return envvar.MustGet(envvar.RABBITMQ_URL), envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME)
	default:
		return dev.RabbitMQHost, dev.RabbitMQQueueName
	}
}
