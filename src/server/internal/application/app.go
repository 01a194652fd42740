package application

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cockroachdb/errors"
	noisegateway "github.com/voxsplit/voxsplit-be/src/server/internal/noise/gateway"
	noiseusecase "github.com/voxsplit/voxsplit-be/src/server/internal/noise/usecase"
	separationgateway "github.com/voxsplit/voxsplit-be/src/server/internal/separation/gateway"
	separationusecase "github.com/voxsplit/voxsplit-be/src/server/internal/separation/usecase"
	"github.com/voxsplit/voxsplit-be/src/shared/config"
	"github.com/voxsplit/voxsplit-be/src/shared/job/storage"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/cloudstorage"
	dynamolib "github.com/voxsplit/voxsplit-be/src/shared/lib/dynamo"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/env"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/rabbitmq"
	"github.com/voxsplit/voxsplit-be/src/shared/noise"
	"github.com/voxsplit/voxsplit-be/src/shared/values/dev"
	"github.com/voxsplit/voxsplit-be/src/shared/values/envvar"
	"github.com/voxsplit/voxsplit-be/src/shared/values/prod"

	amqp "github.com/rabbitmq/amqp091-go"
	"google.golang.org/api/option"
)

type App struct {
	echo *echo.Echo
}

func NewApp() (App, error) {
	dynamoConfig := dynamoConfigForEnv()

	dynamoDB, err := dynamolib.NewDB(dynamoConfig)
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

	return newApp(storage.NewDB(dynamoDB), fileStore, &publisher), nil
}

func newApp(jobDB storage.JobStore, fileStore cloudstorage.FileStore, publisher rabbitmq.Publisher) App {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	separationGateway := separationgateway.NewGateway(
		separationusecase.NewUsecase(jobDB, fileStore, publisher))
	noiseGateway := noisegateway.NewGateway(
		noiseusecase.NewUsecase(noise.NewRemover()))

	registerRoutes(e, separationGateway, noiseGateway)

	return App{echo: e}
}

func registerRoutes(e *echo.Echo, separationGateway separationgateway.Gateway, noiseGateway noisegateway.Gateway) {
	e.GET("/health-check", healthCheck)
	e.POST("/separate", separationGateway.CreateJob)
	e.GET("/jobs/:id", separationGateway.GetJob)
	e.GET("/separation-quality-info", separationGateway.QualityInfo)
	e.POST("/remove-noise", noiseGateway.RemoveNoise)
}

func healthCheck(c echo.Context) error {
	return c.NoContent(http.StatusOK)
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

func (a App) Start(address string) error {
	return a.echo.Start(address)
}
