package integration_test

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/enhance"
	"github.com/voxsplit/voxsplit-be/src/shared/job/entity"
	"github.com/voxsplit/voxsplit-be/src/shared/jobmessage"
	"github.com/voxsplit/voxsplit-be/src/shared/noise"
	"github.com/voxsplit/voxsplit-be/src/shared/separation"
	"github.com/voxsplit/voxsplit-be/src/shared/testing/dummy"
	"github.com/voxsplit/voxsplit-be/src/worker/internal/application/jobs"
	savestems "github.com/voxsplit/voxsplit-be/src/worker/internal/application/jobs/save_stems"
	"github.com/voxsplit/voxsplit-be/src/worker/internal/application/jobs/separate"
	"github.com/voxsplit/voxsplit-be/src/worker/internal/application/jobs/start"
)

const sampleRate = 44100

func sourceWAVBytes() []byte {
	left := make([]float64, sampleRate)
	right := make([]float64, sampleRate)
	for i := range left {
		vocals := 0.4 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate))
		instruments := 0.4 * math.Sin(2*math.Pi*220*float64(i)/float64(sampleRate))
		left[i] = vocals + instruments
		right[i] = vocals - instruments*0.5
	}

	waveform, err := audio.NewWaveform([][]float64{left, right}, sampleRate)
	Expect(err).NotTo(HaveOccurred())

	encoded, err := audio.EncodeWAVBytes(waveform)
	Expect(err).NotTo(HaveOccurred())
	return encoded
}

var _ = Describe("Separation pipeline", func() {
	var jobStore *dummy.JobStore
	var fileStore *dummy.FileStore
	var publisher *dummy.Publisher
	var router jobs.JobRouter
	var ctx context.Context

	BeforeEach(func() {
		jobStore = dummy.NewJobStore()
		fileStore = dummy.NewFileStore()
		publisher = dummy.NewPublisher()

		router = jobs.NewJobRouter(jobStore,
			start.NewJobHandler(jobStore, publisher),
			separate.NewJobHandler(jobStore,
				fileStore,
				separation.NewSeparator(separation.NullModel{}),
				enhance.NewEnhancer(),
				noise.NewRemover(),
				publisher),
			savestems.NewJobHandler(jobStore))

		ctx = context.Background()
	})

	createJob := func(mode string) entity.SeparationJob {
		sourceURL := fileStore.FileURL("job-1/source.wav")
		err := fileStore.WriteFile(ctx, sourceURL, sourceWAVBytes())
		Expect(err).NotTo(HaveOccurred())

		now := time.Now().UTC()
		job := entity.SeparationJob{
			ID:        "job-1",
			Status:    entity.StatusRequested,
			SourceURL: sourceURL,
			Mode:      mode,
			Quality:   "high",
			Strength:  0.5,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = jobStore.CreateJob(ctx, job)
		Expect(err).NotTo(HaveOccurred())
		return job
	}

	deliver := func(msgType string, payload any) error {
		message, err := jobmessage.Create(msgType, payload)
		Expect(err).NotTo(HaveOccurred())

		return router.HandleMessage(amqp.Delivery{
			Type: message.Type,
			Body: message.Body,
		})
	}

	drainQueue := func() {
		for {
			message, ok := publisher.Pop()
			if !ok {
				return
			}

			err := router.HandleMessage(amqp.Delivery{
				Type: message.Type,
				Body: message.Body,
			})
			Expect(err).NotTo(HaveOccurred())
		}
	}

	It("runs a job from start to finished stems", func() {
		job := createJob("enhanced")

		err := deliver(jobmessage.StartJobType, jobmessage.StartJobPayload{JobID: job.ID})
		Expect(err).NotTo(HaveOccurred())

		drainQueue()

		finished, err := jobStore.GetJob(ctx, job.ID)
		Expect(err).NotTo(HaveOccurred())

		Expect(finished.Status).To(Equal(entity.StatusDone))
		Expect(finished.Progress).To(Equal(100))
		Expect(finished.VocalsURL).NotTo(BeEmpty())
		Expect(finished.AccompanimentURL).NotTo(BeEmpty())

		vocalsBytes, err := fileStore.GetFile(ctx, finished.VocalsURL)
		Expect(err).NotTo(HaveOccurred())

		vocals, err := audio.DecodeWAVBytes(vocalsBytes)
		Expect(err).NotTo(HaveOccurred())
		Expect(vocals.NumFrames()).To(Equal(sampleRate))

		accompanimentBytes, err := fileStore.GetFile(ctx, finished.AccompanimentURL)
		Expect(err).NotTo(HaveOccurred())

		accompaniment, err := audio.DecodeWAVBytes(accompanimentBytes)
		Expect(err).NotTo(HaveOccurred())
		Expect(accompaniment.NumFrames()).To(Equal(sampleRate))
	})

	It("marks the job failed when the source audio is missing", func() {
		job := createJob("fallback")

		err := deliver(jobmessage.SeparateStemsType, jobmessage.SeparateStemsPayload{
			JobID:     job.ID,
			SourceURL: fileStore.FileURL("job-1/missing.wav"),
			Mode:      job.Mode,
			Quality:   job.Quality,
			Strength:  job.Strength,
		})
		Expect(err).To(HaveOccurred())

		failed, getErr := jobStore.GetJob(ctx, job.ID)
		Expect(getErr).NotTo(HaveOccurred())

		Expect(failed.Status).To(Equal(entity.StatusError))
		Expect(failed.ErrorMessage).NotTo(BeEmpty())
	})

	It("rejects messages with an unknown type", func() {
		err := deliver("defragment", jobmessage.StartJobPayload{JobID: "job-1"})
		Expect(err).To(HaveOccurred())
	})
})
