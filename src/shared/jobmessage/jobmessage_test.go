package jobmessage_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/voxsplit/voxsplit-be/src/shared/jobmessage"
)

var _ = Describe("Job messages", func() {
	It("round trips a payload through the envelope", func() {
		message, err := jobmessage.Create(jobmessage.SeparateStemsType, jobmessage.SeparateStemsPayload{
			JobID:     "job-1",
			SourceURL: "https://storage.example.com/bucket/job-1/source.wav",
			Mode:      "enhanced",
			Quality:   "high",
			Strength:  0.5,
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(message.ContentType).To(Equal("application/json"))
		Expect(message.Type).To(Equal(jobmessage.SeparateStemsType))

		envelope, err := jobmessage.Decode(message.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(envelope.Type).To(Equal(jobmessage.SeparateStemsType))

		payload, err := jobmessage.DecodePayload[jobmessage.SeparateStemsPayload](envelope)
		Expect(err).NotTo(HaveOccurred())
		Expect(payload.JobID).To(Equal("job-1"))
		Expect(payload.Strength).To(Equal(0.5))
	})

	It("rejects bodies that are not JSON", func() {
		_, err := jobmessage.Decode([]byte("{not json"))
		Expect(err).To(HaveOccurred())
	})
})
