package usecase_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/voxsplit/voxsplit-be/src/server/internal/errors/api"
	"github.com/voxsplit/voxsplit-be/src/server/internal/noise/usecase"
	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/noise"
)

const sampleRate = 44100

func noisyWAVBytes() []byte {
	rng := rand.New(rand.NewSource(1))
	samples := make([]float64, sampleRate)
	for i := range samples {
		tone := 0.4 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate))
		samples[i] = tone + 0.05*(2*rng.Float64()-1)
	}

	waveform, err := audio.NewWaveform([][]float64{samples}, sampleRate)
	Expect(err).NotTo(HaveOccurred())

	encoded, err := audio.EncodeWAVBytes(waveform)
	Expect(err).NotTo(HaveOccurred())
	return encoded
}

var _ = Describe("Noise usecase", func() {
	var noiseUsecase usecase.Usecase

	BeforeEach(func() {
		noiseUsecase = usecase.NewUsecase(noise.NewRemover())
	})

	It("returns a decodable WAV with removal metadata", func() {
		cleaned, apiErr := noiseUsecase.RemoveNoise(noisyWAVBytes(), "white", 0.7)
		Expect(apiErr).To(BeNil())

		Expect(cleaned.NoiseType).To(Equal(noise.TypeWhite))

		decoded, err := audio.DecodeWAVBytes(cleaned.WAV)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.SampleRate).To(Equal(sampleRate))
		Expect(decoded.NumFrames()).To(Equal(sampleRate))
	})

	It("resolves auto to a concrete noise type", func() {
		cleaned, apiErr := noiseUsecase.RemoveNoise(noisyWAVBytes(), "auto", 0.5)
		Expect(apiErr).To(BeNil())

		Expect(cleaned.NoiseType).NotTo(Equal(noise.TypeAuto))
	})

	It("rejects an unknown noise type", func() {
		_, apiErr := noiseUsecase.RemoveNoise(noisyWAVBytes(), "pink", 0.5)
		Expect(apiErr).NotTo(BeNil())
		Expect(apiErr.ErrorCode).To(Equal(api.InvalidParameterCode))
	})

	It("rejects out of range strength", func() {
		_, apiErr := noiseUsecase.RemoveNoise(noisyWAVBytes(), "white", 2.0)
		Expect(apiErr).NotTo(BeNil())
		Expect(apiErr.ErrorCode).To(Equal(api.InvalidParameterCode))
	})

	It("rejects a file that is not a WAV", func() {
		_, apiErr := noiseUsecase.RemoveNoise([]byte("static"), "white", 0.5)
		Expect(apiErr).NotTo(BeNil())
		Expect(apiErr.ErrorCode).To(Equal(api.InvalidParameterCode))
	})
})
