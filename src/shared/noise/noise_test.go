package noise_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/dsp"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
	"github.com/voxsplit/voxsplit-be/src/shared/noise"
	"github.com/voxsplit/voxsplit-be/src/shared/separation"
)

var _ = Describe("ParseType", func() {
	It("accepts the known types", func() {
		for _, value := range []string{"auto", "white", "hiss", "hum", "generic"} {
			noiseType, err := noise.ParseType(value)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(noiseType)).To(Equal(value))
		}
	})

	It("defaults to auto", func() {
		noiseType, err := noise.ParseType("")
		Expect(err).NotTo(HaveOccurred())
		Expect(noiseType).To(Equal(noise.TypeAuto))
	})

	It("rejects unknown types", func() {
		_, err := noise.ParseType("pink")
		Expect(mark.Is(err, marks.InvalidParameter)).To(BeTrue())
	})
})

var _ = Describe("Classify", func() {
	It("calls broadband noise white", func() {
		waveform := monoWaveform(whiteNoise(sampleRate, 0.3, 1))

		Expect(noise.Classify(waveform)).To(Equal(noise.TypeWhite))
	})

	It("calls low frequency tones hum", func() {
		waveform := monoWaveform(sine(60, sampleRate, 0.5))

		Expect(noise.Classify(waveform)).To(Equal(noise.TypeHum))
	})

	It("does not call low midrange tones hum", func() {
		waveform := monoWaveform(sine(250, sampleRate, 0.5))

		Expect(noise.Classify(waveform)).NotTo(Equal(noise.TypeHum))
	})

	It("calls high band noise hiss", func() {
		waveform := monoWaveform(sine(12000, sampleRate, 0.5))

		Expect(noise.Classify(waveform)).To(Equal(noise.TypeHiss))
	})

	It("gives the same answer every time", func() {
		waveform := monoWaveform(mix(
			sine(440, sampleRate, 0.3),
			whiteNoise(sampleRate, 0.1, 2)))

		first := noise.Classify(waveform)
		for i := 0; i < 3; i++ {
			Expect(noise.Classify(waveform)).To(Equal(first))
		}
	})
})

var _ = Describe("Remover", func() {
	var remover noise.Remover

	BeforeEach(func() {
		remover = noise.NewRemover()
	})

	Describe("input validation", func() {
		It("rejects empty audio", func() {
			_, err := remover.Remove(audio.Waveform{SampleRate: sampleRate}, noise.TypeWhite, 0.5)
			Expect(mark.Is(err, marks.InvalidParameter)).To(BeTrue())
		})

		It("rejects out of range strength", func() {
			waveform := monoWaveform(whiteNoise(sampleRate, 0.3, 3))

			_, err := remover.Remove(waveform, noise.TypeWhite, 1.5)
			Expect(mark.Is(err, marks.InvalidParameter)).To(BeTrue())

			_, err = remover.Remove(waveform, noise.TypeWhite, -0.1)
			Expect(mark.Is(err, marks.InvalidParameter)).To(BeTrue())
		})
	})

	Describe("output shape", func() {
		It("preserves length, channels and sample rate for every type", func() {
			length := sampleRate + 123
			left := mix(sine(440, length, 0.3), whiteNoise(length, 0.05, 4))
			right := mix(sine(440, length, 0.3), whiteNoise(length, 0.05, 5))
			waveform := stereoWaveform(left, right)

			for _, noiseType := range []noise.Type{noise.TypeWhite, noise.TypeHiss, noise.TypeHum, noise.TypeGeneric} {
				result, err := remover.Remove(waveform, noiseType, 0.5)
				Expect(err).NotTo(HaveOccurred())

				Expect(result.Audio.NumFrames()).To(Equal(length))
				Expect(result.Audio.NumChannels()).To(Equal(2))
				Expect(result.Audio.SampleRate).To(Equal(sampleRate))
				Expect(result.NoiseType).To(Equal(noiseType))
			}
		})

		It("resolves auto to a concrete type", func() {
			waveform := monoWaveform(whiteNoise(sampleRate, 0.3, 6))

			result, err := remover.Remove(waveform, noise.TypeAuto, 0.5)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.NoiseType).NotTo(Equal(noise.TypeAuto))
		})
	})

	Describe("white noise removal", func() {
		It("keeps the tone and cuts the noise", func() {
			// noise-only head and tail frame the voiced middle
			head := whiteNoise(sampleRate/2, 0.05, 7)
			tail := whiteNoise(sampleRate/2, 0.05, 8)
			middle := mix(sine(440, 2*sampleRate, 0.5), whiteNoise(2*sampleRate, 0.05, 9))

			samples := make([]float64, 0, 3*sampleRate)
			samples = append(samples, head...)
			samples = append(samples, middle...)
			samples = append(samples, tail...)

			result, err := remover.Remove(monoWaveform(samples), noise.TypeWhite, 0.8)
			Expect(err).NotTo(HaveOccurred())

			cleanedMiddle := result.Audio.Channels[0][sampleRate/2 : sampleRate/2+2*sampleRate]
			cleanTone := sine(440, 2*sampleRate, 0.5)

			Expect(dsp.Correlation(cleanedMiddle, cleanTone)).To(BeNumerically(">", 0.9))
			Expect(toneAmplitude(cleanedMiddle, 440)).To(BeNumerically(">", 0.4))
			Expect(result.ReductionDB).To(BeNumerically(">", 0))
		})

		It("removes more at higher strength", func() {
			samples := mix(sine(440, 2*sampleRate, 0.3), whiteNoise(2*sampleRate, 0.1, 10))

			gentle, err := remover.Remove(monoWaveform(samples), noise.TypeWhite, 0.2)
			Expect(err).NotTo(HaveOccurred())

			aggressive, err := remover.Remove(monoWaveform(samples), noise.TypeWhite, 0.9)
			Expect(err).NotTo(HaveOccurred())

			Expect(aggressive.ReductionDB).To(BeNumerically(">=", gentle.ReductionDB))
		})
	})

	Describe("hum removal", func() {
		It("notches the hum and leaves the program material", func() {
			tone := sine(1000, 2*sampleRate, 0.5)
			hum := sine(60, 2*sampleRate, 0.5)
			noisy := monoWaveform(mix(tone, hum))

			result, err := remover.Remove(noisy, noise.TypeHum, 0.7)
			Expect(err).NotTo(HaveOccurred())

			cleaned := result.Audio.Channels[0]

			humBefore := toneAmplitude(noisy.Channels[0], 60)
			humAfter := toneAmplitude(cleaned, 60)
			toneBefore := toneAmplitude(noisy.Channels[0], 1000)
			toneAfter := toneAmplitude(cleaned, 1000)

			humReductionDB := 20 * math.Log10(humBefore/humAfter)
			toneChangeDB := math.Abs(20 * math.Log10(toneBefore/toneAfter))

			Expect(humReductionDB).To(BeNumerically(">=", 10))
			Expect(toneChangeDB).To(BeNumerically("<", 1))
		})
	})

	Describe("hiss removal", func() {
		It("pulls down steady high band content and keeps the midrange", func() {
			tone := sine(1000, 2*sampleRate, 0.5)
			hiss := sine(12000, 2*sampleRate, 0.5)
			noisy := monoWaveform(mix(tone, hiss))

			result, err := remover.Remove(noisy, noise.TypeHiss, 0.7)
			Expect(err).NotTo(HaveOccurred())

			cleaned := result.Audio.Channels[0]

			hissAfter := toneAmplitude(cleaned, 12000)
			toneAfter := toneAmplitude(cleaned, 1000)

			Expect(hissAfter).To(BeNumerically("<", 0.3))
			Expect(toneAfter).To(BeNumerically("~", 0.5, 0.06))
		})
	})

	Describe("stereo coherence", func() {
		It("shrinks the side signal of highly correlated channels", func() {
			shared := sine(440, 2*sampleRate, 0.4)
			left := mix(shared, whiteNoise(2*sampleRate, 0.05, 11))
			right := mix(shared, whiteNoise(2*sampleRate, 0.05, 12))
			waveform := stereoWaveform(left, right)

			result, err := remover.Remove(waveform, noise.TypeWhite, 0.8)
			Expect(err).NotTo(HaveOccurred())

			_, sideBefore := separation.MidSide(waveform)
			_, sideAfter := separation.MidSide(result.Audio)
			midBefore := waveform.Mono()
			midAfter := result.Audio.Mono()

			ratioBefore := audio.RMS(sideBefore) / audio.RMS(midBefore)
			ratioAfter := audio.RMS(sideAfter) / audio.RMS(midAfter)

			Expect(ratioAfter).To(BeNumerically("<", ratioBefore))
		})
	})
})

var _ = Describe("RemoveSeparationArtifacts", func() {
	var remover noise.Remover

	BeforeEach(func() {
		remover = noise.NewRemover()
	})

	It("cleans both stems and reports their status", func() {
		stems := separation.Stems{
			Vocals:        monoWaveform(mix(sine(440, sampleRate, 0.4), whiteNoise(sampleRate, 0.05, 13))),
			Accompaniment: monoWaveform(mix(sine(220, sampleRate, 0.4), whiteNoise(sampleRate, 0.05, 14))),
		}

		cleaned, statuses, reductionDB := remover.RemoveSeparationArtifacts(stems, 0.6)

		Expect(statuses).To(HaveLen(2))
		for _, status := range statuses {
			Expect(status.Cleaned).To(BeTrue())
			Expect(status.Error).To(BeEmpty())
			Expect(status.NoiseType).NotTo(BeEmpty())
		}

		expectedAverage := (statuses[0].ReductionDB + statuses[1].ReductionDB) / 2
		Expect(reductionDB).To(BeNumerically("~", expectedAverage, 1e-9))

		Expect(cleaned.Vocals.NumFrames()).To(Equal(sampleRate))
		Expect(cleaned.Accompaniment.NumFrames()).To(Equal(sampleRate))
	})

	It("keeps going when one stem cannot be cleaned", func() {
		accompaniment := monoWaveform(mix(sine(220, sampleRate, 0.4), whiteNoise(sampleRate, 0.05, 15)))
		stems := separation.Stems{
			Vocals:        audio.Waveform{SampleRate: sampleRate},
			Accompaniment: accompaniment,
		}

		cleaned, statuses, reductionDB := remover.RemoveSeparationArtifacts(stems, 0.6)

		Expect(statuses).To(HaveLen(2))
		Expect(statuses[0].Stem).To(Equal("vocals"))
		Expect(statuses[0].Cleaned).To(BeFalse())
		Expect(statuses[0].Error).NotTo(BeEmpty())

		Expect(statuses[1].Stem).To(Equal("accompaniment"))
		Expect(statuses[1].Cleaned).To(BeTrue())

		// the average only covers the stems that were cleaned
		Expect(reductionDB).To(BeNumerically("~", statuses[1].ReductionDB, 1e-9))

		Expect(cleaned.Accompaniment.NumFrames()).To(Equal(sampleRate))
	})
})
