package enhance_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/enhance"
	"github.com/voxsplit/voxsplit-be/src/shared/separation"
)

const sampleRate = 44100

func sine(freq float64, length int, amplitude float64) []float64 {
	samples := make([]float64, length)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}

	return samples
}

func whiteNoise(length int, amplitude float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]float64, length)
	for i := range samples {
		samples[i] = amplitude * (2*rng.Float64() - 1)
	}

	return samples
}

func stereoWaveform(left []float64, right []float64) audio.Waveform {
	waveform, err := audio.NewWaveform([][]float64{left, right}, sampleRate)
	Expect(err).NotTo(HaveOccurred())
	return waveform
}

func testStems() separation.Stems {
	vocals := stereoWaveform(sine(440, sampleRate, 0.4), sine(440, sampleRate, 0.4))
	accompaniment := stereoWaveform(
		sine(220, sampleRate, 0.4),
		sine(330, sampleRate, 0.4))

	return separation.Stems{Vocals: vocals, Accompaniment: accompaniment}
}

var _ = Describe("Enhancer", func() {
	var enhancer enhance.Enhancer

	BeforeEach(func() {
		enhancer = enhance.NewEnhancer()
	})

	It("applies every stage on well formed stems", func() {
		_, statuses := enhancer.Enhance(testStems(), 0.5)

		Expect(statuses).To(HaveLen(5))
		names := make([]string, 0, len(statuses))
		for _, status := range statuses {
			Expect(status.Applied).To(BeTrue())
			Expect(status.Error).To(BeEmpty())
			names = append(names, status.Name)
		}

		Expect(names).To(Equal([]string{
			"cross_stem_subtraction",
			"adaptive_gate",
			"formant_shaping",
			"compression",
			"stereo_width",
		}))
	})

	It("preserves stem lengths and sample rates", func() {
		stems := testStems()

		enhanced, _ := enhancer.Enhance(stems, 0.7)

		Expect(enhanced.Vocals.NumFrames()).To(Equal(sampleRate))
		Expect(enhanced.Accompaniment.NumFrames()).To(Equal(sampleRate))
		Expect(enhanced.Vocals.SampleRate).To(Equal(sampleRate))
	})

	It("keeps every sample within [-1, 1]", func() {
		stems := separation.Stems{
			Vocals:        stereoWaveform(sine(440, sampleRate, 0.95), sine(440, sampleRate, 0.95)),
			Accompaniment: stereoWaveform(sine(220, sampleRate, 0.95), sine(330, sampleRate, 0.95)),
		}

		enhanced, _ := enhancer.Enhance(stems, 1.0)

		Expect(enhanced.Vocals.Peak()).To(BeNumerically("<=", 1))
		Expect(enhanced.Accompaniment.Peak()).To(BeNumerically("<=", 1))
	})

	It("passes audio through when a stage cannot run", func() {
		// mismatched stem lengths break cross stem subtraction
		stems := separation.Stems{
			Vocals:        stereoWaveform(sine(440, sampleRate, 0.4), sine(440, sampleRate, 0.4)),
			Accompaniment: stereoWaveform(sine(220, sampleRate/2, 0.4), sine(220, sampleRate/2, 0.4)),
		}

		enhanced, statuses := enhancer.Enhance(stems, 0.5)

		Expect(statuses[0].Name).To(Equal("cross_stem_subtraction"))
		Expect(statuses[0].Applied).To(BeFalse())
		Expect(statuses[0].Error).NotTo(BeEmpty())

		// the rest of the chain still ran
		Expect(statuses[1].Applied).To(BeTrue())
		Expect(enhanced.Vocals.NumFrames()).To(Equal(sampleRate))
	})

	It("widens the accompaniment's stereo image", func() {
		stems := testStems()
		_, sideBefore := separation.MidSide(stems.Accompaniment)

		enhanced, _ := enhancer.Enhance(stems, 0.5)
		_, sideAfter := separation.MidSide(enhanced.Accompaniment)

		Expect(audio.RMS(sideAfter)).To(BeNumerically(">", audio.RMS(sideBefore)*1.05))
	})

	It("suppresses accompaniment bleed in the vocal stem", func() {
		bleed := sine(220, sampleRate, 0.2)
		vocals := stereoWaveform(
			mixSignals(sine(440, sampleRate, 0.4), bleed),
			mixSignals(sine(440, sampleRate, 0.4), bleed))
		accompaniment := stereoWaveform(sine(220, sampleRate, 0.6), sine(220, sampleRate, 0.6))

		enhanced, _ := enhancer.Enhance(separation.Stems{
			Vocals:        vocals,
			Accompaniment: accompaniment,
		}, 0.8)

		bleedBefore := toneAmplitude(vocals.Channels[0], 220)
		bleedAfter := toneAmplitude(enhanced.Vocals.Channels[0], 220)

		Expect(bleedAfter).To(BeNumerically("<", bleedBefore))
	})

	It("suppresses vocal bleed in the accompaniment stem", func() {
		bleed := sine(440, sampleRate, 0.15)
		vocals := stereoWaveform(sine(440, sampleRate, 0.6), sine(440, sampleRate, 0.6))
		accompaniment := stereoWaveform(
			mixSignals(sine(220, sampleRate, 0.4), bleed),
			mixSignals(sine(220, sampleRate, 0.4), bleed))

		enhanced, _ := enhancer.Enhance(separation.Stems{
			Vocals:        vocals,
			Accompaniment: accompaniment,
		}, 0.8)

		ratioBefore := toneAmplitude(accompaniment.Channels[0], 440) /
			toneAmplitude(accompaniment.Channels[0], 220)
		ratioAfter := toneAmplitude(enhanced.Accompaniment.Channels[0], 440) /
			toneAmplitude(enhanced.Accompaniment.Channels[0], 220)

		Expect(ratioAfter).To(BeNumerically("<", ratioBefore))
	})

	It("clamps out of range strength instead of failing", func() {
		_, statuses := enhancer.Enhance(testStems(), 1.7)

		for _, status := range statuses {
			Expect(status.Applied).To(BeTrue())
		}
	})
})

func mixSignals(signals ...[]float64) []float64 {
	mixed := make([]float64, len(signals[0]))
	for _, signal := range signals {
		for i, sample := range signal {
			mixed[i] += sample
		}
	}

	return mixed
}

func toneAmplitude(samples []float64, freq float64) float64 {
	sinSum := 0.0
	cosSum := 0.0
	for i, sample := range samples {
		phase := 2 * math.Pi * freq * float64(i) / float64(sampleRate)
		sinSum += sample * math.Sin(phase)
		cosSum += sample * math.Cos(phase)
	}

	n := float64(len(samples))
	return 2 / n * math.Sqrt(sinSum*sinSum+cosSum*cosSum)
}
