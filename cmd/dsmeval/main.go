// Command dsmeval evaluates 1-bit delta-sigma round-trip quality.
//
// It synthesizes a sine tone, quantizes it to a pulse stream, optionally
// applies duty-preserving frequency reduction, reconstructs the signal,
// and reports RMSE, the best circular pulse offset, and how much
// quantization noise lands in band.
//
// Usage:
//
//	dsmeval [flags]
//
// Examples:
//
//	dsmeval
//	dsmeval -order 1 -samples 2000
//	dsmeval -order 2 -k 0.15 -reduce 32
//	dsmeval -config eval.yaml
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-dsmod/dsp/deltasigma"
	"github.com/cwbudde/algo-dsmod/measure/align"
	"github.com/cwbudde/algo-dsmod/measure/noisespec"
)

type evalConfig struct {
	Tone struct {
		Frequency  float64 `yaml:"frequency"`
		SampleRate float64 `yaml:"sample_rate"`
		Amplitude  float64 `yaml:"amplitude"`
		Samples    int     `yaml:"samples"`
	} `yaml:"tone"`

	Modulator struct {
		Order        int     `yaml:"order"`
		Leak         float64 `yaml:"leak"`
		ReduceWindow int     `yaml:"reduce_window"`
	} `yaml:"modulator"`

	Search struct {
		MaxOffset int `yaml:"max_offset"`
	} `yaml:"search"`
}

func defaultEvalConfig() evalConfig {
	var cfg evalConfig
	cfg.Tone.Frequency = 1000
	cfg.Tone.SampleRate = 44100
	cfg.Tone.Amplitude = 10000
	cfg.Tone.Samples = 1000
	cfg.Modulator.Order = 2
	cfg.Search.MaxOffset = 150
	return cfg
}

func loadEvalConfig(filename string) (evalConfig, error) {
	cfg := defaultEvalConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (takes precedence over the other flags)")
		freq       = flag.Float64("freq", 1000, "tone frequency in Hz")
		rate       = flag.Float64("rate", 44100, "sample rate in Hz")
		amp        = flag.Float64("amp", 10000, "tone amplitude")
		samples    = flag.Int("samples", 1000, "tone length in samples")
		order      = flag.Int("order", 2, "modulator order (1 or 2)")
		leak       = flag.Float64("k", 0, "leak coefficient (0 selects the order's default)")
		reduce     = flag.Int("reduce", 0, "frequency-reduction window (0 disables)")
		search     = flag.Int("search", 150, "offsets tried by the alignment search")
	)

	flag.Parse()

	cfg := defaultEvalConfig()
	if *configPath != "" {
		var err error

		cfg, err = loadEvalConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dsmeval: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg.Tone.Frequency = *freq
		cfg.Tone.SampleRate = *rate
		cfg.Tone.Amplitude = *amp
		cfg.Tone.Samples = *samples
		cfg.Modulator.Order = *order
		cfg.Modulator.Leak = *leak
		cfg.Modulator.ReduceWindow = *reduce
		cfg.Search.MaxOffset = *search
	}

	err := run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dsmeval: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg evalConfig) error {
	opts := []deltasigma.Option{
		deltasigma.WithReduceWindow(cfg.Modulator.ReduceWindow),
	}

	switch cfg.Modulator.Order {
	case 1:
		opts = append(opts, deltasigma.WithOrder(deltasigma.OrderFirst))
	case 2:
		opts = append(opts, deltasigma.WithOrder(deltasigma.OrderSecond))
	default:
		return fmt.Errorf("invalid modulator order: %d", cfg.Modulator.Order)
	}

	if cfg.Modulator.Leak != 0 {
		opts = append(opts, deltasigma.WithLeak(cfg.Modulator.Leak))
	}

	pipe, err := deltasigma.NewPipeline(opts...)
	if err != nil {
		return err
	}

	signal := sine(cfg.Tone.Frequency, cfg.Tone.SampleRate, cfg.Tone.Amplitude, cfg.Tone.Samples)

	pulses := pipe.Quantize(signal)

	original, approx := pipe.RoundTrip(signal)

	tripRMSE, err := align.RMSE(original, approx)
	if err != nil {
		return err
	}

	silence := make([]float64, len(original))

	baseRMSE, err := align.RMSE(original, silence)
	if err != nil {
		return err
	}

	k1, _, _ := pipe.Leaks()

	best, err := align.BestOffset(pulses, signal, cfg.Search.MaxOffset, align.WithLeak(k1))
	if err != nil {
		return err
	}

	spec, err := noisespec.AnalyzeError(deltasigma.Upsample(signal, pipe.Method()), pulses[:len(signal)*deltasigma.Oversample], noisespec.Config{})
	if err != nil {
		return err
	}

	wr := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(wr, "order\t%v\n", pipe.Order())
	fmt.Fprintf(wr, "method\t%v\n", pipe.Method())
	fmt.Fprintf(wr, "leak\t%g\n", k1)
	fmt.Fprintf(wr, "pulses\t%d\n", len(pulses))
	fmt.Fprintf(wr, "signal RMS\t%.2f\n", baseRMSE)
	fmt.Fprintf(wr, "round-trip RMSE\t%.2f\n", tripRMSE)
	fmt.Fprintf(wr, "best offset\t%d\n", best.Offset)
	fmt.Fprintf(wr, "best-offset RMSE\t%.2f\n", best.RMSE)
	fmt.Fprintf(wr, "in-band noise\t%.2f dB\n", spec.InBandFractionDB)

	return wr.Flush()
}

func sine(freqHz, sampleRate, amplitude float64, samples int) []float64 {
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}
