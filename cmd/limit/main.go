// Command limit runs the peak limiter over raw PCM audio or a generated
// test signal and reports peak levels, gain reduction, and latency.
//
// PCM input and output are interleaved 32-bit little-endian floats, the
// format produced by e.g. "ffmpeg -f f32le" or "sox -t raw -e float -b 32".
package main

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/algo-limiter/dsp/core"
	"github.com/cwbudde/algo-limiter/dsp/limiter"
	"github.com/cwbudde/algo-limiter/dsp/signal"
	"github.com/cwbudde/algo-limiter/dsp/spectrum"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Version bool `short:"v" help:"Show version information"`

	Input  string `short:"i" type:"path" help:"Raw f32le PCM input file ('-' for stdin)" default:"-"`
	Output string `short:"o" type:"path" help:"Raw f32le PCM output file (omit to analyze only)"`

	Rate     float64 `help:"Sample rate in Hz" default:"48000"`
	Channels int     `help:"Channel count of the PCM stream" default:"2"`
	Block    int     `help:"Processing block size in frames" default:"480"`

	Preset      string   `short:"p" help:"Parameter preset (default, podcast, streaming, aggressive, transparent, music, brickwall)"`
	Threshold   *float64 `help:"Threshold override in dBFS"`
	Release     *float64 `help:"Release time override in ms"`
	OutputGain  *float64 `help:"Output gain override in dB"`
	Adaptive    *bool    `help:"Program-dependent release override"`
	Lookahead   *bool    `help:"Lookahead override"`
	LookaheadMs *float64 `help:"Lookahead time override in ms"`
	TruePeak    *bool    `help:"Inter-sample peak estimation override"`

	Signal    string  `help:"Generate input instead of reading PCM (sine, noise, burst, impulse, constant)"`
	Freq      float64 `help:"Generator frequency in Hz" default:"1000"`
	Amplitude float64 `help:"Generator amplitude" default:"1.0"`
	Seconds   float64 `help:"Generator duration in seconds" default:"1.0"`

	Spectrum bool `help:"Report the strongest spectral component of the output"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("limit"),
		kong.Description("Lookahead peak limiter for raw PCM streams"),
		kong.UsageOnError(),
	)

	if cli.Version {
		fmt.Printf("limit %s\n", version)
		os.Exit(0)
	}

	if err := run(cli); err != nil {
		ctx.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cli *CLI) error {
	if cli.Rate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %v", cli.Rate)
	}
	if cli.Channels <= 0 || cli.Channels > limiter.MaxChannels {
		return fmt.Errorf("channels must be 1..%d: %d", limiter.MaxChannels, cli.Channels)
	}
	if cli.Block <= 0 {
		return fmt.Errorf("block size must be > 0: %d", cli.Block)
	}

	cfg, err := resolveConfig(cli)
	if err != nil {
		return err
	}

	engine := limiter.New()
	latency := engine.Configure(cfg, cli.Rate, cli.Channels)

	input, closeInput, err := openInput(cli)
	if err != nil {
		return err
	}
	defer closeInput()

	var output io.Writer
	if cli.Output != "" {
		f, err := os.Create(cli.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w := bufio.NewWriter(f)
		defer w.Flush()
		output = w
	}

	stats, err := process(engine, input, output, cli)
	if err != nil {
		return err
	}

	active := engine.Config()
	fmt.Printf("threshold      %6.1f dBFS\n", active.ThresholdDB)
	fmt.Printf("release        %6.1f ms\n", active.ReleaseTimeMs)
	fmt.Printf("latency        %v\n", latency)
	fmt.Printf("frames         %d\n", stats.frames)
	fmt.Printf("input peak     %6.2f dBFS\n", core.LinearToDB(stats.inPeak))
	fmt.Printf("output peak    %6.2f dBFS\n", core.LinearToDB(stats.outPeak))
	fmt.Printf("max reduction  %6.2f dB\n", core.LinearToDB(stats.minReduction))

	if cli.Spectrum && len(stats.tail) > 1 {
		analyzer, err := spectrum.NewAnalyzer(cli.Rate, len(stats.tail))
		if err != nil {
			return err
		}
		mag, err := analyzer.Magnitude(stats.tail)
		if err != nil {
			return err
		}
		peakHz, _ := analyzer.PeakFrequency(mag)
		fmt.Printf("spectral peak  %6.0f Hz\n", peakHz)
	}

	return nil
}

// resolveConfig layers explicit flag overrides over the chosen preset.
func resolveConfig(cli *CLI) (limiter.Config, error) {
	cfg := limiter.DefaultConfig()

	if cli.Preset != "" {
		p := limiter.Preset(strings.ToLower(cli.Preset))
		preset, ok := p.Config()
		if !ok {
			return limiter.Config{}, fmt.Errorf("unknown preset %q", cli.Preset)
		}
		cfg = preset
	}

	if cli.Threshold != nil {
		cfg.ThresholdDB = *cli.Threshold
	}
	if cli.Release != nil {
		cfg.ReleaseTimeMs = *cli.Release
	}
	if cli.OutputGain != nil {
		cfg.OutputGainDB = *cli.OutputGain
	}
	if cli.Adaptive != nil {
		cfg.AdaptiveRelease = *cli.Adaptive
	}
	if cli.Lookahead != nil {
		cfg.Lookahead = *cli.Lookahead
	}
	if cli.LookaheadMs != nil {
		cfg.LookaheadTimeMs = *cli.LookaheadMs
	}
	if cli.TruePeak != nil {
		cfg.TruePeak = *cli.TruePeak
	}

	return cfg, nil
}

// openInput returns the PCM source: a generated signal, stdin, or a file.
func openInput(cli *CLI) (io.Reader, func(), error) {
	if cli.Signal != "" {
		r, err := generatedInput(cli)
		return r, func() {}, err
	}

	if cli.Input == "" || cli.Input == "-" {
		return bufio.NewReader(os.Stdin), func() {}, nil
	}

	f, err := os.Open(cli.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}

	return bufio.NewReader(f), func() { f.Close() }, nil
}

// generatedInput renders a mono test signal and interleaves it across all
// configured channels.
func generatedInput(cli *CLI) (io.Reader, error) {
	samples := int(cli.Rate * cli.Seconds)
	if samples <= 0 {
		return nil, fmt.Errorf("duration too short: %v s", cli.Seconds)
	}

	gen := signal.NewGenerator(core.WithSampleRate(cli.Rate))

	var (
		mono []float64
		err  error
	)
	switch strings.ToLower(cli.Signal) {
	case "sine":
		mono, err = gen.Sine(cli.Freq, cli.Amplitude, samples)
	case "noise":
		mono, err = gen.WhiteNoise(cli.Amplitude, samples)
	case "burst":
		mono, err = gen.ToneBurst(cli.Freq, cli.Amplitude, samples/2, samples)
	case "impulse":
		mono, err = gen.Impulse(cli.Amplitude, samples/2, samples)
	case "constant":
		mono, err = gen.Constant(cli.Amplitude, samples)
	default:
		return nil, fmt.Errorf("unknown signal type %q", cli.Signal)
	}
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(mono)*cli.Channels*4)
	for _, v := range mono {
		bits := math.Float32bits(float32(v))
		for c := 0; c < cli.Channels; c++ {
			buf = binary.LittleEndian.AppendUint32(buf, bits)
		}
	}

	return bytes.NewReader(buf), nil
}

type runStats struct {
	frames       int
	inPeak       float64
	outPeak      float64
	minReduction float64

	// tail keeps the most recent output of channel 0 for spectral analysis.
	tail []float64
}

// process streams blocks through the engine, deinterleaving on the way in
// and reinterleaving on the way out.
func process(engine *limiter.Engine, input io.Reader, output io.Writer, cli *CLI) (runStats, error) {
	stats := runStats{minReduction: 1}

	frameBytes := cli.Channels * 4
	raw := make([]byte, cli.Block*frameBytes)

	block := make([][]float64, cli.Channels)
	for c := range block {
		block[c] = make([]float64, cli.Block)
	}

	for {
		n, err := io.ReadFull(input, raw)
		if err == io.EOF {
			break
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			return stats, fmt.Errorf("read input: %w", err)
		}

		frames := n / frameBytes
		if frames == 0 {
			break
		}

		for i := 0; i < frames; i++ {
			for c := 0; c < cli.Channels; c++ {
				bits := binary.LittleEndian.Uint32(raw[(i*cli.Channels+c)*4:])
				v := float64(math.Float32frombits(bits))
				block[c][i] = v
				if a := math.Abs(v); a > stats.inPeak {
					stats.inPeak = a
				}
			}
		}

		engine.Process(block, frames)

		if r := engine.LastGainReduction(); r < stats.minReduction {
			stats.minReduction = r
		}
		for c := 0; c < cli.Channels; c++ {
			for i := 0; i < frames; i++ {
				if a := math.Abs(block[c][i]); a > stats.outPeak {
					stats.outPeak = a
				}
			}
		}

		if cli.Spectrum {
			stats.tail = append(stats.tail[:0], block[0][:frames]...)
		}

		if output != nil {
			out := raw[:frames*frameBytes]
			for i := 0; i < frames; i++ {
				for c := 0; c < cli.Channels; c++ {
					bits := math.Float32bits(float32(block[c][i]))
					binary.LittleEndian.PutUint32(out[(i*cli.Channels+c)*4:], bits)
				}
			}
			if _, err := output.Write(out); err != nil {
				return stats, fmt.Errorf("write output: %w", err)
			}
		}

		stats.frames += frames

		if err == io.ErrUnexpectedEOF {
			break
		}
	}

	return stats, nil
}
