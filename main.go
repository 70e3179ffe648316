package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"

	"github.com/ND-IrishSat/CommunicationSystems/capture"
	"github.com/ND-IrishSat/CommunicationSystems/channel"
	"github.com/ND-IrishSat/CommunicationSystems/config"
	"github.com/ND-IrishSat/CommunicationSystems/link"

	"github.com/knadh/koanf/parsers/hcl"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var configFile = koanf.New(".")

func getConfigPath() string {
	paths := []string{"/etc/clover/config.hcl", "~/.config/clover/config.hcl", "./config.hcl"}
	for _, path := range paths {
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			log.Infof("Found config file: %s", path)
			return path
		}
	}
	log.Info("Config file not found!")
	return ""
}

func main() {
	log.Info("Starting CLOVER modem")
	flags := kong.Parse(&cli)
	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if cli.Profile {
		prof, err := os.Create("./cpu.pprof")
		if err != nil {
			panic(err)
		}
		pprof.StartCPUProfile(prof)
		defer pprof.StopCPUProfile()
	}

	if err := configFile.Load(file.Provider(getConfigPath()), hcl.Parser(true)); err != nil {
		log.Errorf("Could not read config file: %v", err)
		log.Error("Attempting to use environment variables")
		configFile.Load(env.Provider("", env.Opt{
			Prefix: "CLOVER_",
			TransformFunc: func(k, v string) (string, any) {
				key := strings.ToLower(strings.TrimPrefix(k, "CLOVER_"))
				k = strings.Replace(key, "_", ".", 1)
				fmt.Printf("Found config env var: %s=%v\n", k, v)
				return k, v
			},
		}), nil)
	}

	switch flags.Command() {
	case "encode <out>":
		runEncode()
	case "decode <in>":
		runDecode()
	case "simulate":
		runSimulate()
	default:
		log.Info("Command not recognized")
	}
}

func runEncode() {
	tx, err := link.NewTransmitter(configFile)
	if err != nil {
		log.Fatalf("Could not build transmitter: %v", err)
	}

	var data []byte
	if cli.Encode.Bits != "" {
		if data, err = readBits(cli.Encode.Bits); err != nil {
			log.Fatalf("Could not read payload bits: %v", err)
		}
	} else {
		n := configFile.Int("modem.payload_length")
		if n == 0 {
			n = 256
		}
		data = randomBits(n, cli.Encode.Seed)
	}

	waveform, err := tx.Encode(data)
	if err != nil {
		log.Fatalf("Could not encode payload: %v", err)
	}
	if err := capture.Save(cli.Encode.Out, waveform); err != nil {
		log.Fatalf("Could not write capture: %v", err)
	}
	log.Infof("Wrote %d samples for %d payload bits to %s", len(waveform), len(data), cli.Encode.Out)
}

func runDecode() {
	rx, err := link.NewReceiver(configFile)
	if err != nil {
		log.Fatalf("Could not build receiver: %v", err)
	}
	samples, err := capture.Load(cli.Decode.In)
	if err != nil {
		log.Fatalf("Could not read capture: %v", err)
	}
	log.Infof("Loaded %d samples from %s", len(samples), cli.Decode.In)

	result, err := rx.Decode(samples)
	if err != nil {
		log.Fatalf("Decode failed: %v", err)
	}
	if len(result.Bits) == 0 {
		log.Error("No frame recovered")
		return
	}
	log.Infof("Recovered %d bits, CRC ok: %v, coarse offset estimate: %.1f Hz",
		len(result.Bits), result.CRCOK, result.Coarse/2)
	fmt.Println(bitString(result.Bits))
}

func runSimulate() {
	tx, err := link.NewTransmitter(configFile)
	if err != nil {
		log.Fatalf("Could not build transmitter: %v", err)
	}
	rx, err := link.NewReceiver(configFile)
	if err != nil {
		log.Fatalf("Could not build receiver: %v", err)
	}

	chanConf := config.ChannelConf{
		StdDev:          configFile.Float64("channel.std_dev"),
		NoisePower:      configFile.Float64("channel.noise_power"),
		PhaseNoise:      configFile.Float64("channel.phase_noise"),
		FractionalDelay: configFile.Float64("channel.fractional_delay"),
		FrequencyOffset: configFile.Float64("channel.frequency_offset"),
	}
	log.Debugf("Found channel definition: %##v", chanConf)
	if chanConf.StdDev == 0 {
		chanConf.StdDev = 1
	}
	if chanConf.NoisePower == 0 {
		chanConf.NoisePower = 10
	}

	data := randomBits(rx.PayloadLength, cli.Simulate.Seed)
	waveform, err := tx.Encode(data)
	if err != nil {
		log.Fatalf("Could not encode payload: %v", err)
	}

	impairments := channel.Impairments{
		StdDev:          chanConf.StdDev,
		NoisePower:      chanConf.NoisePower,
		PhaseNoise:      chanConf.PhaseNoise,
		FractionalDelay: chanConf.FractionalDelay,
		FrequencyOffset: chanConf.FrequencyOffset,
		SampleRate:      rx.CarrierFrequency,
		Seed:            cli.Simulate.Seed,
	}
	received := impairments.Apply(waveform)

	result, err := rx.Decode(received)
	if err != nil {
		log.Fatalf("Decode failed: %v", err)
	}
	if len(result.Bits) == 0 {
		log.Error("No frame recovered")
		return
	}

	errors := 0
	for i, b := range data {
		if i >= len(result.Bits) || result.Bits[i] != b {
			errors++
		}
	}
	log.Infof("BER: %d/%d (%.2f%%), CRC ok: %v", errors, len(data),
		100*float64(errors)/float64(len(data)), result.CRCOK)
}

func readBits(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bits []byte
	for _, c := range raw {
		switch c {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		case ' ', ',', '\t', '\r', '\n':
		default:
			return nil, fmt.Errorf("unexpected character %q in bit file", c)
		}
	}
	return bits, nil
}

func randomBits(n int, seed uint64) []byte {
	rng := rand.New(rand.NewSource(seed))
	bits := make([]byte, n)
	for i := range bits {
		bits[i] = byte(rng.Intn(2))
	}
	return bits
}

func bitString(bits []byte) string {
	var sb strings.Builder
	for _, b := range bits {
		sb.WriteByte('0' + b)
	}
	return sb.String()
}
