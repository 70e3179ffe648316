// Package link assembles the transmit and receive chains from the modem,
// sync, dsp and crc packages and binds them to the configuration surface.
package link

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/v2"
	segdsp "github.com/racerxdl/segdsp/dsp"

	"github.com/ND-IrishSat/CommunicationSystems/config"
	"github.com/ND-IrishSat/CommunicationSystems/crc"
	"github.com/ND-IrishSat/CommunicationSystems/modem"
	"github.com/ND-IrishSat/CommunicationSystems/sync"
)

// Receiver turns a raw IQ capture back into the transmitted payload bits.
// Each Decode call owns its own loop state, so a single Receiver may serve
// concurrent decodes.
type Receiver struct {
	// CarrierFrequency is the sample clock the time vectors are built
	// against, matching the transmit side.
	CarrierFrequency float64
	SPS              int
	Scheme           modem.Scheme
	PayloadLength    int
	CRCKey           []byte
	CostasAlpha      float64
	CostasBeta       float64
	TimingGain       float64

	decimFactor int
	decimator   *segdsp.FirFilter
}

// Result is the outcome of one decode. Bits may be empty when the input was
// too short for the loops or no frame was found; that is not an error.
type Result struct {
	Bits    []byte
	CRCOK   bool
	FreqLog []float64 // Costas frequency trajectory in Hz
	Coarse  float64   // coarse spectral peak estimate in Hz
}

// NewReceiver builds a receiver from the loaded configuration, filling in
// the standard defaults for anything unset.
func NewReceiver(configFile *koanf.Koanf) (*Receiver, error) {
	modemConf := config.ModemConf{
		CarrierFrequency: configFile.Float64("modem.carrier_frequency"),
		SPS:              configFile.Int("modem.sps"),
		Scheme:           configFile.String("modem.scheme"),
		PayloadLength:    configFile.Int("modem.payload_length"),
	}
	costasConf := config.CostasConf{
		Alpha: configFile.Float64("costas.alpha"),
		Beta:  configFile.Float64("costas.beta"),
	}
	clockConf := config.ClockRecoveryConf{
		Gain: configFile.Float64("clockrecovery.gain"),
	}
	feConf := config.FrontendConf{
		DecimationFactor:       configFile.Int("frontend.decimation_factor"),
		LowPassTransitionWidth: configFile.Float64("frontend.lowpass_transition_width"),
	}

	log.Debugf("Found modem definition: %##v", modemConf)
	log.Debugf("Found costas definition: %##v", costasConf)
	log.Debugf("Found clockrecovery definition: %##v", clockConf)
	log.Debugf("Found frontend definition: %##v", feConf)

	applyModemDefaults(&modemConf)
	if costasConf.Alpha == 0 {
		costasConf.Alpha = 0.0000132
	}
	if costasConf.Beta == 0 {
		costasConf.Beta = 0.0000932
	}
	if clockConf.Gain == 0 {
		clockConf.Gain = 0.3
	}

	scheme, err := modem.ParseScheme(modemConf.Scheme)
	if err != nil {
		return nil, err
	}

	r := &Receiver{
		CarrierFrequency: modemConf.CarrierFrequency,
		SPS:              modemConf.SPS,
		Scheme:           scheme,
		PayloadLength:    modemConf.PayloadLength,
		CRCKey:           crc.DefaultKey,
		CostasAlpha:      costasConf.Alpha,
		CostasBeta:       costasConf.Beta,
		TimingGain:       clockConf.Gain,
	}
	if feConf.DecimationFactor > 1 {
		circuitRate := modemConf.CarrierFrequency / float64(feConf.DecimationFactor)
		tw := feConf.LowPassTransitionWidth
		if tw == 0 {
			tw = circuitRate / 10
		}
		r.decimFactor = feConf.DecimationFactor
		r.decimator = segdsp.MakeDecimationFirFilter(feConf.DecimationFactor,
			segdsp.MakeLowPass(1, modemConf.CarrierFrequency, circuitRate/2-tw/2, tw))
	}
	return r, nil
}

func applyModemDefaults(c *config.ModemConf) {
	if c.CarrierFrequency == 0 {
		c.CarrierFrequency = 2.45e9
	}
	if c.SPS == 0 {
		c.SPS = 8
	}
	if c.Scheme == "" {
		c.Scheme = "BPSK"
	}
	if c.PayloadLength == 0 {
		c.PayloadLength = 256
	}
	if c.PulseShape == "" {
		c.PulseShape = "rrc"
	}
	if c.PulseLength == 0 {
		c.PulseLength = 8
	}
	if c.RRCAlpha == 0 {
		c.RRCAlpha = 0.5
	}
}

// Decode runs the full synchronization and demodulation pipeline over a
// complete capture buffer and returns the recovered bits plus diagnostics.
// Insufficient input, a signal-free capture and a missed frame all produce
// an empty Result; only the IQ imbalance out-of-range degeneracy and bad
// configuration are errors.
func (r *Receiver) Decode(samples []complex128) (*Result, error) {
	if len(r.CRCKey) < 2 {
		return nil, fmt.Errorf("link: CRC key too short")
	}

	if r.decimFactor > 1 {
		log.Debugf("[receiver] Running decimator (factor: %d)", r.decimFactor)
		samples = fromComplex64(r.decimator.Work(toComplex64(samples)))
	}

	payloadLen := r.PayloadLength + len(r.CRCKey) - 1

	log.Debugf("[receiver] Running clock recovery (length: %d, sps: %d)", len(samples), r.SPS)
	timing := sync.NewTimingRecovery(float64(r.SPS))
	timing.Gain = r.TimingGain
	symbols := timing.Recover(samples)
	if len(symbols) < modem.PreambleLength+payloadLen {
		log.Debugf("[receiver] Recovered %d symbols, a frame needs %d", len(symbols), modem.PreambleLength+payloadLen)
		return &Result{}, nil
	}

	log.Debugf("[receiver] Running coarse frequency correction (%d symbols)", len(symbols))
	symbols, coarse := sync.CoarseFrequency(symbols, r.CarrierFrequency)

	log.Debugf("[receiver] Running Costas loop (alpha: %g, beta: %g)", r.CostasAlpha, r.CostasBeta)
	costas := sync.NewCostasLoop(r.CostasAlpha, r.CostasBeta, r.CarrierFrequency)
	symbols = costas.Run(symbols)

	log.Debug("[receiver] Running IQ imbalance correction")
	symbols, err := sync.CorrectIQImbalance(symbols, len(symbols)/10)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		log.Debug("[receiver] No signal energy in the capture")
		return &Result{FreqLog: costas.FreqLog, Coarse: coarse}, nil
	}

	log.Debugf("[receiver] Running frame sync (payload: %d symbols)", payloadLen)
	_, payload := sync.Synchronize(symbols, modem.Preamble(), payloadLen)
	if len(payload) == 0 {
		log.Debug("[receiver] No frame found")
		return &Result{FreqLog: costas.FreqLog, Coarse: coarse}, nil
	}

	log.Debugf("[receiver] Demodulating %d symbols (%s)", len(payload), r.Scheme)
	bits := modem.Demodulate(payload, r.Scheme, 1, modem.PreambleLength)
	ok, err := crc.Check(bits, r.CRCKey)
	if err != nil {
		return nil, err
	}

	return &Result{Bits: bits, CRCOK: ok, FreqLog: costas.FreqLog, Coarse: coarse}, nil
}

func toComplex64(in []complex128) []complex64 {
	out := make([]complex64, len(in))
	for i, s := range in {
		out[i] = complex64(s)
	}
	return out
}

func fromComplex64(in []complex64) []complex128 {
	out := make([]complex128, len(in))
	for i, s := range in {
		out[i] = complex128(s)
	}
	return out
}
