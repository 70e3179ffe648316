package link

import (
	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/v2"

	"github.com/ND-IrishSat/CommunicationSystems/config"
	"github.com/ND-IrishSat/CommunicationSystems/crc"
	"github.com/ND-IrishSat/CommunicationSystems/dsp"
	"github.com/ND-IrishSat/CommunicationSystems/modem"
)

// Transmitter encodes payload bits into a pulse-shaped IQ waveform: CRC,
// preamble, symbol mapping, pulse shaping.
type Transmitter struct {
	CarrierFrequency float64
	SPS              int
	Scheme           modem.Scheme
	PulseShape       dsp.PulseShape
	PulseLength      int
	RRCAlpha         float64
	CRCKey           []byte
}

// NewTransmitter builds a transmitter from the loaded configuration with the
// same defaults as the receive side.
func NewTransmitter(configFile *koanf.Koanf) (*Transmitter, error) {
	modemConf := config.ModemConf{
		CarrierFrequency: configFile.Float64("modem.carrier_frequency"),
		SPS:              configFile.Int("modem.sps"),
		PulseShape:       configFile.String("modem.pulse_shape"),
		PulseLength:      configFile.Int("modem.pulse_length"),
		RRCAlpha:         configFile.Float64("modem.rrc_alpha"),
		Scheme:           configFile.String("modem.scheme"),
	}
	log.Debugf("Found modem definition: %##v", modemConf)
	applyModemDefaults(&modemConf)

	scheme, err := modem.ParseScheme(modemConf.Scheme)
	if err != nil {
		return nil, err
	}
	shape, err := dsp.ParsePulseShape(modemConf.PulseShape)
	if err != nil {
		return nil, err
	}

	return &Transmitter{
		CarrierFrequency: modemConf.CarrierFrequency,
		SPS:              modemConf.SPS,
		Scheme:           scheme,
		PulseShape:       shape,
		PulseLength:      modemConf.PulseLength,
		RRCAlpha:         modemConf.RRCAlpha,
		CRCKey:           crc.DefaultKey,
	}, nil
}

// Encode produces the transmit waveform for the given payload bits.
func (t *Transmitter) Encode(data []byte) ([]complex128, error) {
	encoded, err := crc.Encode(data, t.CRCKey)
	if err != nil {
		return nil, err
	}
	bits := append(modem.Preamble(), encoded...)
	symbols := modem.Modulate(bits, t.Scheme, modem.PreambleLength)
	log.Debugf("[transmitter] Shaping %d symbols (%s, %s)", len(symbols), t.Scheme, t.PulseShape)
	return dsp.Shape(symbols, t.SPS, t.CarrierFrequency, t.PulseShape, t.RRCAlpha, t.PulseLength), nil
}
