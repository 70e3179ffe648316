package config

type ModemConf struct {
	CarrierFrequency float64 `koanf:"carrier_frequency"`
	SPS              int     `koanf:"sps"`
	PulseShape       string  `koanf:"pulse_shape"`
	PulseLength      int     `koanf:"pulse_length"`
	RRCAlpha         float64 `koanf:"rrc_alpha"`
	Scheme           string  `koanf:"scheme"`
	PayloadLength    int     `koanf:"payload_length"`
}

type CostasConf struct {
	Alpha float64 `koanf:"alpha"`
	Beta  float64 `koanf:"beta"`
}

type ClockRecoveryConf struct {
	Gain float64 `koanf:"gain"`
}

type FrontendConf struct {
	DecimationFactor       int     `koanf:"decimation_factor"`
	LowPassTransitionWidth float64 `koanf:"lowpass_transition_width"`
}

type ChannelConf struct {
	StdDev          float64 `koanf:"std_dev"`
	NoisePower      float64 `koanf:"noise_power"`
	PhaseNoise      float64 `koanf:"phase_noise"`
	FractionalDelay float64 `koanf:"fractional_delay"`
	FrequencyOffset float64 `koanf:"frequency_offset"`
}
