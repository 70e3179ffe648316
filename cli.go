package main

var cli struct {
	Verbose bool `help:"Prints debug output by default"`
	Profile bool `help:"Output a pprof profile"`
	Encode  struct {
		Out  string `arg:"" help:"Capture file to write (.txt/.csv text, otherwise raw int16)"`
		Bits string `help:"File of 0/1 payload bits to send; random payload when omitted"`
		Seed uint64 `help:"Seed for the random payload"`
	} `cmd:"" help:"Encode a payload into a pulse-shaped IQ waveform"`
	Decode struct {
		In string `arg:"" help:"Capture file to decode"`
	} `cmd:"" help:"Run the receive chain over a capture file"`
	Simulate struct {
		Seed uint64 `help:"Seed for the payload and channel noise"`
	} `cmd:"" help:"Run an end-to-end encode/channel/decode trial"`
}
