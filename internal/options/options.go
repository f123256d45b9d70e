// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Default option values.
const (
	DefaultCyclesPerFrame = 10
	DefaultFrameRate      = 60
	DefaultScale          = 10
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output file of the disassembly (default: stdout)"`
	Script string `flag:"script" usage:"Lua script that is called every frame"`
	Wav    string `flag:"wav" usage:"record the sound to a WAV file"`
	Batch  string `flag:"batch" usage:"run files matching pattern headless (e.g. *.ch8)"`
	Verify string `flag:"verify" usage:"expected screen digest of a headless run"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend       string `flag:"f" usage:"frontend: window, terminal, headless (default: auto-detect)"`
	CyclesPerFrame int    `flag:"cycles" usage:"instructions executed per frame" default:"10"`
	FrameRate      int    `flag:"fps" usage:"frames per second, 0 runs headless unthrottled" default:"60"`
	Frames         uint64 `flag:"frames" usage:"stop after the number of frames (0: unlimited)"`
	Seed           int64  `flag:"seed" usage:"random number seed (-1: random)" default:"-1"`
	Mute           bool   `flag:"mute" usage:"disable the sound output"`
	Stats          bool   `flag:"stats" usage:"start the runtime statistics server"`
	Trace          bool   `flag:"trace" usage:"log every executed instruction"`
	Disasm         bool   `flag:"disasm" usage:"print the disassembly instead of running the ROM"`
	Debug          bool   `flag:"debug" usage:"enable debug logging"`
	Quiet          bool   `flag:"q" usage:"quiet mode"`
}

// Display contains window options.
type Display struct {
	Scale       int  `flag:"scale" usage:"window scale factor" default:"10"`
	Fullscreen  bool `flag:"fullscreen" usage:"start in fullscreen mode"`
	NoStatusBar bool `flag:"nostatus" usage:"hide the status bar"`
}

// OutputFlags contains disassembly formatting options.
type OutputFlags struct {
	NoOffsets bool `flag:"nooffsets" usage:"omit addresses and opcode bytes in comments"`
	ZeroBytes bool `flag:"z" usage:"include trailing zero bytes"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Display
	OutputFlags
}
