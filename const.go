package framy

const (
	defaultPadding = 32
	defaultSize    = 1920
	defaultOutDir  = "."
	defaultFormat  = "jpeg"
	defaultColor   = "ffffff"
	defaultFilter  = "lanczos3"
	defaultQuality = 75
	defaultWorkers = 1
)

const (
	// StdinSentinel is the input path that expands to paths read from standard input.
	StdinSentinel = "-"

	framedSuffix = "_framed"
)
