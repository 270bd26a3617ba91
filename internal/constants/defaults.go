package constants

// Reconstruction defaults.
const (
	// DefaultBytesPerLine matches the output of "md.b".
	DefaultBytesPerLine = 16

	// DefaultMaxLogSize bounds the size of a log file accepted by convert.
	DefaultMaxLogSize int64 = 512 << 20

	// DefaultMaxImageSize bounds the size of a binary accepted by dump.
	DefaultMaxImageSize int64 = 128 << 20
)

// Logging defaults.
const (
	DefaultLogLevel = "info"
)
