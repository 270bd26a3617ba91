// Package constants defines shared configuration constants.
package constants

var (
	ConfigFile = "config.yaml"

	DefaultDir = ".mdimage"

	// EnvConfig overrides the configuration file location.
	EnvConfig = "MDIMAGE_CONFIG"

	// DefaultOutputFile is where convert writes the image when -o is not given.
	DefaultOutputFile = "output.bin"

	// DefaultExtractBinary is the signature scanner invoked by convert --extract.
	DefaultExtractBinary = "binwalk"
)
