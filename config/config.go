package config

import "errors"

// Config is the top-level configuration struct. All fields have safe defaults
// so callers can start with Default() and override only what they need.
type Config struct {
	// Unpack-stage engine governance.
	PreferRawSpeed bool // prefer the engine's high-fidelity unpack front-end
	MaxRawMemoryMB int  // cap on engine-internal raw buffer allocation

	// Default develop output depth (8 or 16) used by the CLI when the caller
	// does not pick one explicitly.
	OutputBitDepth int
}

// Default returns a Config populated with sensible production defaults.
func Default() Config {
	return Config{
		PreferRawSpeed: true,
		MaxRawMemoryMB: 1024,
		OutputBitDepth: 8,
	}
}

// Validate returns an error if the configuration is inconsistent.
func Validate(c Config) error {
	if c.MaxRawMemoryMB <= 0 {
		return errors.New("config: MaxRawMemoryMB must be positive")
	}
	if c.OutputBitDepth != 8 && c.OutputBitDepth != 16 {
		return errors.New("config: OutputBitDepth must be 8 or 16")
	}
	return nil
}
