package sandwich

import "log/slog"

// Config holds the options for one page synthesis.
type Config struct {
	// ImageScale is the factor by which the source image was scaled
	// before inference. Must be positive; 1.0 for unscaled images.
	ImageScale float64

	// Boxes draws a stroked rectangle around every emitted run, reusing
	// the run's geometry. Debug aid only.
	Boxes bool

	// Logger receives skip diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ImageScale: 1.0,
		Boxes:      false,
		Logger:     nil,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
