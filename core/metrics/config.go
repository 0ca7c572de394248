package metrics

// Config holds the metrics output settings.
type Config struct {
	// Textfile is written after every scan when set.
	Textfile string `mapstructure:"textfile" default:""`
}
