package enrichment

// Config holds the Wikidata lookup settings.
type Config struct {
	Enabled           bool    `mapstructure:"enabled" default:"false"`
	Endpoint          string  `mapstructure:"endpoint" default:"https://query.wikidata.org/sparql"`
	UserAgent         string  `mapstructure:"user_agent" default:"media-catalog/1.0"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" default:"30"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"2"`
}
