package typedetect

// Config holds the type detection settings.
type Config struct {
	Enabled bool `mapstructure:"enabled" default:"true"`
	// ExifTool is the executable name or path; empty uses the extension table only.
	ExifTool string `mapstructure:"exiftool" default:"exiftool"`
}
