package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// BGGConfig configures the upstream collection source. Source selects the
// client implementation; the XML API needs the retry knobs because BGG
// answers 202 while a collection export is still being generated.
type BGGConfig struct {
	Source         string        `yaml:"source" validate:"required|in:xml,graphql"`
	XMLBaseURL     string        `yaml:"xmlBaseUrl"`
	GraphQLURL     string        `yaml:"graphqlUrl"`
	RequestTimeout time.Duration `yaml:"requestTimeout" validate:"required|min:1"`
	RetryCount     int           `yaml:"retryCount"`
	RetryDelay     time.Duration `yaml:"retryDelay"`
	RequestsPerSec float64       `yaml:"requestsPerSec"`
	Burst          int           `yaml:"burst"`
}

type SearchConfig struct {
	// Normalized edit-distance cutoff for fuzzy name matching.
	// Lower is stricter. Zero falls back to the default.
	Threshold float64 `yaml:"threshold"`
}

type SessionConfig struct {
	MaxEntries    int           `yaml:"maxEntries" validate:"required|min:1"`
	TTL           time.Duration `yaml:"ttl" validate:"required|min:1"`
	FilePath      string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval  time.Duration `yaml:"saveInterval" validate:"required|min:1"`
	SweepInterval time.Duration `yaml:"sweepInterval" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	BGG       BGGConfig     `yaml:"bgg"`
	Search    SearchConfig  `yaml:"search"`
	Session   SessionConfig `yaml:"session"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
