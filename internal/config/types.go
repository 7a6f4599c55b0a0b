package config

// Renderer names a Markdown engine.
type Renderer string

const (
	RendererBuiltin  Renderer = "builtin"
	RendererGoldmark Renderer = "goldmark"
)

// Config is the top-level pageshell configuration, corresponding to .pageshell.yml.
type Config struct {
	SiteName          string       `yaml:"site_name" koanf:"site_name"`
	HomeRoute         string       `yaml:"home_route" koanf:"home_route"`
	ContentFile       string       `yaml:"content_file" koanf:"content_file"`
	ContentDir        string       `yaml:"content_dir" koanf:"content_dir"`
	Include           []string     `yaml:"include" koanf:"include"`
	Exclude           []string     `yaml:"exclude" koanf:"exclude"`
	Renderer          Renderer     `yaml:"renderer" koanf:"renderer"`
	NavigationDelayMS int          `yaml:"navigation_delay_ms" koanf:"navigation_delay_ms"`
	DateFormat        string       `yaml:"date_format" koanf:"date_format"`
	Sanitize          bool         `yaml:"sanitize" koanf:"sanitize"`
	LogLevel          string       `yaml:"log_level" koanf:"log_level"`
	OutputDir         string       `yaml:"output_dir" koanf:"output_dir"`
	Server            ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds settings for `pageshell serve`.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	HistoryDB       string `yaml:"history_db" koanf:"history_db"`
}
