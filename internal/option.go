package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	configPath string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithConfigFile sets the file watched for live log-level changes.
// Without it, the configuration is never reloaded.
func WithConfigFile(path string) Option {
	return func(a *application) {
		a.configPath = path
	}
}
