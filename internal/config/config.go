package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database `envPrefix:"DB_"`

	// bearer token required on /api/admin routes
	StaffToken string `env:"STAFF_TOKEN"`

	SiteConfigCacheTTLSeconds int `env:"SITE_CONFIG_CACHE_TTL" envDefault:"300"`

	// requests per second allowed on checkout and coupon validation
	CheckoutRateLimit float64 `env:"CHECKOUT_RATE_LIMIT" envDefault:"5"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite or mysql
	DSN    string `env:"DSN" envDefault:"supermercado.db"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
