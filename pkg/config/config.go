package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:""`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"wayfarer:rate:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// RateProvider configures the upstream exchange rate API.
type RateProvider struct {
	ApiUrl      string        `envconfig:"API_URL" default:"https://api.frankfurter.app"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

// RateCache configures the exchange rate cache. TTL is the fixed freshness
// window applied uniformly to every currency pair.
type RateCache struct {
	TTL time.Duration `envconfig:"TTL" default:"1h"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[wayfarer]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env          string        `envconfig:"APP_ENV" default:"development"`
	Server       *Server       `envconfig:"SERVER"`
	Log          *Log          `envconfig:"LOG"`
	DB           *DB           `envconfig:"DATABASE"`
	Redis        *Redis        `envconfig:"REDIS"`
	RateLimit    *RateLimit    `envconfig:"RATE_LIMIT"`
	RateProvider *RateProvider `envconfig:"RATE_PROVIDER"`
	RateCache    *RateCache    `envconfig:"RATE_CACHE"`
}
