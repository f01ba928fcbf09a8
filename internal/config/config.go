package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"web3mail.db"`

	Auth     Auth     `envPrefix:"AUTH_"`
	Storage  Storage  `envPrefix:"STORAGE_"`
	Checkout Checkout `envPrefix:"CHECKOUT_"`
}

type Auth struct {
	JWTSecret       string `env:"JWT_SECRET,notEmpty"`
	TokenTTLMin     int    `env:"TOKEN_TTL_MINUTES" envDefault:"30"`
	ChallengeTTLSec int    `env:"CHALLENGE_TTL_SECONDS" envDefault:"600"`
}

type Storage struct {
	// Backend selects the content-addressed store: "ipfs" or "s3".
	Backend string `env:"BACKEND" envDefault:"ipfs"`

	// Key material for the process-wide content key. Both must be set;
	// losing them makes every stored object unreadable.
	Passphrase string `env:"PASSPHRASE,notEmpty"`
	KeySalt    string `env:"KEY_SALT,notEmpty"`

	IPFSAPIURL string `env:"IPFS_API_URL" envDefault:"http://localhost:5001"`

	S3Region       string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3BaseEndpoint string `env:"S3_BASE_ENDPOINT"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
}

type Checkout struct {
	BaseAPIURL string `env:"BASE_API_URL"`
	APIKey     string `env:"API_KEY"`
	WebhookID  string `env:"WEBHOOK_ID"`
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
