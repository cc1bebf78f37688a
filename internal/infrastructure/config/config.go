package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// UploadTmpDir is where multipart uploads are spooled before reaching
	// the object store. Each upload gets a unique filename.
	UploadTmpDir string `env:"UPLOAD_TMP_DIR, default=uploads"`

	Mongo  MongoConfig
	Redis  RedisConfig
	S3     S3Config
	Vision VisionConfig
	DeepL  DeepLConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=casework_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type S3Config struct {
	Bucket string `env:"S3_BUCKET_NAME"`
	Region string `env:"AWS_REGION, default=eu-central-1"`
	// Public switches the store to public-bucket mode: stable object URLs at
	// store time instead of signed URLs on demand.
	Public     bool          `env:"S3_PUBLIC,      default=false"`
	PresignTTL time.Duration `env:"S3_PRESIGN_TTL, default=5m"`
}

type VisionConfig struct {
	// CredentialsFile and CredentialsJSON are alternatives; when both are
	// empty, application default credentials apply.
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	CredentialsJSON string `env:"GOOGLE_CREDENTIALS"`
}

type DeepLConfig struct {
	APIKey   string `env:"DEEPL_API_KEY"`
	Endpoint string `env:"DEEPL_API_URL, default=https://api-free.deepl.com/v2/translate"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
