package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Lighthouse LighthouseConfig `mapstructure:"lighthouse"`
	Gateway    GatewayConfig    `mapstructure:"gateway"`
	Pin        PinConfig        `mapstructure:"pin"`
	Replicate  ReplicateConfig  `mapstructure:"replicate"`
	Farcaster  FarcasterConfig  `mapstructure:"farcaster"`
	Mint       MintConfig       `mapstructure:"mint"`
	Mirror     MirrorConfig     `mapstructure:"mirror"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// LighthouseConfig configures the content-addressable uploader.
type LighthouseConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// GatewayConfig holds the public and fallback gateway hosts.
type GatewayConfig struct {
	PublicHost   string        `mapstructure:"public_host"`
	PrivateHost  string        `mapstructure:"private_host"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

type PinConfig struct {
	WorkDir       string        `mapstructure:"work_dir"`
	ContentScheme string        `mapstructure:"content_scheme"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	MaxImageBytes int           `mapstructure:"max_image_bytes"`
	// RandomSeed of 0 seeds from the clock.
	RandomSeed int64 `mapstructure:"random_seed"`
}

type ReplicateConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Prompt  string        `mapstructure:"prompt"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type FarcasterConfig struct {
	NeynarAPIKey  string `mapstructure:"neynar_api_key"`
	NeynarBaseURL string `mapstructure:"neynar_base_url"`
	AvatarBaseURL string `mapstructure:"avatar_base_url"`
}

type MintConfig struct {
	ContractAddress string `mapstructure:"contract_address"`
	ChainID         int64  `mapstructure:"chain_id"`
	RPCURL          string `mapstructure:"rpc_url"`
	Price           string `mapstructure:"price"`
}

// MirrorConfig configures the optional S3-compatible copy of pinned artifacts.
type MirrorConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Type      string `mapstructure:"type"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	PublicURL string `mapstructure:"public_url"`
	Prefix    string `mapstructure:"prefix"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Secrets and deployment values keep the names the web client already uses
	v.BindEnv("lighthouse.api_key", "LIGHTHOUSE_API_KEY")
	v.BindEnv("replicate.api_key", "REPLICATE_API_KEY")
	v.BindEnv("farcaster.neynar_api_key", "NEYNAR_API_KEY")
	v.BindEnv("mint.contract_address", "CONTRACT_ADDRESS", "NEXT_PUBLIC_CONTRACT_ADDRESS")
	v.BindEnv("mint.rpc_url", "RPC_URL")
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("mirror.enabled", "MIRROR_ENABLED")
	v.BindEnv("mirror.endpoint", "MIRROR_ENDPOINT")
	v.BindEnv("mirror.access_key", "MIRROR_ACCESS_KEY")
	v.BindEnv("mirror.secret_key", "MIRROR_SECRET_KEY")
	v.BindEnv("mirror.bucket", "MIRROR_BUCKET")
	v.BindEnv("server.port", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/fidghost.db")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("lighthouse.endpoint", "https://upload.lighthouse.storage")
	v.SetDefault("lighthouse.timeout", "120s")

	v.SetDefault("gateway.public_host", "ipfs.io")
	v.SetDefault("gateway.private_host", "gateway.lighthouse.storage")
	v.SetDefault("gateway.probe_timeout", "8s")

	v.SetDefault("pin.work_dir", "./tmp")
	v.SetDefault("pin.content_scheme", "ipfs")
	v.SetDefault("pin.fetch_timeout", "30s")
	v.SetDefault("pin.max_image_bytes", 20<<20)
	v.SetDefault("pin.random_seed", 0)

	v.SetDefault("replicate.base_url", "https://api.replicate.com/v1")
	v.SetDefault("replicate.model", "stability-ai/stable-diffusion-xl-image-edit")
	v.SetDefault("replicate.prompt", "Convert avatar into friendly ghost character")
	v.SetDefault("replicate.timeout", "120s")

	v.SetDefault("farcaster.neynar_base_url", "https://api.neynar.com")
	v.SetDefault("farcaster.avatar_base_url", "https://api.dicebear.com/8.x/pixel-art/png")

	v.SetDefault("mint.chain_id", 8453)
	v.SetDefault("mint.price", "0.0002")

	v.SetDefault("mirror.enabled", false)
	v.SetDefault("mirror.use_ssl", true)
	v.SetDefault("mirror.bucket", "fidghost")
	v.SetDefault("mirror.prefix", "ghosts")
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Gateway.PublicHost == "" || c.Gateway.PrivateHost == "" {
		return fmt.Errorf("gateway: public_host and private_host are required")
	}
	// Hosts are joined as https://<host>/ipfs/...
	for _, host := range []string{c.Gateway.PublicHost, c.Gateway.PrivateHost} {
		if strings.Contains(host, "/") {
			return fmt.Errorf("gateway: %q must be a bare host without scheme or path", host)
		}
	}
	if c.Gateway.ProbeTimeout <= 0 {
		return fmt.Errorf("gateway: probe_timeout must be positive")
	}
	if c.Pin.ContentScheme == "" {
		return fmt.Errorf("pin: content_scheme is required")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres", "none":
	default:
		return fmt.Errorf("database: unknown driver %q", c.Database.Driver)
	}
	if c.Mirror.Enabled && c.Mirror.Endpoint == "" {
		return fmt.Errorf("mirror: endpoint is required when enabled")
	}
	return nil
}
