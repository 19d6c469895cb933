package workspacefinder

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/factura/internal/domain"
)

// LoadConfig loads factura.yaml from the workspace root, applies defaults,
// then applies FACTURA_* environment overrides on top. Credentials (server
// URL, DSN, bucket) usually live in the environment rather than in a file
// that gets committed.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, "factura.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Factura.Paths.InvoicesDir != "" {
		cfg.Paths.InvoicesDir = y.Factura.Paths.InvoicesDir
	}
	if y.Factura.Paths.ReceiptsDir != "" {
		cfg.Paths.ReceiptsDir = y.Factura.Paths.ReceiptsDir
	}
	if y.Factura.Server.URL != "" {
		cfg.Server.URL = y.Factura.Server.URL
	}
	if y.Factura.Server.ReceiptPath != "" {
		cfg.Server.ReceiptPath = y.Factura.Server.ReceiptPath
	}
	if y.Factura.Database.SQLiteFile != "" {
		cfg.Database.SQLiteFile = y.Factura.Database.SQLiteFile
	}
	if y.Factura.Database.PostgresDSN != "" {
		cfg.Database.PostgresDSN = y.Factura.Database.PostgresDSN
	}
	if y.Factura.S3.Bucket != "" {
		cfg.S3.Bucket = y.Factura.S3.Bucket
	}
	if y.Factura.S3.Prefix != "" {
		cfg.S3.Prefix = y.Factura.S3.Prefix
	}
	if y.Factura.S3.Region != "" {
		cfg.S3.Region = y.Factura.S3.Region
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

type yamlConfig struct {
	Factura struct {
		Paths struct {
			InvoicesDir string `yaml:"invoices_dir"`
			ReceiptsDir string `yaml:"receipts_dir"`
		} `yaml:"paths"`

		Server struct {
			URL         string `yaml:"url"`
			ReceiptPath string `yaml:"receipt_path"`
		} `yaml:"server"`

		Database struct {
			SQLiteFile  string `yaml:"sqlite_file"`
			PostgresDSN string `yaml:"postgres_dsn"`
		} `yaml:"database"`

		S3 struct {
			Bucket string `yaml:"bucket"`
			Prefix string `yaml:"prefix"`
			Region string `yaml:"region"`
		} `yaml:"s3"`
	} `yaml:"factura"`
}

type envOverrides struct {
	ServerURL   string `env:"FACTURA_SERVER_URL"`
	ReceiptPath string `env:"FACTURA_SERVER_RECEIPT_PATH"`
	SQLiteFile  string `env:"FACTURA_SQLITE_FILE"`
	PostgresDSN string `env:"FACTURA_POSTGRES_DSN"`
	S3Bucket    string `env:"FACTURA_S3_BUCKET"`
	S3Prefix    string `env:"FACTURA_S3_PREFIX"`
	S3Region    string `env:"FACTURA_S3_REGION"`
}

func applyEnvOverrides(cfg *domain.Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return &domain.OpError{
			Op:   "workspacefinder.env",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	if o.ServerURL != "" {
		cfg.Server.URL = o.ServerURL
	}
	if o.ReceiptPath != "" {
		cfg.Server.ReceiptPath = o.ReceiptPath
	}
	if o.SQLiteFile != "" {
		cfg.Database.SQLiteFile = o.SQLiteFile
	}
	if o.PostgresDSN != "" {
		cfg.Database.PostgresDSN = o.PostgresDSN
	}
	if o.S3Bucket != "" {
		cfg.S3.Bucket = o.S3Bucket
	}
	if o.S3Prefix != "" {
		cfg.S3.Prefix = o.S3Prefix
	}
	if o.S3Region != "" {
		cfg.S3.Region = o.S3Region
	}
	return nil
}
