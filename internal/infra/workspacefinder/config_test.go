package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, "factura.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "factura: {}\n")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Paths.InvoicesDir != "invoices" || cfg.Paths.ReceiptsDir != "receipts" {
		t.Fatalf("unexpected path defaults: %+v", cfg.Paths)
	}
	if cfg.Server.ReceiptPath != "$.id" {
		t.Fatalf("receipt path default = %q", cfg.Server.ReceiptPath)
	}
	if cfg.Database.SQLiteFile != ".factura/factura.db" {
		t.Fatalf("sqlite default = %q", cfg.Database.SQLiteFile)
	}
}

func TestLoadConfig_ParsesValues(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
factura:
  paths:
    invoices_dir: bills
    receipts_dir: saved
  server:
    url: https://billing.internal/invoices
    receipt_path: $.receipt.id
  database:
    sqlite_file: data/local.db
    postgres_dsn: postgres://u:p@db/factura
  s3:
    bucket: acme-billing
    prefix: archive
    region: eu-west-1
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Paths.InvoicesDir != "bills" || cfg.Paths.ReceiptsDir != "saved" {
		t.Fatalf("paths: %+v", cfg.Paths)
	}
	if cfg.Server.URL != "https://billing.internal/invoices" || cfg.Server.ReceiptPath != "$.receipt.id" {
		t.Fatalf("server: %+v", cfg.Server)
	}
	if cfg.Database.SQLiteFile != "data/local.db" || cfg.Database.PostgresDSN != "postgres://u:p@db/factura" {
		t.Fatalf("database: %+v", cfg.Database)
	}
	if cfg.S3.Bucket != "acme-billing" || cfg.S3.Prefix != "archive" || cfg.S3.Region != "eu-west-1" {
		t.Fatalf("s3: %+v", cfg.S3)
	}
}

func TestLoadConfig_EnvOverridesWin(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
factura:
  server:
    url: https://from-file.example
  s3:
    bucket: file-bucket
`)

	t.Setenv("FACTURA_SERVER_URL", "https://from-env.example")
	t.Setenv("FACTURA_S3_BUCKET", "env-bucket")
	t.Setenv("FACTURA_POSTGRES_DSN", "postgres://env/dsn")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.URL != "https://from-env.example" {
		t.Fatalf("server url = %q", cfg.Server.URL)
	}
	if cfg.S3.Bucket != "env-bucket" {
		t.Fatalf("bucket = %q", cfg.S3.Bucket)
	}
	if cfg.Database.PostgresDSN != "postgres://env/dsn" {
		t.Fatalf("dsn = %q", cfg.Database.PostgresDSN)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing factura.yaml")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "factura: [\n")

	if _, err := LoadConfig(root); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
