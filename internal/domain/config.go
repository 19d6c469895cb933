package domain

// Config represents the Factura configuration loaded from factura.yaml,
// with environment overrides applied on top.
type Config struct {
	Paths    PathsConfig
	Server   ServerConfig
	Database DatabaseConfig
	S3       S3Config
}

type PathsConfig struct {
	InvoicesDir string
	ReceiptsDir string
}

// ServerConfig points the "server" strategy at a remote invoice receiver.
type ServerConfig struct {
	URL string

	// ReceiptPath is a JSONPath expression locating the remote receipt id
	// in the response body, e.g. "$.id".
	ReceiptPath string
}

type DatabaseConfig struct {
	// SQLiteFile is relative to the workspace root unless absolute.
	SQLiteFile  string
	PostgresDSN string
}

type S3Config struct {
	Bucket string
	Prefix string
	Region string
}

// DefaultConfig provides sane defaults if factura.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			InvoicesDir: "invoices",
			ReceiptsDir: "receipts",
		},
		Server: ServerConfig{
			ReceiptPath: "$.id",
		},
		Database: DatabaseConfig{
			SQLiteFile: ".factura/factura.db",
		},
		S3: S3Config{
			Prefix: "invoices",
		},
	}
}
