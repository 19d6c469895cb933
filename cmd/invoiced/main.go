// invoiced is the HTTP receiver behind the "server" save type: it accepts
// invoice records over POST /invoices and stores them locally.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/infra/filestore"
	"github.com/aalvaropc/factura/internal/infra/sqlitestore"
	"github.com/aalvaropc/factura/internal/ports"
	"github.com/aalvaropc/factura/internal/server"
)

type config struct {
	Addr    string `env:"INVOICED_ADDR" envDefault:":8080"`
	DataDir string `env:"INVOICED_DATA_DIR" envDefault:"./data"`

	// Storage selects how received invoices are kept: "file" or "localdb".
	Storage string `env:"INVOICED_STORAGE" envDefault:"localdb"`
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Error("config.parse_failed", "error", err)
		os.Exit(1)
	}

	store, err := buildStore(cfg)
	if err != nil {
		log.Error("storage.init_failed", "storage", cfg.Storage, "error", err)
		os.Exit(1)
	}

	srv := server.New(store, log)

	log.Info("invoiced.listening", "addr", cfg.Addr, "storage", cfg.Storage)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		log.Error("invoiced.stopped", "error", err)
		os.Exit(1)
	}
}

func buildStore(cfg config) (ports.InvoicePersister, error) {
	switch cfg.Storage {
	case "file":
		wcfg := domain.DefaultConfig()
		return filestore.New(cfg.DataDir, wcfg, filestore.WithIndex(true)), nil
	default:
		return sqlitestore.Open(filepath.Join(cfg.DataDir, "invoiced.db"))
	}
}
