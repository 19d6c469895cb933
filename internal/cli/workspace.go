package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/infra/filestore"
	"github.com/aalvaropc/factura/internal/infra/logger"
	"github.com/aalvaropc/factura/internal/infra/pdfstore"
	"github.com/aalvaropc/factura/internal/infra/pgstore"
	"github.com/aalvaropc/factura/internal/infra/s3store"
	"github.com/aalvaropc/factura/internal/infra/serverstore"
	"github.com/aalvaropc/factura/internal/infra/sqlitestore"
	"github.com/aalvaropc/factura/internal/infra/workspacefinder"
	"github.com/aalvaropc/factura/internal/infra/yamlinvoice"
	"github.com/aalvaropc/factura/internal/ports"
	"github.com/aalvaropc/factura/internal/registry"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	invoices ports.InvoiceLoader
	registry *registry.Registry

	closers []func() error
}

func (ws *workspaceCtx) Close() {
	for _, c := range ws.closers {
		_ = c()
	}
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	loader := yamlinvoice.NewLoader(
		yamlinvoice.WithInvoicesDir(cfg.Paths.InvoicesDir),
	)

	ws := &workspaceCtx{
		root:     root,
		cfg:      cfg,
		invoices: loader,
		registry: registry.New(),
	}

	if err := registerStrategies(ws); err != nil {
		ws.Close()
		return nil, err
	}

	return ws, nil
}

// registerStrategies wires every strategy the workspace config can back.
// Strategies needing remote credentials are only registered when configured,
// so resolving their tag without config fails loudly instead of half-working.
func registerStrategies(ws *workspaceCtx) error {
	reg := ws.registry
	log := logger.L()

	if err := reg.Register(domain.SaveTypeFile, filestore.New(ws.root, ws.cfg, filestore.WithIndex(true))); err != nil {
		return err
	}
	if err := reg.Register(domain.SaveTypePDF, pdfstore.New(ws.root, ws.cfg)); err != nil {
		return err
	}

	sqlitePath := ws.cfg.Database.SQLiteFile
	if !filepath.IsAbs(sqlitePath) {
		sqlitePath = filepath.Join(ws.root, sqlitePath)
	}
	localdb, err := sqlitestore.Open(sqlitePath)
	if err != nil {
		return err
	}
	ws.closers = append(ws.closers, localdb.Close)
	if err := reg.Register(domain.SaveTypeLocalDB, localdb); err != nil {
		return err
	}

	if ws.cfg.Server.URL != "" {
		remote, err := serverstore.New(ws.cfg.Server)
		if err != nil {
			return err
		}
		if err := reg.Register(domain.SaveTypeServer, remote); err != nil {
			return err
		}
	} else {
		log.Debug("strategy.skipped", "tag", domain.SaveTypeServer, "reason", "no server url configured")
	}

	if ws.cfg.Database.PostgresDSN != "" {
		pg, err := pgstore.Open(ws.cfg.Database.PostgresDSN)
		if err != nil {
			return err
		}
		ws.closers = append(ws.closers, pg.Close)
		if err := reg.Register(domain.SaveTypePostgres, pg); err != nil {
			return err
		}
	} else {
		log.Debug("strategy.skipped", "tag", domain.SaveTypePostgres, "reason", "no dsn configured")
	}

	if ws.cfg.S3.Bucket != "" {
		s3, err := s3store.New(ws.cfg.S3)
		if err != nil {
			return err
		}
		if err := reg.Register(domain.SaveTypeS3, s3); err != nil {
			return err
		}
	} else {
		log.Debug("strategy.skipped", "tag", domain.SaveTypeS3, "reason", "no bucket configured")
	}

	return nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `factura init`): %w", wd, err)
	}
	return root, nil
}

func resolveDocumentPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("invoice document is required")
	}

	// If arg is a path, resolve relative to workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	invoicesDir := filepath.Join(ws.root, ws.cfg.Paths.InvoicesDir)

	// If user provided "feb.yaml", treat it as file under invoices dir.
	if hasYAMLExt(in) {
		p := filepath.Join(invoicesDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	// If user provided "feb", try feb.yaml / feb.yml in invoices dir.
	p1 := filepath.Join(invoicesDir, in+".yaml")
	if fileExists(p1) {
		return p1, nil
	}
	p2 := filepath.Join(invoicesDir, in+".yml")
	if fileExists(p2) {
		return p2, nil
	}

	// As a last resort: match by document "name" field.
	refs, err := ws.invoices.ListDocuments(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", fmt.Errorf("invoice document %q not found in %q", in, invoicesDir)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
