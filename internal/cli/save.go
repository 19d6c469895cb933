package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/usecase"
)

func saveCmd() *cobra.Command {
	var workspace string
	var invoiceArg string
	var typeOverride string
	var format string

	c := &cobra.Command{
		Use:   "save",
		Short: "Persist the invoices of a document through their save types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			defer ws.Close()

			docPath, err := resolveDocumentPath(ws, invoiceArg)
			if err != nil {
				return err
			}

			var override domain.SaveType
			if typeOverride != "" {
				override, err = domain.ParseSaveType(typeOverride)
				if err != nil {
					return err
				}
			}

			uc := usecase.NewSaveInvoices(ws.invoices, ws.registry)

			run, err := uc.Execute(cmd.Context(), docPath, override)
			if err != nil {
				return err
			}

			if err := printRun(os.Stdout, run, format); err != nil {
				return err
			}

			if fails := run.Failures(); fails > 0 {
				return fmt.Errorf("save failed (%d failed invoice(s))", fails)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&invoiceArg, "invoice", "i", "", "Invoice document name or path (required)")
	c.Flags().StringVarP(&typeOverride, "type", "t", "", "Override every invoice's save type (e.g. file, localdb, pdf)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	_ = c.MarkFlagRequired("invoice")
	return c
}

func printRun(w io.Writer, run domain.SaveRun, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	case "pretty", "":
		printPrettyRun(w, run)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyRun(w io.Writer, run domain.SaveRun) {
	th := defaultTheme()

	total := run.EndedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintln(w, th.Title.Render("Document: "+run.DocumentName))
	fmt.Fprintln(w, th.Faint.Render(fmt.Sprintf("Path:     %s", run.DocumentPath)))
	fmt.Fprintln(w, th.Faint.Render(fmt.Sprintf("Started:  %s", run.StartedAt.Format(time.RFC3339))))
	fmt.Fprintln(w, th.Faint.Render(fmt.Sprintf("Duration: %s", total)))
	fmt.Fprintln(w)

	for _, r := range run.Results {
		status := th.OK.Render("OK")
		if r.Failed() {
			status = th.Fail.Render("FAIL")
		}

		fmt.Fprintf(w, "- [%s] %s (%s) total=%.2f\n", status, r.BookName, r.SaveType, r.Total)

		if r.Error != nil {
			fmt.Fprintf(w, "  error: %s (%s)\n", r.Error.Message, r.Error.Kind)
		} else if r.Receipt != nil {
			fmt.Fprintf(w, "  saved: %s\n", r.Receipt.Location)
		}
	}

	fmt.Fprintln(w)
	if fails := run.Failures(); fails > 0 {
		fmt.Fprintln(w, th.Fail.Render(fmt.Sprintf("%d of %d invoice(s) failed", fails, len(run.Results))))
	} else {
		fmt.Fprintln(w, th.OK.Render(fmt.Sprintf("%d invoice(s) saved", len(run.Results))))
	}
}
