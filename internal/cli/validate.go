package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/factura/internal/usecase"
)

func validateCmd() *cobra.Command {
	var workspace string
	var invoiceArg string
	var checkTypes bool

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate an invoice document without persisting anything",
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

			var opts []usecase.ValidateOption
			if checkTypes {
				opts = append(opts, usecase.WithResolver(ws.registry))
			}

			uc := usecase.NewValidateDocument(ws.invoices, opts...)

			doc, err := uc.Execute(cmd.Context(), docPath)
			if err != nil {
				return err
			}

			th := defaultTheme()
			fmt.Println(th.OK.Render(fmt.Sprintf("%s: %d invoice(s) valid", doc.Name, len(doc.Invoices))))
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&invoiceArg, "invoice", "i", "", "Invoice document name or path (required)")
	c.Flags().BoolVar(&checkTypes, "check-types", true, "Also verify every save type has a registered strategy")

	_ = c.MarkFlagRequired("invoice")
	return c
}
