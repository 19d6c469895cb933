package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/infra/fsworkspace"
)

func initCmd() *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Initialize a Factura workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			abs, err := filepath.Abs(root)
			if err != nil {
				return err
			}

			if err := fsworkspace.NewInitializer().Init(domain.WorkspaceSpec{Root: abs}, force); err != nil {
				return err
			}

			wd, _ := os.Getwd()
			rel, relErr := filepath.Rel(wd, abs)
			if relErr != nil || rel == "" {
				rel = abs
			}

			th := defaultTheme()
			fmt.Println(th.OK.Render("Workspace initialized at " + rel))
			fmt.Println(th.Faint.Render("Edit factura.yaml, then try: factura save -i sample"))
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return c
}
