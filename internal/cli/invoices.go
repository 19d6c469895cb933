package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func invoicesCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "invoices",
		Short: "List invoice documents in the workspace",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			defer ws.Close()

			refs, err := ws.invoices.ListDocuments(ws.root)
			if err != nil {
				return err
			}

			if len(refs) == 0 {
				fmt.Println("(no invoice documents found)")
				return nil
			}

			fmt.Printf("Workspace: %s\n\n", ws.root)
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				fmt.Printf("- %s  (%s)\n", r.Name, rel)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return c
}

func typesCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "types",
		Short: "List save types backed by a strategy in this workspace",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			defer ws.Close()

			for _, tag := range ws.registry.Types() {
				fmt.Printf("- %s\n", tag)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return c
}
