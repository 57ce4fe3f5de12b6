package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/nyaysathi/core/internal/adapters/repository"
	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/ports"
)

// NewContactsCommand creates the contacts command
func NewContactsCommand() *cobra.Command {
	contactsCmd := &cobra.Command{
		Use:   "contacts",
		Short: "Inspect the address book",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts as a table",
		Run: func(cmd *cobra.Command, args []string) {
			search, _ := cmd.Flags().GetString("search")
			limit, _ := cmd.Flags().GetInt("limit")

			_, db := openDatabase()
			defer db.Close()

			filter := ports.ContactFilter{Limit: limit}
			if search != "" {
				filter.Search = &search
			}
			contacts, err := repository.NewContactRepository(db.DB).List(context.Background(), filter)
			if err != nil {
				log.Fatalf("Failed to list contacts: %v", err)
			}
			writeContacts(cmd.OutOrStdout(), contacts)
		},
	}
	listCmd.Flags().String("search", "", "Substring of name, email or phone")
	listCmd.Flags().Int("limit", 50, "Maximum rows")

	contactsCmd.AddCommand(listCmd)
	return contactsCmd
}

// NewPdfsCommand creates the pdfs command
func NewPdfsCommand() *cobra.Command {
	pdfsCmd := &cobra.Command{
		Use:   "pdfs",
		Short: "Inspect stored documents",
	}

	pdfsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored PDFs as a table",
		Run: func(cmd *cobra.Command, args []string) {
			_, db := openDatabase()
			defer db.Close()

			pdfs, err := repository.NewPdfRepository(db.DB).List(context.Background())
			if err != nil {
				log.Fatalf("Failed to list pdfs: %v", err)
			}
			writePdfs(cmd.OutOrStdout(), pdfs)
		},
	})

	return pdfsCmd
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func writeContacts(w io.Writer, contacts []*entities.Contact) {
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{c.ID, c.Name, c.Email, c.Phone, optional(c.Address)})
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "Name", "Email", "Phone", "Address"}, rows))
}

func writePdfs(w io.Writer, pdfs []*entities.PdfMeta) {
	rows := make([][]string, 0, len(pdfs))
	for _, p := range pdfs {
		rows = append(rows, []string{p.ID, p.Filename, p.CreatedAt.Local().Format(time.DateTime)})
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "Filename", "Created"}, rows))
}
