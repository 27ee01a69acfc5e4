package main

import (
	"petcare-billing-service/internal/app/models"
	"petcare-billing-service/internal/app/services/core/invoices"
	"petcare-billing-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [invoice-file]",
	Short: "Encode a canonical invoice as a FHIR Invoice resource",
	Example: `  invoicectl encode invoice.json
  cat invoice.json | invoicectl encode -o invoice.fhir.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	var invoice models.Invoice
	if err := json.Unmarshal(raw, &invoice); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}

	// encode and decode never leave the process
	usecase := invoices.NewInvoiceUsecase(nil, nil, nil, app.Log)
	resource, err := usecase.EncodeResource(&invoice)
	if err != nil {
		return err
	}
	return writeOutput(cmd, resource)
}
