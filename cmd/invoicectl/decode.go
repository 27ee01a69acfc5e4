package main

import (
	"petcare-billing-service/internal/app/services/core/invoices"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [resource-file]",
	Short: "Decode a FHIR Invoice resource into a canonical invoice",
	Example: `  invoicectl decode invoice.fhir.json
  curl -s $FHIR_BASE_URL/Invoice/123 | invoicectl decode`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	usecase := invoices.NewInvoiceUsecase(nil, nil, nil, app.Log)
	invoice, err := usecase.ParseResource(raw)
	if err != nil {
		return err
	}
	return writeOutput(cmd, invoice)
}
