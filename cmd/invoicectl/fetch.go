package main

import (
	"errors"
	"petcare-billing-service/internal/app/services/core/invoices"
	fhirInvoices "petcare-billing-service/internal/app/services/fhir_spark/invoices"
	"petcare-billing-service/internal/pkg/utils"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [invoice-id]",
	Short: "Read invoices from the FHIR server as canonical invoices",
	Example: `  invoicectl fetch 3f1c2a
  invoicectl fetch --appointment appt-42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().String("appointment", "", "List every invoice billed for this appointment id")
}

func runFetch(cmd *cobra.Command, args []string) error {
	appointmentID, _ := cmd.Flags().GetString("appointment")
	if len(args) == 0 && appointmentID == "" {
		return errors.New("either an invoice id or --appointment is required")
	}

	fhirClient := fhirInvoices.NewInvoiceFhirClient(
		app.InternalConfig.FHIR.BaseUrl,
		app.InternalConfig.FHIR.RequestTimeout(),
		app.Log,
	)
	usecase := invoices.NewInvoiceUsecase(fhirClient, nil, nil, app.Log)
	ctx := utils.WithRequestID(cmd.Context())

	if appointmentID != "" {
		found, err := usecase.SearchByAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		return writeOutput(cmd, found)
	}

	invoice, err := usecase.Fetch(ctx, args[0])
	if err != nil {
		return err
	}
	return writeOutput(cmd, invoice)
}
