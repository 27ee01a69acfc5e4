package main

import (
	"fmt"
	"io"
	"os"
	"petcare-billing-service/internal/app/config"
	"petcare-billing-service/internal/app/drivers/logger"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "1.0.0"

type application struct {
	DriverConfig   *config.DriverConfig
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var app application

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Convert pet-care invoices to and from FHIR Invoice resources",
	Long: `invoicectl converts canonical pet-care invoices into FHIR Invoice
resources and back. It can also read invoices from a FHIR server and publish
new ones, archiving each document in object storage and announcing it on the
invoice queue.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		app.DriverConfig = config.NewDriverConfig()
		app.InternalConfig = config.NewInternalConfig()
		app.Log = logger.NewZapLogger(app.DriverConfig, app.InternalConfig)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = app.Log.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path (default: stdout)")
}

// readInput reads the document named by args[0], or stdin when no file or
// "-" is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

func writeOutput(cmd *cobra.Command, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	body = append(body, '\n')

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		_, err = cmd.OutOrStdout().Write(body)
		return err
	}
	return os.WriteFile(outputPath, body, 0o644)
}
