package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gym-invoicing/internal/config"
	"gym-invoicing/internal/logger"
	"gym-invoicing/internal/models"
	"gym-invoicing/internal/services"

	"github.com/spf13/cobra"
)

var (
	configPath string
	inputPath  string
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:   "invoicegen",
	Short: "Render membership invoice records as PDF documents",
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one invoice record (JSON) to a PDF file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err := logger.NewStructuredLogger(logger.LoggerConfig{
			Level:       logger.ParseLevel(cfg.Logging.Level),
			Service:     "invoicegen",
			Version:     "1.0.0",
			Environment: os.Getenv("APP_ENV"),
			OutputPath:  cfg.Logging.File,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer log.Close()

		data, err := readInput(inputPath)
		if err != nil {
			return fmt.Errorf("failed to read invoice record: %w", err)
		}

		var inv models.Invoice
		if err := json.Unmarshal(data, &inv); err != nil {
			return fmt.Errorf("failed to parse invoice record: %w", err)
		}

		pdfService := services.NewPDFService(&cfg.Invoice, &cfg.PDF, log)
		pdfBytes, err := pdfService.GenerateInvoicePDF(&inv)
		if err != nil {
			return fmt.Errorf("failed to render invoice: %w", err)
		}

		if err := writeOutput(outputPath, pdfBytes); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}

		log.LogBusinessEvent("Invoice rendered", inv.InvoiceNumber, "render", map[string]interface{}{
			"output": outputPath,
			"bytes":  len(pdfBytes),
		})
		return nil
	},
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func init() {
	renderCmd.Flags().StringVarP(&inputPath, "input", "i", "-", "invoice record JSON file (- for stdin)")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "invoice.pdf", "PDF output file (- for stdout)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "configuration file")
	rootCmd.AddCommand(renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
