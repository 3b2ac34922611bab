package config

import (
	"encoding/json"
	"os"
	"strconv"
)

type Config struct {
	Invoice InvoiceConfig `json:"invoice"`
	PDF     PDFConfig     `json:"pdf"`
	Logging LoggingConfig `json:"logging"`
}

type InvoiceConfig struct {
	CurrencySymbol        string `json:"currency_symbol"`
	CurrencyCode          string `json:"currency_code"`
	DateFormat            string `json:"date_format"`
	DateTimeFormat        string `json:"date_time_format"`
	FallbackOrgName       string `json:"fallback_org_name"`
	FallbackPlaceOfSupply string `json:"fallback_place_of_supply"`
	DurationLabel         string `json:"duration_label"`
}

type PDFConfig struct {
	PaperSize   string             `json:"paper_size"`
	Orientation string             `json:"orientation"`
	Margins     map[string]float64 `json:"margins"`
	Compress    bool               `json:"compress"`
	ShowQR      bool               `json:"show_qr"`
	ShowBarcode bool               `json:"show_barcode"`
}

type LoggingConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

func LoadConfig(path string) (*Config, error) {
	// Start with default config
	config := getDefaultConfig()

	// Override with environment variables if they exist
	loadFromEnvironment(config)

	// Try to load from file if it exists
	file, err := os.Open(path)
	if err == nil {
		defer file.Close()
		decoder := json.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, err
		}
		// Override again with environment variables to give them priority
		loadFromEnvironment(config)
	}

	return config, nil
}

func (c *Config) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(c)
}

func getDefaultConfig() *Config {
	return &Config{
		Invoice: InvoiceConfig{
			CurrencySymbol:        "₹",
			CurrencyCode:          "INR",
			DateFormat:            "02/01/2006",
			DateTimeFormat:        "02/01/2006 03:04 PM",
			FallbackOrgName:       "AIRFIT",
			FallbackPlaceOfSupply: "Karnataka",
			DurationLabel:         "1 Month",
		},
		PDF: PDFConfig{
			PaperSize:   "A4",
			Orientation: "P",
			Margins: map[string]float64{
				"top":    10,
				"bottom": 10,
				"left":   10,
				"right":  10,
			},
			Compress:    true,
			ShowQR:      false,
			ShowBarcode: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// loadFromEnvironment loads configuration from environment variables
func loadFromEnvironment(config *Config) {
	// Invoice configuration
	if symbol := os.Getenv("CURRENCY_SYMBOL"); symbol != "" {
		config.Invoice.CurrencySymbol = symbol
	}
	if code := os.Getenv("CURRENCY_CODE"); code != "" {
		config.Invoice.CurrencyCode = code
	}
	if format := os.Getenv("DATE_FORMAT"); format != "" {
		config.Invoice.DateFormat = format
	}
	if format := os.Getenv("DATE_TIME_FORMAT"); format != "" {
		config.Invoice.DateTimeFormat = format
	}
	if label := os.Getenv("DURATION_LABEL"); label != "" {
		config.Invoice.DurationLabel = label
	}
	if orgName := os.Getenv("FALLBACK_ORG_NAME"); orgName != "" {
		config.Invoice.FallbackOrgName = orgName
	}
	if region := os.Getenv("FALLBACK_PLACE_OF_SUPPLY"); region != "" {
		config.Invoice.FallbackPlaceOfSupply = region
	}

	// PDF configuration
	if size := os.Getenv("PDF_PAPER_SIZE"); size != "" {
		config.PDF.PaperSize = size
	}
	if compress := os.Getenv("PDF_COMPRESS"); compress != "" {
		config.PDF.Compress = compress == "true"
	}
	if showQR := os.Getenv("PDF_SHOW_QR"); showQR != "" {
		config.PDF.ShowQR = showQR == "true"
	}
	if showBarcode := os.Getenv("PDF_SHOW_BARCODE"); showBarcode != "" {
		config.PDF.ShowBarcode = showBarcode == "true"
	}
	if margin := os.Getenv("PDF_MARGIN"); margin != "" {
		if m, err := strconv.ParseFloat(margin, 64); err == nil {
			for _, side := range []string{"top", "bottom", "left", "right"} {
				config.PDF.Margins[side] = m
			}
		}
	}

	// Logging configuration
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if file := os.Getenv("LOG_FILE"); file != "" {
		config.Logging.File = file
	}
}
