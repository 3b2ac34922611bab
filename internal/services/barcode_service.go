package services

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/skip2/go-qrcode"
)

// BarcodeService produces the PNG images embedded in rendered invoices.
// Both generators are pure functions of their input, so the images never
// break render determinism.
type BarcodeService struct{}

func NewBarcodeService() *BarcodeService {
	return &BarcodeService{}
}

func (s *BarcodeService) GenerateQRCode(data string, size int) ([]byte, error) {
	pngBytes, err := qrcode.Encode(data, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	return pngBytes, nil
}

// GenerateBarcode encodes data as a Code128 strip. The scaler emits 16-bit
// grayscale, which the PDF engine rejects, so the strip is redrawn onto an
// 8-bit canvas before PNG encoding. 300x60 pixels keeps the bars crisp at
// the 50x10 mm footer slot.
func (s *BarcodeService) GenerateBarcode(data string) ([]byte, error) {
	bc, err := code128.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode barcode: %w", err)
	}

	scaled, err := barcode.Scale(bc, 300, 60)
	if err != nil {
		return nil, fmt.Errorf("failed to scale barcode: %w", err)
	}

	strip := image.NewGray(scaled.Bounds())
	draw.Draw(strip, strip.Bounds(), scaled, scaled.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, strip); err != nil {
		return nil, fmt.Errorf("failed to encode barcode as PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// GenerateInvoiceQR produces the verification QR embedded in the invoice
// header. The payload is derived from the invoice number only, so the image
// is stable across renders of the same record.
func (s *BarcodeService) GenerateInvoiceQR(invoiceNumber string) ([]byte, error) {
	data := fmt.Sprintf("INVOICE:%s", invoiceNumber)
	return s.GenerateQRCode(data, 256)
}

// GenerateInvoiceBarcode produces the Code128 strip of the invoice number
// printed near the footer.
func (s *BarcodeService) GenerateInvoiceBarcode(invoiceNumber string) ([]byte, error) {
	return s.GenerateBarcode(invoiceNumber)
}
