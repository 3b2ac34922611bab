package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gym-invoicing/internal/config"
	"gym-invoicing/internal/logger"
	"gym-invoicing/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// PDFService renders a fully-populated invoice record into a finished PDF
// byte buffer. Rendering is a pure projection: the record is never mutated,
// nothing is looked up, and the only output is the returned buffer.
type PDFService struct {
	invoiceConfig *config.InvoiceConfig
	pdfConfig     *config.PDFConfig
	formatter     *Formatter
	barcodes      *BarcodeService
	logger        *logger.StructuredLogger

	marginLeft   float64
	marginTop    float64
	marginRight  float64
	marginBottom float64
}

func NewPDFService(invoiceConfig *config.InvoiceConfig, pdfConfig *config.PDFConfig, log *logger.StructuredLogger) *PDFService {
	if invoiceConfig == nil {
		invoiceConfig = &config.InvoiceConfig{}
	}
	if pdfConfig == nil {
		pdfConfig = &config.PDFConfig{Compress: true}
	}

	s := &PDFService{
		invoiceConfig: invoiceConfig,
		pdfConfig:     pdfConfig,
		formatter:     NewFormatter(invoiceConfig),
		barcodes:      NewBarcodeService(),
		logger:        log,
		marginLeft:    10,
		marginTop:     10,
		marginRight:   10,
		marginBottom:  10,
	}
	if m, ok := pdfConfig.Margins["left"]; ok {
		s.marginLeft = m
	}
	if m, ok := pdfConfig.Margins["top"]; ok {
		s.marginTop = m
	}
	if m, ok := pdfConfig.Margins["right"]; ok {
		s.marginRight = m
	}
	if m, ok := pdfConfig.Margins["bottom"]; ok {
		s.marginBottom = m
	}
	return s
}

// GenerateInvoicePDF renders the invoice and returns the complete document
// buffer. The section order is a contract: each section positions the next
// one through the running vertical cursor. On any engine error no partial
// buffer is returned.
func (s *PDFService) GenerateInvoicePDF(inv *models.Invoice) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("invoice cannot be nil")
	}
	if s.logger != nil {
		s.logger.Info("Generating invoice PDF", map[string]interface{}{"invoice_number": inv.InvoiceNumber})
	}

	pdf := gofpdf.New(s.orientation(), "mm", s.paperSize(), "")
	pdf.SetCompression(s.pdfConfig.Compress)
	pdf.SetCreationDate(s.creationDate(inv))
	pdf.SetModificationDate(s.creationDate(inv))
	pdf.SetMargins(s.marginLeft, s.marginTop, s.marginRight)
	pdf.SetAutoPageBreak(true, s.marginBottom)
	pdf.AddPage()
	tr := s.printableText(pdf.UnicodeTranslatorFromDescriptor(""))

	y := s.drawHeader(pdf, tr, inv)
	y = s.drawInfoColumns(pdf, tr, inv, y)
	y = s.drawItemsTable(pdf, tr, inv, y)
	y = s.drawSummary(pdf, tr, inv, y)
	y = s.drawTerms(pdf, tr, inv, y)
	s.drawFooter(pdf, tr, inv, y)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}

	pdfBytes := buf.Bytes()
	if len(pdfBytes) < 4 || string(pdfBytes[:4]) != "%PDF" {
		return nil, fmt.Errorf("renderer did not produce valid PDF content")
	}

	if s.logger != nil {
		s.logger.Info("Invoice PDF generated", map[string]interface{}{
			"invoice_number": inv.InvoiceNumber,
			"bytes":          len(pdfBytes),
		})
	}
	return pdfBytes, nil
}

// cp1252CurrencyFallbacks maps currency symbols the built-in fonts cannot
// encode to an ASCII form. Without this the translator degrades the rupee
// sign to a bare period on every amount.
var cp1252CurrencyFallbacks = map[string]string{
	"₹": "Rs.",
	"₨": "Rs.",
}

// printableText wraps the font translator so a configured currency symbol
// outside the cp1252 repertoire is substituted before translation.
func (s *PDFService) printableText(tr func(string) string) func(string) string {
	sym := s.formatter.CurrencySymbol()
	repl, ok := cp1252CurrencyFallbacks[sym]
	if !ok {
		return tr
	}
	return func(text string) string {
		return tr(strings.ReplaceAll(text, sym, repl))
	}
}

// creationDate pins the document creation and modification dates to the
// invoice's own timestamps so the same record always renders byte-identical
// output. The renderer never reads the clock.
func (s *PDFService) creationDate(inv *models.Invoice) time.Time {
	if !inv.CreatedAt.IsZero() {
		return inv.CreatedAt
	}
	if !inv.DateOfInvoice.IsZero() {
		return inv.DateOfInvoice
	}
	return time.Unix(0, 0).UTC()
}

func (s *PDFService) orientation() string {
	if s.pdfConfig.Orientation != "" {
		return s.pdfConfig.Orientation
	}
	return "P"
}

func (s *PDFService) paperSize() string {
	if s.pdfConfig.PaperSize != "" {
		return s.pdfConfig.PaperSize
	}
	return "A4"
}

func (s *PDFService) orgName(inv *models.Invoice) string {
	if inv.Organization.Name != "" {
		return inv.Organization.Name
	}
	if s.invoiceConfig.FallbackOrgName != "" {
		return s.invoiceConfig.FallbackOrgName
	}
	return "AIRFIT"
}

func (s *PDFService) placeOfSupply(inv *models.Invoice) string {
	fallback := s.invoiceConfig.FallbackPlaceOfSupply
	if fallback == "" {
		fallback = "Karnataka"
	}
	return inv.PlaceOfSupply(fallback)
}

func (s *PDFService) durationLabel() string {
	if s.invoiceConfig.DurationLabel != "" {
		return s.invoiceConfig.DurationLabel
	}
	return "1 Month"
}

func (s *PDFService) contentWidth(pdf *gofpdf.Fpdf) float64 {
	pageW, _ := pdf.GetPageSize()
	return pageW - s.marginLeft - s.marginRight
}

// breakIfNeeded starts a fresh page when the next block of the given height
// would cross the bottom margin, and returns the cursor to draw at.
func (s *PDFService) breakIfNeeded(pdf *gofpdf.Fpdf, y, needed float64) float64 {
	_, pageH := pdf.GetPageSize()
	if y+needed > pageH-s.marginBottom {
		pdf.AddPage()
		return s.marginTop
	}
	return y
}

// drawHeader paints the fixed-height brand band: logo placeholder,
// organization identity and the centered document title.
func (s *PDFService) drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, inv *models.Invoice) float64 {
	pageW, _ := pdf.GetPageSize()
	const bandHeight = 42.0

	pdf.SetFillColor(30, 41, 59)
	pdf.Rect(0, 0, pageW, bandHeight, "F")

	// Logo placeholder box
	pdf.SetDrawColor(255, 255, 255)
	pdf.SetTextColor(255, 255, 255)
	pdf.Rect(s.marginLeft, 8, 22, 22, "D")
	pdf.SetFont("Arial", "", 8)
	pdf.SetXY(s.marginLeft, 17)
	pdf.CellFormat(22, 4, "LOGO", "", 0, "C", false, 0, "")

	if s.pdfConfig.ShowQR {
		if qr, err := s.barcodes.GenerateInvoiceQR(inv.InvoiceNumber); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("invoice-qr", opts, bytes.NewReader(qr))
			pdf.ImageOptions("invoice-qr", pageW-s.marginRight-22, 8, 22, 22, false, opts, 0, "")
		} else if s.logger != nil {
			s.logger.Warn("Skipping invoice QR", map[string]interface{}{"error": err.Error()})
		}
	}

	pdf.SetFont("Arial", "B", 18)
	pdf.SetXY(s.marginLeft+26, 10)
	pdf.CellFormat(125, 8, tr(s.orgName(inv)), "", 0, "L", false, 0, "")

	if addr := inv.Organization.Address.String(); addr != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.SetXY(s.marginLeft+26, 19)
		pdf.CellFormat(125, 4, tr(addr), "", 0, "L", false, 0, "")
	}

	// Pro-forma invoices currently carry the same title; pending product
	// clarification.
	pdf.SetFont("Arial", "B", 13)
	pdf.SetXY(s.marginLeft, 31)
	pdf.CellFormat(s.contentWidth(pdf), 7, "Tax Invoice", "", 0, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return bandHeight + 6
}

// drawInfoColumns emits the customer identity on the left and the invoice
// metadata on the right. The columns advance independently; the section ends
// below the taller one.
func (s *PDFService) drawInfoColumns(pdf *gofpdf.Fpdf, tr func(string) string, inv *models.Invoice, y float64) float64 {
	const lineH = 5.0
	leftX := s.marginLeft
	rightX := 115.0
	leftY, rightY := y, y

	pdf.SetFont("Arial", "B", 10)
	pdf.SetXY(leftX, leftY)
	pdf.CellFormat(95, lineH, tr(inv.Member.DisplayName()), "", 0, "L", false, 0, "")
	leftY += lineH

	pdf.SetFont("Arial", "", 9)
	leftLines := make([]string, 0, 4)
	if inv.Member.Email != "" {
		leftLines = append(leftLines, inv.Member.Email)
	}
	if inv.Member.Phone != "" {
		leftLines = append(leftLines, inv.Member.Phone)
	}
	if inv.Member.AttendanceID != "" {
		leftLines = append(leftLines, "Member ID: "+inv.Member.AttendanceID)
	}
	leftLines = append(leftLines, "Place of Supply: "+s.placeOfSupply(inv))
	for _, line := range leftLines {
		pdf.SetXY(leftX, leftY)
		pdf.CellFormat(95, lineH, tr(line), "", 0, "L", false, 0, "")
		leftY += lineH
	}

	rightLines := make([]string, 0, 6)
	if inv.Type != "" {
		rightLines = append(rightLines, inv.FormattedType())
	}
	if !inv.CreatedAt.IsZero() {
		rightLines = append(rightLines, "Created: "+s.formatter.DateTime(inv.CreatedAt))
	}
	rightLines = append(rightLines, "Invoice No: "+inv.InvoiceNumber)
	if !inv.DateOfInvoice.IsZero() {
		rightLines = append(rightLines, "Invoice Date: "+s.formatter.Date(inv.DateOfInvoice))
	}
	if inv.CreatedBy != nil {
		rightLines = append(rightLines, "Created By: "+inv.CreatedBy.DisplayName())
	}
	if rep := inv.SalesRepName(); rep != "" {
		rightLines = append(rightLines, "Sales Rep: "+rep)
	}
	for _, line := range rightLines {
		pdf.SetXY(rightX, rightY)
		pdf.CellFormat(85, lineH, tr(line), "", 0, "L", false, 0, "")
		rightY += lineH
	}

	if leftY > rightY {
		return leftY + 6
	}
	return rightY + 6
}

// drawItemsTable renders the shaded header row and one fixed-height row per
// line item. Period and discount sub-lines share the same fixed advance, so
// a row carrying both can visually crowd; that matches the observed layout.
func (s *PDFService) drawItemsTable(pdf *gofpdf.Fpdf, tr func(string) string, inv *models.Invoice, y float64) float64 {
	const (
		rowH    = 16.0
		headerH = 8.0
		colDesc = 80.0
		colDur  = 35.0
		colQty  = 25.0
		colFee  = 50.0
	)
	x := s.marginLeft
	tableW := colDesc + colDur + colQty + colFee

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(233, 236, 239)
	pdf.SetDrawColor(173, 181, 189)
	pdf.SetXY(x, y)
	pdf.CellFormat(colDesc, headerH, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colDur, headerH, "Duration", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colQty, headerH, "Quantity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colFee, headerH, "Service Fee", "1", 0, "R", true, 0, "")
	y += headerH

	pdf.SetFont("Arial", "", 9)
	for _, item := range inv.Items {
		y = s.breakIfNeeded(pdf, y, rowH)

		pdf.SetXY(x, y+2)
		pdf.CellFormat(colDesc, 5, tr(item.DisplayDescription()), "", 0, "L", false, 0, "")
		if item.HasPeriod() {
			pdf.SetFont("Arial", "", 7)
			pdf.SetTextColor(108, 117, 125)
			pdf.SetXY(x, y+8)
			pdf.CellFormat(colDesc, 4, s.formatter.DateRange(*item.StartDate, *item.ExpiryDate), "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "", 9)
			pdf.SetTextColor(0, 0, 0)
		}

		pdf.SetXY(x+colDesc, y+2)
		pdf.CellFormat(colDur, 5, tr(s.durationLabel()), "", 0, "C", false, 0, "")
		pdf.SetXY(x+colDesc+colDur, y+2)
		pdf.CellFormat(colQty, 5, fmt.Sprintf("%g", item.EffectiveQuantity()), "", 0, "C", false, 0, "")

		feeX := x + colDesc + colDur + colQty
		if item.HasDiscount() {
			pdf.SetXY(feeX, y+2)
			pdf.CellFormat(colFee, 4, tr(s.formatter.Money(item.Amount)), "", 0, "R", false, 0, "")
			pdf.SetTextColor(220, 53, 69)
			pdf.SetXY(feeX, y+6)
			pdf.CellFormat(colFee, 4, tr("- "+s.formatter.Money(item.DiscountAmount())), "", 0, "R", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Arial", "B", 9)
			pdf.SetXY(feeX, y+10)
			pdf.CellFormat(colFee, 4, tr(s.formatter.Money(item.BaseFee())), "", 0, "R", false, 0, "")
			pdf.SetFont("Arial", "", 9)
		} else {
			pdf.SetXY(feeX, y+2)
			pdf.CellFormat(colFee, 5, tr(s.formatter.Money(item.BaseFee())), "", 0, "R", false, 0, "")
		}

		pdf.SetDrawColor(222, 226, 230)
		pdf.Line(x, y+rowH, x+tableW, y+rowH)
		y += rowH
	}

	return y + 6
}

// drawSummary renders the financial totals block on the right edge.
func (s *PDFService) drawSummary(pdf *gofpdf.Fpdf, tr func(string) string, inv *models.Invoice, y float64) float64 {
	const (
		labelW = 45.0
		valueW = 40.0
		lineH  = 6.0
	)
	pageW, _ := pdf.GetPageSize()
	valueRight := pageW - s.marginRight
	labelX := valueRight - valueW - labelW

	y = s.breakIfNeeded(pdf, y, 40)

	pdf.SetFont("Arial", "", 10)
	pdf.SetXY(labelX, y)
	pdf.CellFormat(labelW, lineH, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, lineH, tr(s.formatter.Money(inv.Subtotal)), "", 0, "R", false, 0, "")
	y += lineH

	if inv.HasTax() {
		pdf.SetXY(labelX, y)
		pdf.CellFormat(labelW, lineH, fmt.Sprintf("Tax (%s)", s.formatter.Rate(inv.Tax.Rate)), "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, lineH, tr(s.formatter.Money(inv.Tax.Amount)), "", 0, "R", false, 0, "")
		y += lineH
	}

	pdf.SetDrawColor(173, 181, 189)
	pdf.Line(labelX, y+1, valueRight, y+1)
	y += 3

	pdf.SetFont("Arial", "B", 12)
	pdf.SetXY(labelX, y)
	pdf.CellFormat(labelW, 8, "Total Due", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 8, tr(s.formatter.Money(inv.Total)), "", 0, "R", false, 0, "")
	y += 8

	pdf.SetFont("Arial", "", 10)
	pdf.SetXY(labelX, y)
	pdf.CellFormat(labelW, lineH, "Pending Amount", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, lineH, tr(s.formatter.Money(inv.Pending)), "", 0, "R", false, 0, "")
	y += lineH

	if code := s.invoiceConfig.CurrencyCode; code != "" {
		pdf.SetFont("Arial", "I", 7)
		pdf.SetTextColor(134, 142, 150)
		pdf.SetXY(labelX, y)
		pdf.CellFormat(labelW+valueW, 4, "All amounts in "+code, "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 4
	}

	return y + 8
}

// drawTerms renders the legal paragraphs and the shaded acknowledgment box.
func (s *PDFService) drawTerms(pdf *gofpdf.Fpdf, tr func(string) string, inv *models.Invoice, y float64) float64 {
	contentW := s.contentWidth(pdf)
	y = s.breakIfNeeded(pdf, y, 60)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetXY(s.marginLeft, y)
	pdf.CellFormat(contentW, 6, termsHeading, "", 0, "L", false, 0, "")
	y += 8

	paragraphs := []string{
		termsUpgradeRenewalPolicy,
		termsFreshMembershipPolicy,
		fmt.Sprintf(termsTransferPolicyFormat, s.orgName(inv)),
		termsCancellationPolicy,
	}

	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(73, 80, 87)
	for _, p := range paragraphs {
		pdf.SetXY(s.marginLeft, y)
		pdf.MultiCell(contentW, 3.5, tr(p), "", "L", false)
		y = pdf.GetY() + 2
	}

	pdf.SetFillColor(241, 243, 245)
	pdf.SetDrawColor(206, 212, 218)
	pdf.SetXY(s.marginLeft, y+2)
	pdf.MultiCell(contentW, 4, tr(termsAcknowledgment), "1", "L", true)
	y = pdf.GetY()

	pdf.SetTextColor(0, 0, 0)
	return y + 8
}

// drawFooter renders the contact line, thank-you line, disclaimer, the
// optional invoice-number barcode and the optional customer notes section.
func (s *PDFService) drawFooter(pdf *gofpdf.Fpdf, tr func(string) string, inv *models.Invoice, y float64) {
	pageW, _ := pdf.GetPageSize()
	contentW := s.contentWidth(pdf)
	y = s.breakIfNeeded(pdf, y, 36)

	pdf.SetDrawColor(173, 181, 189)
	pdf.Line(s.marginLeft, y, s.marginLeft+contentW, y)
	y += 4

	contactParts := make([]string, 0, 2)
	if inv.Organization.Email != "" {
		contactParts = append(contactParts, inv.Organization.Email)
	}
	if inv.Organization.Phone != "" {
		contactParts = append(contactParts, inv.Organization.Phone)
	}
	if len(contactParts) > 0 {
		pdf.SetFont("Arial", "", 8)
		pdf.SetXY(s.marginLeft, y)
		pdf.CellFormat(contentW, 4, tr(strings.Join(contactParts, ", ")), "", 0, "C", false, 0, "")
		y += 5
	}

	pdf.SetFont("Arial", "", 9)
	pdf.SetXY(s.marginLeft, y)
	pdf.CellFormat(contentW, 5, footerThankYou, "", 0, "C", false, 0, "")
	y += 5

	pdf.SetFont("Arial", "I", 7)
	pdf.SetTextColor(134, 142, 150)
	pdf.SetXY(s.marginLeft, y)
	pdf.CellFormat(contentW, 4, footerDisclaimer, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	y += 6

	if s.pdfConfig.ShowBarcode {
		if strip, err := s.barcodes.GenerateInvoiceBarcode(inv.InvoiceNumber); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("invoice-barcode", opts, bytes.NewReader(strip))
			pdf.ImageOptions("invoice-barcode", (pageW-50)/2, y, 50, 10, false, opts, 0, "")
			y += 12
		} else if s.logger != nil {
			s.logger.Warn("Skipping invoice barcode", map[string]interface{}{"error": err.Error()})
		}
	}

	if inv.CustomerNotes != "" {
		y = s.breakIfNeeded(pdf, y, 16)
		pdf.SetFont("Arial", "B", 9)
		pdf.SetXY(s.marginLeft, y)
		pdf.CellFormat(contentW, 5, customerNotesHeading, "", 0, "L", false, 0, "")
		y += 5

		pdf.SetFont("Arial", "", 8)
		pdf.SetXY(s.marginLeft, y)
		pdf.MultiCell(contentW, 4, tr(inv.CustomerNotes), "", "L", false)
	}
}
