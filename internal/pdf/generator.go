package pdf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/salesdesk/order-intake/internal/catalog"
	"github.com/salesdesk/order-intake/internal/entity"
)

// Generator renders order confirmation PDFs. Prices and descriptions come
// from the catalog index; unresolved skus render with a zero price.
type Generator struct {
	outputDir string
	index     *catalog.Index
	logger    *slog.Logger
}

func NewGenerator(outputDir string, index *catalog.Index, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{outputDir: outputDir, index: index, logger: logger}
}

// Render writes <outputDir>/<orderID>.pdf and returns its path.
func (g *Generator) Render(order *entity.Order) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	outPath := filepath.Join(g.outputDir, order.OrderID.String()+".pdf")

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Sales Order Confirmation", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Sales Order Confirmation")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, "Order ID: "+order.OrderID.String())
	doc.Ln(6)
	doc.Cell(0, 6, "Processed: "+order.Meta.ProcessedAt.Format("2006-01-02"))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Overall confidence: %.1f%%", order.OverallConfidence*100))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 6, "Customer")
	doc.Ln(6)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, order.Customer.Name)
	doc.Ln(6)
	doc.MultiCell(0, 6, order.Customer.Address, "", "L", false)
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 6, "Delivery")
	doc.Ln(6)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, "Date: "+order.Delivery.Date)
	doc.Ln(6)
	doc.MultiCell(0, 6, "Address: "+order.Delivery.Address, "", "L", false)
	doc.Ln(4)

	g.itemsTable(doc, order)
	g.notes(doc, order)

	if err := doc.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("write pdf %s: %w", outPath, err)
	}
	g.logger.Debug("pdf rendered", "order_id", order.OrderID, "path", outPath)
	return outPath, nil
}

func (g *Generator) itemsTable(doc *fpdf.Fpdf, order *entity.Order) {
	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 6, "Items")
	doc.Ln(7)

	widths := []float64{35, 80, 15, 25, 25}
	headers := []string{"SKU", "Description", "Qty", "Unit Price", "Total"}
	doc.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		doc.CellFormat(widths[i], 6, h, "1", 0, "L", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	grandTotal := 0.0
	for _, item := range order.Items {
		desc := ""
		price := 0.0
		if entry, ok := g.index.ExactLookup(item.SKU); ok {
			desc = entry.Description
			price = entry.Price
		}
		lineTotal := price * float64(item.Quantity)
		grandTotal += lineTotal

		doc.CellFormat(widths[0], 6, item.SKU, "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[1], 6, desc, "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[2], 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", price), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", lineTotal), "1", 0, "R", false, 0, "")
		doc.Ln(-1)
	}

	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 6, "Grand Total", "1", 0, "R", false, 0, "")
	doc.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", grandTotal), "1", 0, "R", false, 0, "")
	doc.Ln(10)
}

// notes prints per-item issues and suggestions so a reviewer sees the triage
// state on the document itself.
func (g *Generator) notes(doc *fpdf.Fpdf, order *entity.Order) {
	hasNotes := false
	for _, item := range order.Items {
		if len(item.Issues) > 0 || len(item.Suggestions) > 0 {
			hasNotes = true
			break
		}
	}
	if !hasNotes {
		return
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 6, "Review Notes")
	doc.Ln(7)
	doc.SetFont("Helvetica", "", 9)
	for _, item := range order.Items {
		for _, issue := range item.Issues {
			doc.MultiCell(0, 5, fmt.Sprintf("[%s] %s", item.SKU, issue), "", "L", false)
		}
		for _, s := range item.Suggestions {
			doc.MultiCell(0, 5, fmt.Sprintf("[%s] %s", item.SKU, s), "", "L", false)
		}
	}
}
