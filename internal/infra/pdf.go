package infra

// Purchase order documents rendered with go-pdf/fpdf: A4 portrait, header
// with order id and status, supplier block, item table, bold total.
// The output file is saved to storagePath/po_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"pcxpress/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GeneratePurchaseOrderPDF renders a purchase order document and returns the
// absolute path to the generated file. storagePath is created if needed.
func GeneratePurchaseOrderPDF(po *model.PurchaseOrder, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("po_%s.pdf", po.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Purchase Order", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Order %s", po.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Status: %s", po.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Created: "+po.CreatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Supplier block ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Supplier", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if po.Supplier != nil {
		pdf.CellFormat(contentW, 5, po.Supplier.Name, "", 1, "L", false, 0, "")
		if po.Supplier.Email != nil {
			pdf.CellFormat(contentW, 5, *po.Supplier.Email, "", 1, "L", false, 0, "")
		}
		if po.Supplier.Phone != nil {
			pdf.CellFormat(contentW, 5, *po.Supplier.Phone, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(3)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Items table ──────────────────────────────────────────────────────────
	col1 := contentW * 0.14 // code
	col2 := contentW * 0.40 // name
	col3 := contentW * 0.14 // requested
	col4 := contentW * 0.14 // unit price
	col5 := contentW * 0.18 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Code", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 6, "Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range po.Items {
		code, name := "", ""
		if item.Product != nil {
			code = item.Product.Code
			name = item.Product.Name
		}
		if len(name) > 38 {
			name = name[:37] + "…"
		}
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.QuantityRequested)))
		pdf.CellFormat(col1, 6, code, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("x%d", item.QuantityRequested), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, "$"+lineTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3+col4, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, "$"+po.TotalValue.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Notes ────────────────────────────────────────────────────────────────
	if po.Notes != nil && *po.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, "Notes: "+*po.Notes, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
