package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"bizadmin/internal/domain"
	"bizadmin/internal/models"
	"bizadmin/internal/resource"
	"bizadmin/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders estimates as PDF documents.
type DocsService struct {
	Registry  *resource.Registry
	Store     RecordStore
	RequestID string
	Loader    func(ctx context.Context, id int64) (estimateDoc, error)
}

type estimateDoc struct {
	ID            int64
	Number        string
	Title         string
	CustomerName  string
	CustomerEmail string
	Status        string
	Currency      string
	Items         []models.EstimateItem
	Subtotal      float64
	Tax           float64
	Total         float64
	IssuedAt      string
	ValidUntil    string
	Notes         string
}

// EstimatePDF returns the PDF bytes and a download filename.
func (s DocsService) EstimatePDF(ctx context.Context, id int64) ([]byte, string, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, name, err := buildEstimatePDF(doc)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render document", Err: err}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_estimate", fmt.Sprintf("estimate_id=%d bytes=%d", id, len(out)))
	return out, name, nil
}

func (s DocsService) load(ctx context.Context, id int64) (estimateDoc, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	d, err := s.Registry.Descriptor(models.Estimate{}.Table())
	if err != nil {
		return estimateDoc{}, err
	}
	store := s.Store
	if store == nil {
		store = ResourceService{}.store()
	}
	rec, err := store.FindByID(ctx, d, id)
	if err != nil {
		return estimateDoc{}, err
	}
	return estimateFromRecord(rec), nil
}

func estimateFromRecord(rec domain.Record) estimateDoc {
	doc := estimateDoc{
		ID:            int64(asFloat(rec["id"])),
		Number:        asString(rec["number"]),
		Title:         asString(rec["title"]),
		CustomerName:  asString(rec["customer_name"]),
		CustomerEmail: asString(rec["customer_email"]),
		Status:        asString(rec["status"]),
		Currency:      asString(rec["currency"]),
		Subtotal:      asFloat(rec["subtotal"]),
		Tax:           asFloat(rec["tax"]),
		Total:         asFloat(rec["total"]),
		IssuedAt:      utils.DateOnly(rec["issued_at"]),
		ValidUntil:    utils.DateOnly(rec["valid_until"]),
		Notes:         asString(rec["notes"]),
	}
	if raw := asString(rec["items"]); raw != "" {
		// malformed items render as an empty table
		_ = json.Unmarshal([]byte(raw), &doc.Items)
	}
	if doc.Subtotal == 0 {
		for _, it := range doc.Items {
			doc.Subtotal += it.Amount()
		}
	}
	if doc.Total == 0 {
		doc.Total = doc.Subtotal + doc.Tax
	}
	return doc
}

func buildEstimatePDF(d estimateDoc) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Estimate "+d.Number, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ESTIMATE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Number      : %s", safe(d.Number, "-")),
		fmt.Sprintf("Title       : %s", safe(d.Title, "-")),
		fmt.Sprintf("Status      : %s", safe(strings.ToUpper(d.Status), "-")),
		fmt.Sprintf("Issued      : %s", safe(d.IssuedAt, "-")),
		fmt.Sprintf("Valid until : %s", safe(d.ValidUntil, "-")),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Prepared for:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, safe(d.CustomerName, "-"))
	pdf.Ln(7)
	if strings.TrimSpace(d.CustomerEmail) != "" {
		pdf.Cell(0, 7, d.CustomerEmail)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Unit price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if len(d.Items) == 0 {
		pdf.CellFormat(190, 8, "No line items", "1", 1, "C", false, 0, "")
	}
	for _, it := range d.Items {
		pdf.CellFormat(95, 8, safe(it.Description, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, strconv.FormatFloat(it.Quantity, 'f', -1, 64), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, utils.FormatAmount("", it.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, utils.FormatAmount("", it.Amount()), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	totals := [][2]string{
		{"Subtotal", utils.FormatAmount(d.Currency, d.Subtotal)},
		{"Tax", utils.FormatAmount(d.Currency, d.Tax)},
	}
	for _, row := range totals {
		pdf.CellFormat(155, 7, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, row[1], "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(155, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, utils.FormatAmount(d.Currency, d.Total), "", 1, "R", false, 0, "")

	if strings.TrimSpace(d.Notes) != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Notes: "+d.Notes, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ESTIMATE_%s.pdf", utils.SafeFilenamePart(safe(d.Number, strconv.FormatInt(d.ID, 10))))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case int64:
		return float64(t)
	case int:
		return float64(t)
	case float64:
		return t
	case string:
		f, _ := utils.ParseAmount(t)
		return f
	case []byte:
		f, _ := utils.ParseAmount(string(t))
		return f
	default:
		return 0
	}
}
