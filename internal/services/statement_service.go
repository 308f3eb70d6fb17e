package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/google/uuid"
)

//go:embed templates/statement.html
var statementTemplate string

var statementFuncs = template.FuncMap{
	"money":  formatMoney,
	"period": func(year, month int) string { return fmt.Sprintf("%04d-%02d", year, month) },
}

// StatementService renders a student's charge history as a PDF through wkhtmltopdf
type StatementService struct {
	reportSvc *ReportService
	tmpl      *template.Template
	render    func(html []byte) ([]byte, error)
}

func NewStatementService(reportSvc *ReportService) *StatementService {
	return &StatementService{
		reportSvc: reportSvc,
		tmpl:      template.Must(template.New("statement").Funcs(statementFuncs).Parse(statementTemplate)),
		render:    htmlToPDF,
	}
}

type statementData struct {
	*models.StudentHistory
	GeneratedAt string
}

// RenderHTML fills the statement template for a student
func (s *StatementService) RenderHTML(ctx context.Context, studentID uuid.UUID) ([]byte, error) {
	history, err := s.reportSvc.GetStudentHistory(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	data := statementData{StudentHistory: history, GeneratedAt: time.Now().Format("2006-01-02 15:04")}
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateStatementPDF renders the statement and converts it to PDF
func (s *StatementService) GenerateStatementPDF(ctx context.Context, studentID uuid.UUID) (*ExportFile, error) {
	html, err := s.RenderHTML(ctx, studentID)
	if err != nil {
		return nil, err
	}

	pdf, err := s.render(html)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Data:        pdf,
		Filename:    fmt.Sprintf("statement_%s_%s.pdf", studentID, time.Now().Format("2006-01-02")),
		ContentType: contentTypes[FormatPDF],
	}, nil
}

func htmlToPDF(html []byte) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.Encoding.Set("utf-8")
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}
	return pdfg.Bytes(), nil
}

// formatMoney groups thousands with spaces: 1250000 -> "1 250 000"
func formatMoney(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	sign := ""
	if amount < 0 {
		sign, s = "-", s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	return sign + string(out)
}
