package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// ExportFile is a rendered report ready to be sent as an attachment
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

var contentTypes = map[string]string{
	FormatCSV:  "text/csv",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
}

type ExportService struct {
	reportSvc *ReportService
}

func NewExportService(reportSvc *ReportService) *ExportService {
	return &ExportService{reportSvc: reportSvc}
}

// ExportDebtors renders the debtors list as csv, xlsx or pdf
func (s *ExportService) ExportDebtors(ctx context.Context, minDebt int64, format string) (*ExportFile, error) {
	debtors, err := s.reportSvc.GetDebtors(ctx, minDebt)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatCSV:
		data, err = debtorsCSV(debtors)
	case FormatXLSX:
		data, err = debtorsXLSX(debtors)
	case FormatPDF:
		data, err = debtorsPDF(debtors, minDebt)
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", ErrInvalidInput, format)
	}
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Data:        data,
		Filename:    fmt.Sprintf("debtors_%s.%s", time.Now().Format("2006-01-02"), format),
		ContentType: contentTypes[format],
	}, nil
}

// ExportGroupCharges renders a group's monthly charges as an xlsx workbook
func (s *ExportService) ExportGroupCharges(ctx context.Context, groupID uuid.UUID, year, month int) (*ExportFile, error) {
	report, err := s.reportSvc.GetGroupCharges(ctx, groupID, year, month)
	if err != nil {
		return nil, err
	}

	data, err := groupChargesXLSX(report)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Data:        data,
		Filename:    fmt.Sprintf("group_charges_%04d-%02d.xlsx", year, month),
		ContentType: contentTypes[FormatXLSX],
	}, nil
}

func debtorsCSV(debtors []models.Debtor) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"Student ID", "Student", "Phone", "Group", "Months", "Group Debt", "Total Debt", "Total Debt (rounded)"}); err != nil {
		return nil, err
	}
	for _, d := range debtors {
		for _, g := range d.Groups {
			record := []string{
				d.StudentID.String(),
				d.StudentName,
				d.Phone,
				g.GroupName,
				strconv.Itoa(g.Months),
				strconv.FormatInt(g.Debt, 10),
				strconv.FormatInt(d.TotalDebt, 10),
				strconv.FormatInt(d.TotalDebtRounded, 10),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func debtorsXLSX(debtors []models.Debtor) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Debtors"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []interface{}{"Student", "Phone", "Groups", "Total Debt", "Total Debt (rounded)"}
	_ = f.SetSheetRow(sheet, "A1", &headers)
	_ = f.SetCellStyle(sheet, "A1", "E1", headerStyle)

	var total int64
	for i, d := range debtors {
		groups := ""
		for j, g := range d.Groups {
			if j > 0 {
				groups += ", "
			}
			groups += fmt.Sprintf("%s (%d)", g.GroupName, g.Debt)
		}
		row := []interface{}{d.StudentName, d.Phone, groups, d.TotalDebt, d.TotalDebtRounded}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheet, cell, &row)
		total += d.TotalDebt
	}

	totalRow := []interface{}{"Total", "", "", total}
	cell, _ := excelize.CoordinatesToCellName(1, len(debtors)+2)
	_ = f.SetSheetRow(sheet, cell, &totalRow)
	_ = f.SetColWidth(sheet, "A", "C", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func debtorsPDF(debtors []models.Debtor, minDebt int64) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Debtors")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 8, fmt.Sprintf("Generated %s, minimum debt %d", time.Now().Format("2006-01-02 15:04"), minDebt))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 8, "Student", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Phone", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Debt", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Rounded", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	var total int64
	for _, d := range debtors {
		pdf.CellFormat(70, 7, tr(d.StudentName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, d.Phone, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, strconv.FormatInt(d.TotalDebt, 10), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, strconv.FormatInt(d.TotalDebtRounded, 10), "1", 1, "R", false, 0, "")
		total += d.TotalDebt
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(110, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, strconv.FormatInt(total, 10), "1", 1, "R", false, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func groupChargesXLSX(report *models.GroupChargesReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%04d-%02d", report.Year, report.Month)
	_ = f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("%s, %04d-%02d", report.GroupName, report.Year, report.Month))
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	headers := []interface{}{"Student", "Lessons", "Amount Due", "Discount", "Net", "Paid", "Debt", "Status"}
	_ = f.SetSheetRow(sheet, "A3", &headers)
	_ = f.SetCellStyle(sheet, "A3", "H3", headerStyle)

	for i, line := range report.Lines {
		row := []interface{}{line.StudentName, line.Lessons, line.AmountDue, line.Discount, line.Net, line.Paid, line.Debt, line.Status}
		cell, _ := excelize.CoordinatesToCellName(1, i+4)
		_ = f.SetSheetRow(sheet, cell, &row)
	}

	t := report.Totals
	totals := []interface{}{"Total", "", t.AmountDue, t.Discount, t.Net, t.Paid, t.Debt, ""}
	cell, _ := excelize.CoordinatesToCellName(1, len(report.Lines)+4)
	_ = f.SetSheetRow(sheet, cell, &totals)
	_ = f.SetColWidth(sheet, "A", "A", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
