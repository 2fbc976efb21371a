package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmdatafocus/vendor_briefing/models"
	"github.com/mmdatafocus/vendor_briefing/utils"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary    = "Summary"
	SheetEngineers  = "Engineers"
	SheetChecklists = "Checklists"
	SheetQuestions  = "Questions"
)

// ExcelExporter is one spreadsheet row.
type ExcelExporter interface {
	GetCellValues() []interface{}
}

type summaryRow struct {
	Field string
	Value interface{}
}

func (r summaryRow) GetCellValues() []interface{} {
	return []interface{}{r.Field, r.Value}
}

type engineerRow struct {
	No   int
	Name string
	Role string
}

func (r engineerRow) GetCellValues() []interface{} {
	return []interface{}{r.No, r.Name, r.Role}
}

type checklistRow struct {
	Group       string
	Item        string
	Description string
	Checked     bool
}

func (r checklistRow) GetCellValues() []interface{} {
	return []interface{}{r.Group, r.Item, r.Description, r.Checked}
}

type questionRow struct {
	PageID    string
	PageTitle string
	Question  string
	Kind      models.QuestionKind
	Options   string
	Answer    string
}

func (r questionRow) GetCellValues() []interface{} {
	return []interface{}{r.PageID, r.PageTitle, r.Question, string(r.Kind), r.Options, r.Answer}
}

// WriteWorkbook writes the record as a workbook with one sheet per concern.
func WriteWorkbook(w io.Writer, rec *models.ChecklistRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sheets := []struct {
		name     string
		headings []string
		rows     []ExcelExporter
	}{
		{SheetSummary, []string{"Field", "Value"}, summaryRows(rec)},
		{SheetEngineers, []string{"No.", "Name", "Role"}, engineerRows(rec)},
		{SheetChecklists, []string{"Group", "Item", "Description", "Checked"}, checklistRows(rec)},
		{SheetQuestions, []string{"Page ID", "Page Title", "Question", "Kind", "Options", "Answer"}, questionRows(rec)},
	}
	for _, sheet := range sheets {
		if sheet.name != SheetSummary {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return err
			}
		}
		if err := writeSheet(f, sheet.name, headerStyle, sheet.rows, sheet.headings...); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet.name, err)
		}
	}
	return f.Write(w)
}

func writeSheet(f *excelize.File, sheetName string, headerStyle int, data []ExcelExporter, headings ...string) error {
	// Add headers
	for i, h := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	if len(headings) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headings), 1)
		if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	// Add data
	for rowNo, d := range data {
		for i, value := range d.GetCellValues() {
			cell, err := excelize.CoordinatesToCellName(i+1, rowNo+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func summaryRows(rec *models.ChecklistRecord) []ExcelExporter {
	return []ExcelExporter{
		summaryRow{"Vendor Name", rec.VendorName},
		summaryRow{"Equipment", rec.Equipment},
		summaryRow{"MCM/SIM-T No.", rec.ReferenceNumber},
		summaryRow{"Job Description", rec.JobDescription},
		summaryRow{"Date of Visit", rec.VisitDate.Format("2006-01-02")},
		summaryRow{"Pre-Brief", rec.PreBrief},
		summaryRow{"Post-Brief", rec.PostBrief},
		summaryRow{"Signature Method", string(rec.Signature.Method)},
		summaryRow{"Signed", len(rec.Signature.ImageData) > 0},
	}
}

func engineerRows(rec *models.ChecklistRecord) []ExcelExporter {
	rows := make([]ExcelExporter, 0, len(rec.Engineers))
	for i, e := range rec.Engineers {
		rows = append(rows, engineerRow{No: i + 1, Name: e.Name, Role: e.Role})
	}
	return rows
}

func checklistRows(rec *models.ChecklistRecord) []ExcelExporter {
	var rows []ExcelExporter
	for _, group := range models.ChecklistCatalog {
		for _, item := range group.Items {
			checked, _ := rec.Checklists.Flag(group.Key, item.Key)
			rows = append(rows, checklistRow{
				Group:       group.Title,
				Item:        item.Label,
				Description: item.Description,
				Checked:     checked,
			})
		}
	}
	return rows
}

func questionRows(rec *models.ChecklistRecord) []ExcelExporter {
	var rows []ExcelExporter
	for _, page := range rec.AdditionalPages {
		for _, q := range page.Questions {
			rows = append(rows, questionRow{
				PageID:    page.ID,
				PageTitle: page.Title,
				Question:  q.Text,
				Kind:      q.Kind,
				Options:   strings.Join(q.Options, ", "),
				Answer:    answerText(q),
			})
		}
	}
	return rows
}

func answerText(q models.Question) string {
	a := utils.DereferencePtr(q.Answer)
	switch q.Kind {
	case models.QuestionKindText:
		return a.Text
	case models.QuestionKindCheckbox, models.QuestionKindRadio:
		return strings.Join(a.Selected, ", ")
	}
	return ""
}
