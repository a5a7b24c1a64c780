package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tbexpert/internal/models"
)

// Exporter — интерфейс (удобно мокать в тестах)
type Exporter interface {
	ExportChecklist(cl *models.Checklist, categoryLabel string) (string, error)
}

// ChecklistExporter — выгрузка чек-листа в PDF для печати.
type ChecklistExporter struct {
	RootDir  string // корень хранения, например "./files"
	FontPath string // путь до TTF с кириллицей
	fontName string
}

func NewChecklistExporter(rootDir, fontPath string) *ChecklistExporter {
	return &ChecklistExporter{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *ChecklistExporter) ExportChecklist(cl *models.Checklist, categoryLabel string) (string, error) {
	absPath, err := g.ensureTarget(fmt.Sprintf("checklist_%d.pdf", cl.ID))
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(cl.Title, true)
	pdf.SetAuthor("TB Expert", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addUTF8Font(pdf)
	pdf.AddPage()

	// ===== Заголовок
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "ЧЕК-ЛИСТ", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	pdf.CellFormat(0, 7, cl.Title, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	// ===== Реквизиты
	g.sectionTitle(pdf, "Сведения")
	g.kvLine(pdf, "Категория", categoryLabel)
	if !cl.ValidFrom.IsZero() {
		g.kvLine(pdf, "Действует с", cl.ValidFrom.Format("02.01.2006"))
	}
	g.kvLine(pdf, "Выгружен", time.Now().Format("02.01.2006"))
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Сценарий использования
	if cl.UseCase != "" {
		g.sectionTitle(pdf, "Когда применять")
		pdf.SetFont(g.fontName, "", 11)
		pdf.MultiCell(0, 6, cl.UseCase, "", "L", false)
		pdf.Ln(2)
		g.hr(pdf)
	}

	// ===== Отметка о проверке
	g.sectionTitle(pdf, "Отметка о проверке")
	pdf.Ln(6)

	lineY := pdf.GetY()
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(80, 6, "Проверку провёл", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(80, 6, "Дата", "", 1, "L", false, 0, "")

	pdf.SetLineWidth(0.3)
	pdf.Line(20, lineY+10, 100, lineY+10)
	pdf.SetY(lineY + 12)
	pdf.SetX(20)
	pdf.Cell(80, 5, "(подпись, ФИО)")
	pdf.SetY(lineY + 6)
	pdf.SetX(130)
	pdf.Line(130, lineY+10, 190, lineY+10)

	// ===== Нумерация страниц
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Стр. %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(filepath.Base(absPath)), nil
}

// ===== helpers =====

func (g *ChecklistExporter) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ChecklistExporter) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ChecklistExporter) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *ChecklistExporter) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // безопасность
	return filepath.Join(g.RootDir, filename), nil
}

func (g *ChecklistExporter) addUTF8Font(pdf *gofpdf.Fpdf) {
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}
