package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/user/nanopore_analyzer_go/internal/features"
)

const (
	inchToMm        = 25.4
	pdfPageWidth    = 8.5 * inchToMm // Letter portrait
	pdfPageHeight   = 11 * inchToMm
	pdfMargin       = 0.5 * inchToMm
	pdfContentWidth = pdfPageWidth - (2 * pdfMargin)
	pdfLineHeight   = 6 // mm
)

// pdfStyler carries the document and named font styles.
type pdfStyler struct {
	pdf    *gofpdf.Fpdf
	styles map[string]func()
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{pdf: pdf, styles: make(map[string]func())}
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	return s
}

func (s *pdfStyler) applyStyle(name string) {
	if fn, ok := s.styles[name]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) writeParagraph(text, styleName, align string) {
	s.applyStyle(styleName)
	s.pdf.MultiCell(pdfContentWidth, pdfLineHeight, text, "", align, false)
	s.pdf.Ln(1)
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))
	if s.pdf.GetY()+height > pdfPageHeight-pdfMargin {
		s.pdf.AddPage()
	}
	s.pdf.Image(imageName, pdfMargin, s.pdf.GetY(), width, height, true, "PNG", 0, "")
	s.pdf.Ln(2)
}

// BuildPDFReport writes a summary report: a statistics table over the
// normalized feature columns plus one histogram per feature.
func BuildPDFReport(path string, summary []features.ColumnStats, numEvents int,
	rangeMin, rangeMax float64, plotImages map[string][]byte) error {

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph(fmt.Sprintf("Nanopore Event Feature Report (%d Events)", numEvents), "h1", "C")
	styler.writeParagraph(fmt.Sprintf("Features normalized to [%g, %g]", rangeMin, rangeMax), "normal", "L")
	pdf.Ln(3)

	styler.writeParagraph("Feature Summary", "h2", "L")
	headers := []string{"Feature", "Min", "Max", "Mean", "Std Dev"}
	colWidthsRel := []float64{0.28, 0.18, 0.18, 0.18, 0.18}

	styler.applyStyle("tableHeader")
	for i, header := range headers {
		pdf.CellFormat(colWidthsRel[i]*pdfContentWidth, pdfLineHeight, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	styler.applyStyle("tableCell")
	for _, stats := range summary {
		row := []string{
			stats.Name,
			fmt.Sprintf("%.3f", stats.Min),
			fmt.Sprintf("%.3f", stats.Max),
			fmt.Sprintf("%.3f", stats.Mean),
			fmt.Sprintf("%.3f", stats.StdDev),
		}
		for i, cell := range row {
			pdf.CellFormat(colWidthsRel[i]*pdfContentWidth, pdfLineHeight, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(5)

	styler.writeParagraph("Feature Distributions", "h2", "L")
	imgWidth := pdfContentWidth * 0.75
	imgHeight := imgWidth * (2.0 / 3.0)
	for _, name := range features.ColumnNames {
		imgBytes, ok := plotImages[name]
		if !ok || len(imgBytes) == 0 {
			styler.writeParagraph(fmt.Sprintf("Histogram for %s not available.", name), "normal", "L")
			continue
		}
		styler.addImage(imgBytes, name, imgWidth, imgHeight)
	}

	return pdf.OutputFileAndClose(path)
}
