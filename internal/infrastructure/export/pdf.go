// Package export renders the bilingual translation PDF handed out to
// caseworkers and families.
package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// TranslationPDF implements ports.PDFRenderer with maroto.
type TranslationPDF struct{}

func NewTranslationPDF() *TranslationPDF {
	return &TranslationPDF{}
}

// RenderTranslation produces a PDF with the original text and its
// translation. Generation is in-memory; the caller owns storing the bytes.
// RTL targets (AR, FA) would need dedicated fonts; the default font is kept
// for now, matching what the organizations print today.
func (t *TranslationPDF) RenderTranslation(original, translated, targetLang string) ([]byte, error) {
	m := maroto.New(config.NewBuilder().Build())

	m.AddRows(text.NewRow(14, "Übersetzung des Jugendhilfe-Berichts", props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))

	m.AddRows(text.NewRow(10, "Original (Deutsch):", props.Text{
		Size:  12,
		Style: fontstyle.Bold,
		Top:   4,
	}))
	m.AddAutoRow(text.NewCol(12, original, props.Text{Size: 10}))

	m.AddRows(text.NewRow(10, fmt.Sprintf("Übersetzung (%s):", targetLang), props.Text{
		Size:  12,
		Style: fontstyle.Bold,
		Top:   4,
	}))
	m.AddAutoRow(text.NewCol(12, translated, props.Text{Size: 10}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("export: generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}
