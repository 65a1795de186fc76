package export

import (
	"fmt"

	"Mansoor88-6/time-tracking-api/internal/report"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

const gridColumns = 12

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Format() string      { return "pdf" }
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Render(table report.Table) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(15, 10, 15)

	m.Row(12, func() {
		m.Col(12, func() {
			m.Text(table.Title, props.Text{
				Top:   3,
				Style: consts.Bold,
				Align: consts.Center,
				Size:  14,
			})
		})
	})

	grid := gridSizes(len(table.Header))
	m.TableList(table.Header, table.Rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      9,
			GridSizes: grid,
		},
		ContentProp: props.TableListContent{
			Size:      8,
			GridSizes: grid,
		},
		Align:                consts.Left,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
		Line:                 false,
	})

	out, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return out.Bytes(), nil
}

// gridSizes spreads the 12 grid columns across n table columns, giving
// the leftover width to the leading columns. Nil lets maroto split
// evenly when there are more columns than grid slots.
func gridSizes(n int) []uint {
	if n == 0 || n > gridColumns {
		return nil
	}
	sizes := make([]uint, n)
	base := gridColumns / n
	extra := gridColumns % n
	for i := range sizes {
		sizes[i] = uint(base)
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}
