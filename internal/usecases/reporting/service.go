package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/contracting"
	"github.com/vfg2006/academy-dashboard-api/internal/valuation"
	"github.com/vfg2006/academy-dashboard-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName     = "Relatório"
	title         = "Relatório de Pagamentos"
	maxNameLength = 30
)

// Report é o arquivo gerado para download
type Report struct {
	FileName string
	Content  []byte
	Summary  domain.PeriodSummary
}

type Reporter interface {
	ExportPeriod(ctx context.Context, filter domain.ContractFilter) (*Report, error)
}

type Service struct {
	contractService contracting.ContractService
	now             func() time.Time
}

func NewService(contractService contracting.ContractService) Reporter {
	return &Service{
		contractService: contractService,
		now:             time.Now,
	}
}

// ExportPeriod gera a planilha de pagamentos do período com o resumo e o detalhamento por cliente
func (s *Service) ExportPeriod(ctx context.Context, filter domain.ContractFilter) (*Report, error) {
	listing, err := s.contractService.ListByPeriod(ctx, filter)
	if err != nil {
		return nil, err
	}

	content, err := s.render(listing)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar relatório")
	}

	instructor := filter.Instructor
	if !listing.Period.Modality.HasInstructor() {
		instructor = nil
	}

	return &Report{
		FileName: FileName(listing.Period, instructor),
		Content:  content,
		Summary:  listing.Summary,
	}, nil
}

// FileName monta o nome do arquivo: {modalidade}_{mes}_{ano}.xlsx ou {modalidade}_{professor}_{mes}_{ano}.xlsx
func FileName(period domain.Period, instructor *domain.InstructorFilter) string {
	if instructor == nil {
		return fmt.Sprintf("%s_%s_%d.xlsx", period.Modality, period.Month, period.Year)
	}
	return fmt.Sprintf("%s_%s_%s_%d.xlsx", period.Modality, utils.Slugify(instructor.Label()), period.Month, period.Year)
}

type styles struct {
	title  int
	header int
	total  int
	footer int
}

func newStyles(f *excelize.File) (*styles, error) {
	var st styles
	var err error

	st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 18, Color: "1F77B4"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	st.total, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E7E6E6"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	st.footer, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 9, Color: "808080"},
	})
	if err != nil {
		return nil, err
	}

	return &st, nil
}

func (s *Service) render(listing *domain.ContractListResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f}

	w.set(1, title)
	w.style(1, 1, 4, st.title)
	w.merge(1, 1, 4)
	row := 3

	if listing.Period.Modality.HasInstructor() {
		w.set(row, "Professor:", listing.Instructor)
		row++
	}
	w.set(row, "Período:", listing.PeriodName)
	row += 2

	w.set(row, "Item", "Valor")
	w.style(row, 1, 2, st.header)
	w.set(row+1, "Total 50%", utils.FormatBRL(listing.Summary.TotalHalfShare))
	w.set(row+2, "Número de Registros", utils.FormatCount(listing.Summary.RecordCount))
	row += 4

	if len(listing.Contracts) > 0 {
		w.set(row, "Detalhamento por Cliente")
		row++

		w.set(row, "Nome do Cliente", "Início", "Vencimento", "Valor 50%")
		w.style(row, 1, 4, st.header)
		row++

		for _, contract := range listing.Contracts {
			w.set(row,
				utils.TruncateName(contract.FullName, maxNameLength),
				contract.StartDate,
				contract.DueDate,
				utils.FormatBRL(valuation.HalfShare(contract.MonthlyValue)),
			)
			row++
		}

		w.set(row, "TOTAL", "", "", utils.FormatBRL(listing.Summary.TotalHalfShare))
		w.style(row, 1, 4, st.total)
		row += 2
	}

	w.set(row, "Gerado em: "+utils.FormatTimestamp(s.now()))
	w.style(row, 1, 1, st.footer)

	if w.err != nil {
		return nil, w.err
	}

	if err := f.SetColWidth(sheetName, "A", "A", 40); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "B", "D", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// sheetWriter guarda o primeiro erro para manter o layout legível
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) set(row int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheetName, cell, &values)
}

func (w *sheetWriter) style(row, fromCol, toCol, styleID int) {
	if w.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(fromCol, row)
	to, _ := excelize.CoordinatesToCellName(toCol, row)
	w.err = w.f.SetCellStyle(sheetName, from, to, styleID)
}

func (w *sheetWriter) merge(row, fromCol, toCol int) {
	if w.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(fromCol, row)
	to, _ := excelize.CoordinatesToCellName(toCol, row)
	w.err = w.f.MergeCell(sheetName, from, to)
}
