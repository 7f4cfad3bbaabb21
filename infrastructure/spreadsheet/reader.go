// Package spreadsheet lê as planilhas de matrículas exportadas pelo sistema da academia.
package spreadsheet

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	ColumnClientID   = "ID do cliente"
	ColumnName       = "Nome"
	ColumnLastname   = "Sobrenome"
	ColumnPlan       = "Contratos"
	ColumnStartDate  = "Início"
	ColumnDueDate    = "Vencimento"
	ColumnPrice      = "Valor"
	ColumnInstructor = "Professor"

	DateLayout = "02/01/2006"
)

var (
	ErrMissingColumn = errors.New("coluna obrigatória ausente")
	ErrEmptyWorkbook = errors.New("planilha sem abas")
)

var requiredColumns = []string{
	ColumnClientID,
	ColumnName,
	ColumnLastname,
	ColumnPlan,
	ColumnStartDate,
	ColumnDueDate,
	ColumnPrice,
}

// Formatos textuais aceitos nas colunas de data, além do número serial do Excel
var dateLayouts = []string{
	DateLayout,
	"2/1/2006",
	"02/01/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02-01-2006",
	"02.01.2006",
}

// RawRow é uma linha da planilha ainda sem os valores derivados
type RawRow struct {
	Line       int
	ClientID   string
	FullName   string
	PlanLabel  string
	RawPrice   string
	StartDate  string
	DueDate    string
	Instructor *string
}

// Sheet é o resultado da leitura da primeira aba
type Sheet struct {
	Name          string
	Rows          []RawRow
	Skipped       int
	HasInstructor bool
}

type Parser interface {
	Parse(r io.Reader) (*Sheet, error)
}

type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Parse lê a primeira aba da planilha. Linhas sem ID do cliente são ignoradas e contadas em Skipped.
func (p *Reader) Parse(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir planilha")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler aba %s", sheets[0])
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(ErrMissingColumn, "aba %s sem cabeçalho", sheets[0])
	}

	index := headerIndex(rows[0])
	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			return nil, errors.Wrapf(ErrMissingColumn, "coluna %q", column)
		}
	}
	_, hasInstructor := index[ColumnInstructor]

	sheet := &Sheet{
		Name:          sheets[0],
		Rows:          make([]RawRow, 0, len(rows)-1),
		HasInstructor: hasInstructor,
	}

	for i, cells := range rows[1:] {
		get := func(column string) string {
			pos, ok := index[column]
			if !ok || pos >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[pos])
		}

		clientID := normalizeClientID(get(ColumnClientID))
		if clientID == "" {
			if !isBlank(cells) {
				sheet.Skipped++
			}
			continue
		}

		row := RawRow{
			Line:      i + 2,
			ClientID:  clientID,
			FullName:  strings.TrimSpace(get(ColumnName) + " " + get(ColumnLastname)),
			PlanLabel: get(ColumnPlan),
			RawPrice:  get(ColumnPrice),
			StartDate: NormalizeDate(get(ColumnStartDate)),
			DueDate:   NormalizeDate(get(ColumnDueDate)),
		}

		if instructor := get(ColumnInstructor); instructor != "" {
			row.Instructor = &instructor
		}

		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

// NormalizeDate converte o valor da célula para dd/mm/aaaa. Valores não reconhecidos viram string vazia.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return ""
		}
		return t.Format(DateLayout)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(DateLayout)
		}
	}

	return ""
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, exists := index[name]; !exists && name != "" {
			index[name] = i
		}
	}
	return index
}

// IDs numéricos podem vir como float da planilha, ex: 1234.0
func normalizeClientID(id string) string {
	if strings.HasSuffix(id, ".0") {
		if _, err := strconv.ParseFloat(id, 64); err == nil {
			return strings.TrimSuffix(id, ".0")
		}
	}
	return id
}

func isBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
