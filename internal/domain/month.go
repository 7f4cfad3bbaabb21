package domain

import "strings"

// MonthInfo associa a abreviação usada como chave de período ao nome do mês
type MonthInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Number int    `json:"number"`
}

var months = []MonthInfo{
	{Code: "jan", Name: "Janeiro", Number: 1},
	{Code: "fev", Name: "Fevereiro", Number: 2},
	{Code: "mar", Name: "Março", Number: 3},
	{Code: "abr", Name: "Abril", Number: 4},
	{Code: "mai", Name: "Maio", Number: 5},
	{Code: "jun", Name: "Junho", Number: 6},
	{Code: "jul", Name: "Julho", Number: 7},
	{Code: "ago", Name: "Agosto", Number: 8},
	{Code: "set", Name: "Setembro", Number: 9},
	{Code: "out", Name: "Outubro", Number: 10},
	{Code: "nov", Name: "Novembro", Number: 11},
	{Code: "dez", Name: "Dezembro", Number: 12},
}

func Months() []MonthInfo {
	out := make([]MonthInfo, len(months))
	copy(out, months)
	return out
}

// ParseMonth aceita a abreviação ("set") ou o nome completo ("Setembro")
func ParseMonth(s string) (string, bool) {
	value := strings.TrimSpace(s)
	for _, m := range months {
		if strings.EqualFold(m.Code, value) || strings.EqualFold(m.Name, value) {
			return m.Code, true
		}
	}
	return "", false
}

// MonthNumber retorna 1-12 para códigos conhecidos e 0 caso contrário
func MonthNumber(code string) int {
	for _, m := range months {
		if m.Code == code {
			return m.Number
		}
	}
	return 0
}

// MonthName retorna o nome completo do mês, ou o próprio código se desconhecido
func MonthName(code string) string {
	for _, m := range months {
		if m.Code == code {
			return m.Name
		}
	}
	return code
}
