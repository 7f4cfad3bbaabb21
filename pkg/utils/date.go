package utils

import (
	"strconv"
	"strings"
	"time"
)

const TimestampLayout = "02/01/2006 15:04:05"

// ParseOptionalYear converte o parâmetro de ano. String vazia resulta em nil.
func ParseOptionalYear(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	year, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}

	return &year, nil
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
