package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// YearAmount ingreso de un año.
type YearAmount struct {
	Year  string
	Total float64
}

// YearlyStats mapeo ordenado año → ingreso. Se serializa como objeto JSON
// {"2024": 120.5, "2025": 60} respetando el orden por año.
type YearlyStats []YearAmount

// Get devuelve el total de un año y si existe.
func (s YearlyStats) Get(year string) (float64, bool) {
	for _, y := range s {
		if y.Year == year {
			return y.Total, true
		}
	}
	return 0, false
}

// MarshalJSON implementa json.Marshaler preservando el orden.
func (s YearlyStats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, y := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(y.Year)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(y.Total, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ClientTotalResponse ingreso total de un cliente (estadística por vendedor).
type ClientTotalResponse struct {
	ClientID   string  `json:"id_cliente"`
	ClientName string  `json:"nombre"`
	Total      float64 `json:"total"`
}
