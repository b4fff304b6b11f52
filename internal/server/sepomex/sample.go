package sepomex

import (
	"io"
	"strconv"
)

// RawSample shows how one row reads before grouping.
type RawSample struct {
	DCodigoRaw     string `json:"d_codigo_raw"`
	DCodigoCleaned string `json:"d_codigo_cleaned"`
	DCPRaw         string `json:"d_CP_raw"`
	Municipio      string `json:"municipio"`
	Estado         string `json:"estado"`
	Asentamiento   string `json:"asentamiento"`
}

type SampleResult struct {
	Samples     []RawSample `json:"xml_samples"`
	TotalTables int         `json:"total_tables_found"`
}

// Sample returns the first limit rows of the dataset. Raw values are
// quoted so stray whitespace and control characters stay visible.
func Sample(r io.Reader, limit int) (*SampleResult, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	n := min(max(limit, 0), len(records))
	out := &SampleResult{TotalTables: len(records), Samples: make([]RawSample, 0, n)}
	for _, rec := range records[:n] {
		code := rec.get("d_codigo")
		out.Samples = append(out.Samples, RawSample{
			DCodigoRaw:     strconv.Quote(code),
			DCodigoCleaned: CleanPostalCode(code),
			DCPRaw:         strconv.Quote(rec.get("d_CP")),
			Municipio:      rec.get("D_mnpio"),
			Estado:         rec.get("d_estado"),
			Asentamiento:   rec.get("d_asenta"),
		})
	}
	return out, nil
}
