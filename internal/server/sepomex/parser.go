// Package sepomex reads the postal-code catalogue published by SEPOMEX (the
// Mexican postal service) and groups its flat rows into one record per
// postal code.
package sepomex

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/server/models"
	"golang.org/x/net/html/charset"
)

// Namespace is the default namespace declared by the published dataset.
const Namespace = "NewDataSet"

const recordElement = "table"

// ParseResult is the grouped content of one dataset.
type ParseResult struct {
	Locations []models.Location
	// TotalRecords counts the rows considered; SkippedRecords those dropped
	// for lacking a usable postal code.
	TotalRecords   int
	SkippedRecords int
}

// Settlements returns the number of settlements across all locations.
func (p *ParseResult) Settlements() int {
	n := 0
	for _, l := range p.Locations {
		n += len(l.Asentamientos)
	}
	return n
}

type rawField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type rawRecord struct {
	Fields []rawField `xml:",any"`
}

// get returns the trimmed text of child name, preferring the namespaced
// element. Missing and empty children both yield "".
func (r *rawRecord) get(name string) string {
	for _, space := range []string{Namespace, ""} {
		for _, f := range r.Fields {
			if f.XMLName.Space == space && f.XMLName.Local == name {
				return strings.TrimSpace(f.Value)
			}
		}
	}
	return ""
}

// readRecords collects every row element. Rows in the dataset namespace
// win; unnamespaced rows are used only when there are none.
func readRecords(r io.Reader) ([]rawRecord, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var namespaced, plain []rawRecord
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: xml: %v", common.ErrImport, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != recordElement {
			continue
		}

		var rec rawRecord
		if err := dec.DecodeElement(&rec, &se); err != nil {
			return nil, fmt.Errorf("%w: xml: %v", common.ErrImport, err)
		}
		switch se.Name.Space {
		case Namespace:
			namespaced = append(namespaced, rec)
		case "":
			plain = append(plain, rec)
		}
	}

	if len(namespaced) > 0 {
		return namespaced, nil
	}
	return plain, nil
}

// Parse groups rows by normalized postal code in source order. The first
// row of a code sets the location fields; every row contributes a
// settlement unless one with the same exact name is already present.
func Parse(r io.Reader) (*ParseResult, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	res := &ParseResult{TotalRecords: len(records)}
	index := make(map[string]int)

	for i := range records {
		rec := &records[i]

		cp, err := NormalizePostalCode(rec.get("d_codigo"))
		if err != nil {
			res.SkippedRecords++
			continue
		}

		pos, seen := index[cp]
		if !seen {
			pos = len(res.Locations)
			index[cp] = pos
			res.Locations = append(res.Locations, models.Location{
				CodigoPostal:    cp,
				Municipio:       rec.get("D_mnpio"),
				Estado:          rec.get("d_estado"),
				Ciudad:          rec.get("d_ciudad"),
				CPOficina:       rec.get("d_CP"),
				CodigoEstado:    rec.get("c_estado"),
				CodigoOficina:   rec.get("c_oficina"),
				CodigoCP:        rec.get("c_CP"),
				CodigoMunicipio: rec.get("c_mnpio"),
				CodigoCiudad:    rec.get("c_cve_ciudad"),
				Asentamientos:   []models.Settlement{},
			})
		}

		loc := &res.Locations[pos]
		s := models.Settlement{
			Nombre:         rec.get("d_asenta"),
			Tipo:           rec.get("d_tipo_asenta"),
			Zona:           rec.get("d_zona"),
			CodigoTipo:     rec.get("c_tipo_asenta"),
			IDAsentamiento: rec.get("id_asenta_cpcons"),
		}
		if !loc.HasSettlement(s.Nombre) {
			loc.Asentamientos = append(loc.Asentamientos, s)
		}
	}

	return res, nil
}
