package models

// Settlement is a named sub-area (colonia, fraccionamiento, ...) of a
// postal code.
type Settlement struct {
	Nombre         string `json:"nombre" bson:"nombre"`
	Tipo           string `json:"tipo" bson:"tipo"`
	Zona           string `json:"zona" bson:"zona"`
	CodigoTipo     string `json:"codigo_tipo" bson:"codigo_tipo"`
	IDAsentamiento string `json:"id_asentamiento" bson:"id_asentamiento"`
}

// Location groups every settlement of one five-digit postal code.
type Location struct {
	CodigoPostal    string       `json:"codigo_postal" bson:"codigo_postal"`
	Municipio       string       `json:"municipio" bson:"municipio"`
	Estado          string       `json:"estado" bson:"estado"`
	Ciudad          string       `json:"ciudad" bson:"ciudad"`
	CPOficina       string       `json:"cp_oficina" bson:"cp_oficina"`
	CodigoEstado    string       `json:"codigo_estado" bson:"codigo_estado"`
	CodigoOficina   string       `json:"codigo_oficina" bson:"codigo_oficina"`
	CodigoCP        string       `json:"codigo_cp" bson:"codigo_cp"`
	CodigoMunicipio string       `json:"codigo_municipio" bson:"codigo_municipio"`
	CodigoCiudad    string       `json:"codigo_ciudad" bson:"codigo_ciudad"`
	Asentamientos   []Settlement `json:"asentamientos,omitempty" bson:"asentamientos"`
}

// HasSettlement reports whether a settlement with exactly this name exists.
func (l *Location) HasSettlement(nombre string) bool {
	for _, s := range l.Asentamientos {
		if s.Nombre == nombre {
			return true
		}
	}
	return false
}

// LocationPage is one page of a by-state search.
type LocationPage struct {
	Results []Location `json:"ubicaciones"`
	Total   int64      `json:"total"`
	Limit   int        `json:"limit"`
	Skip    int        `json:"skip"`
	HasMore bool       `json:"has_more"`
}
