package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lacs/lacsapi/internal/common"
)

type EstadoCivil string

const (
	EstadoCivilSoltero    EstadoCivil = "Soltero"
	EstadoCivilCasado     EstadoCivil = "Casado"
	EstadoCivilDivorciado EstadoCivil = "Divorciado"
	EstadoCivilViudo      EstadoCivil = "Viudo"
	EstadoCivilUnionLibre EstadoCivil = "Unión libre"
)

type Sexo string

const (
	SexoMasculino Sexo = "Masculino"
	SexoFemenino  Sexo = "Femenino"
	SexoOtro      Sexo = "Otro"
)

type TipoContrato string

const (
	ContratoDeterminado     TipoContrato = "Determinado"
	ContratoIndeterminado   TipoContrato = "Indeterminado"
	ContratoObraDeterminada TipoContrato = "Por obra determinada"
	ContratoPeriodoDePrueba TipoContrato = "Periodo de prueba"
)

type FormatoPago string

const (
	PagoSemanal   FormatoPago = "Semanal"
	PagoQuincenal FormatoPago = "Quincenal"
)

type Domicilio struct {
	Calle          string `json:"calle" bson:"calle"`
	NumeroExterior string `json:"numero_exterior" bson:"numero_exterior"`
	NumeroInterior string `json:"numero_interior" bson:"numero_interior"`
	Colonia        string `json:"colonia" bson:"colonia"`
	CodigoPostal   string `json:"codigo_postal" bson:"codigo_postal"`
	Ciudad         string `json:"ciudad" bson:"ciudad"`
	Estado         string `json:"estado" bson:"estado"`
}

// String renders a one-line postal address.
func (d Domicilio) String() string {
	return fmt.Sprintf("%s %s/%s, %s, %s, %s, %s",
		d.Calle, d.NumeroExterior, d.NumeroInterior, d.Colonia, d.Ciudad, d.Estado, d.CodigoPostal)
}

type Empresa struct {
	Nombre    string    `json:"nombre" bson:"nombre"`
	RFC       string    `json:"rfc" bson:"rfc"`
	Domicilio Domicilio `json:"domicilio" bson:"domicilio"`
	Giro      string    `json:"giro" bson:"giro"`
}

type Banca struct {
	NumeroCuenta string `json:"numero_cuenta" bson:"numero_cuenta"`
	Banco        string `json:"banco" bson:"banco"`
	Clabe        string `json:"clabe" bson:"clabe"`
}

type Beneficiario struct {
	Nombre      string  `json:"nombre" bson:"nombre"`
	Porcentaje  float64 `json:"porcentaje" bson:"porcentaje"`
	Incapacidad bool    `json:"incapacidad" bson:"incapacidad"`
	Tratamiento bool    `json:"tratamiento" bson:"tratamiento"`
}

type IMSS struct {
	NSS                    string         `json:"nss" bson:"nss"`
	CreditoInfonavit       bool           `json:"credito_infonavit" bson:"credito_infonavit"`
	NumeroCreditoInfonavit string         `json:"numero_credito_infonavit" bson:"numero_credito_infonavit"`
	RegistroPatronal       string         `json:"registro_patronal" bson:"registro_patronal"`
	FechaAfiliacion        Date           `json:"fecha_afiliacion" bson:"fecha_afiliacion"`
	ClaseRT                string         `json:"clase_rt" bson:"clase_rt"`
	Pensionado             bool           `json:"pensionado" bson:"pensionado"`
	PensionAlimenticia     bool           `json:"pension_alimenticia" bson:"pension_alimenticia"`
	Viajero                bool           `json:"viajero" bson:"viajero"`
	Foraneo                bool           `json:"foraneo" bson:"foraneo"`
	Maternidad             bool           `json:"maternidad" bson:"maternidad"`
	NumeroHijos            int            `json:"numero_hijos" bson:"numero_hijos"`
	Beneficiarios          []Beneficiario `json:"beneficiarios" bson:"beneficiarios"`
	UMF                    string         `json:"umf" bson:"umf"`
	Incapacidad            bool           `json:"incapacidad" bson:"incapacidad"`
	SDI                    float64        `json:"sdi" bson:"sdi"`
}

// Baja records the termination of a worker.
type Baja struct {
	FechaBaja     Date   `json:"fecha_baja" bson:"fecha_baja"`
	MotivoBaja    string `json:"motivo_baja" bson:"motivo_baja"`
	Observaciones string `json:"observaciones,omitempty" bson:"observaciones,omitempty"`
}

// Trabajador is an employee record.
type Trabajador struct {
	ID                     string       `json:"id" bson:"-"`
	Nombre                 string       `json:"nombre" bson:"nombre"`
	ApellidoPaterno        string       `json:"apellido_paterno" bson:"apellido_paterno"`
	ApellidoMaterno        string       `json:"apellido_materno" bson:"apellido_materno"`
	Telefono               string       `json:"telefono" bson:"telefono"`
	RFC                    string       `json:"rfc" bson:"rfc"`
	CURP                   string       `json:"curp" bson:"curp"`
	DomicilioPersonal      Domicilio    `json:"domicilio_personal" bson:"domicilio_personal"`
	Puesto                 string       `json:"puesto" bson:"puesto"`
	SalarioNeto            float64      `json:"salario_neto" bson:"salario_neto"`
	SalarioBruto           float64      `json:"salario_bruto" bson:"salario_bruto"`
	Actividades            string       `json:"actividades" bson:"actividades"`
	Nacionalidad           string       `json:"nacionalidad" bson:"nacionalidad"`
	FechaNacimiento        Date         `json:"fecha_nacimiento" bson:"fecha_nacimiento"`
	LugarNacimiento        string       `json:"lugar_nacimiento" bson:"lugar_nacimiento"`
	Edad                   int          `json:"edad" bson:"edad"`
	EstadoCivil            EstadoCivil  `json:"estado_civil" bson:"estado_civil"`
	Empresa                Empresa      `json:"empresa" bson:"empresa"`
	TiempoDuracionContrato int          `json:"tiempo_duracion_contrato" bson:"tiempo_duracion_contrato"`
	Sexo                   Sexo         `json:"sexo" bson:"sexo"`
	TipoContrato           TipoContrato `json:"tipo_contrato" bson:"tipo_contrato"`
	FechaContratacion      Date         `json:"fecha_contratacion" bson:"fecha_contratacion"`
	Banca                  Banca        `json:"banca" bson:"banca"`
	IMSS                   IMSS         `json:"imss" bson:"imss"`
	SD                     float64      `json:"sd" bson:"sd"`
	FactorIntegracion      float64      `json:"factor_integracion" bson:"factor_integracion"`
	EmpresaPagadora        string       `json:"empresa_pagadora" bson:"empresa_pagadora"`
	FormatoPago            FormatoPago  `json:"formato_pago" bson:"formato_pago"`
	Baja                   *Baja        `json:"baja,omitempty" bson:"baja,omitempty"`
}

// Validate checks required identity fields and every enumerated value.
func (t *Trabajador) Validate() error {
	var problems []string

	for name, v := range map[string]string{
		"nombre": t.Nombre, "apellido_paterno": t.ApellidoPaterno, "rfc": t.RFC, "curp": t.CURP,
	} {
		if strings.TrimSpace(v) == "" {
			problems = append(problems, name+" is required")
		}
	}

	if !oneOf(t.EstadoCivil, EstadoCivilSoltero, EstadoCivilCasado, EstadoCivilDivorciado, EstadoCivilViudo, EstadoCivilUnionLibre) {
		problems = append(problems, fmt.Sprintf("invalid estado_civil %q", t.EstadoCivil))
	}
	if !oneOf(t.Sexo, SexoMasculino, SexoFemenino, SexoOtro) {
		problems = append(problems, fmt.Sprintf("invalid sexo %q", t.Sexo))
	}
	if !oneOf(t.TipoContrato, ContratoDeterminado, ContratoIndeterminado, ContratoObraDeterminada, ContratoPeriodoDePrueba) {
		problems = append(problems, fmt.Sprintf("invalid tipo_contrato %q", t.TipoContrato))
	}
	if !oneOf(t.FormatoPago, PagoSemanal, PagoQuincenal) {
		problems = append(problems, fmt.Sprintf("invalid formato_pago %q", t.FormatoPago))
	}
	if t.Baja != nil && strings.TrimSpace(t.Baja.MotivoBaja) == "" {
		problems = append(problems, "baja.motivo_baja is required")
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(problems, "; "))
}

// TrabajadorFilter selects workers in a list. Name-like fields match as
// case-insensitive substrings, enumerations and nacionalidad match exactly.
type TrabajadorFilter struct {
	Nombre          string
	ApellidoPaterno string
	ApellidoMaterno string
	Puesto          string
	EmpresaPagadora string
	Sexo            Sexo
	TipoContrato    TipoContrato
	EstadoCivil     EstadoCivil
	Nacionalidad    string
}

func oneOf[T comparable](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
