package registros

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"registros-service/internal/domain"

	"github.com/google/uuid"
)

// FilaCruda es una fila del archivo tal como la entrega el lector de
// planillas: valores de celda sin tipar, indexados por encabezado.
type FilaCruda map[string]string

// Formatos de fecha aceptados al parsear celdas de texto. es-PE es
// día-primero; los formatos ISO se aceptan porque algunos exports los usan.
var formatosFecha = []string{
	"2/1/2006",
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	time.RFC3339,
}

// VerificarCamposRequeridos valida que la primera fila del archivo tenga
// todos los encabezados requeridos. Es una verificación estructural única
// previa al lote completo, no una validación por fila.
func VerificarCamposRequeridos(primera FilaCruda) error {
	for _, campo := range domain.CamposRequeridos {
		if _, ok := primera[campo]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrCampoFaltante, campo)
		}
	}
	return nil
}

// NormalizarRegistro convierte una fila cruda en un Registro canónico.
// Es una función total: los campos ausentes o malformados degradan a sus
// valores por defecto en lugar de fallar.
func NormalizarRegistro(fila FilaCruda) domain.Registro {
	return domain.Registro{
		ID:             uuid.NewString(),
		Empresa:        fila["Empresa"],
		Sede:           fila["Sede"],
		FechaMatricula: canonicalizarFecha(fila["Fecha Matricula"]),
		Curso:          fila["Curso"],
		TipoDocumento:  fila["Tipo Documento"],
		NroDocumento:   fila["Nro. Documento"],
		Contratante:    fila["Contratante"],
		CostoCurso:     parseMonto(fila["Costo Curso"]),
		Comision:       parseMonto(fila["Comision"]),
		Pendiente:      parseMonto(fila["Pendiente"]),
		Pagado:         parseMonto(fila["Pagado"]),
	}
}

// NormalizarLote normaliza todas las filas preservando su orden de entrada.
func NormalizarLote(filas []FilaCruda) []domain.Registro {
	out := make([]domain.Registro, 0, len(filas))
	for _, fila := range filas {
		out = append(out, NormalizarRegistro(fila))
	}
	return out
}

// canonicalizarFecha lleva la celda de fecha a la forma corta es-PE
// ("2/1/2006"). Una celda numérica se interpreta como serial de Excel; una
// celda de texto se intenta parsear y, si no se puede, se conserva tal cual.
func canonicalizarFecha(crudo string) string {
	s := strings.TrimSpace(crudo)
	if s == "" {
		return ""
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return serialExcelAFecha(serial).Format("2/1/2006")
	}
	for _, formato := range formatosFecha {
		if t, err := time.Parse(formato, s); err == nil {
			return t.Format("2/1/2006")
		}
	}
	return s
}

// serialExcelAFecha convierte un serial de fecha de Excel (día 0 ≈
// 1899-12-30) a fecha calendario, incluida la fracción de día.
func serialExcelAFecha(serial float64) time.Time {
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	dias := int64(serial)
	frac := serial - float64(dias)
	d := time.Duration(dias*24) * time.Hour
	d += time.Duration(frac * 24 * float64(time.Hour))
	return base.Add(d)
}

// parseMonto es la coerción numérica permisiva de los campos monetarios:
// acepta símbolo de moneda, separadores de miles y coma decimal; cualquier
// cosa no numérica resulta en 0. Los negativos pasan sin recortar.
func parseMonto(crudo string) float64 {
	s := strings.TrimSpace(crudo)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, "S/", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimPrefix(strings.TrimSuffix(s, ")"), "(")
	}
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimPrefix(s, "-")
	}

	// decidir separador decimal por la última aparición de . y ,
	ultPunto := strings.LastIndex(s, ".")
	ultComa := strings.LastIndex(s, ",")
	switch {
	case ultComa > ultPunto:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case strings.Count(s, ".") > 1:
		partes := strings.Split(s, ".")
		s = strings.Join(partes[:len(partes)-1], "") + "." + partes[len(partes)-1]
	default:
		s = strings.ReplaceAll(s, ",", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if neg {
		return -f
	}
	return f
}
