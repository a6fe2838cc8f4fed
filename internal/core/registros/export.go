package registros

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"registros-service/internal/domain"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var encabezadosLedger = []string{
	"Empresa", "Sede", "Fecha Matricula", "Curso",
	"Tipo Documento", "Nro. Documento", "Contratante",
	"Costo Curso", "Comision", "Pendiente", "Pagado",
}

var mesesEs = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// fechaLargaEs representa la fecha en la forma larga es-PE,
// p. ej. "2 de enero de 2026".
func fechaLargaEs(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), mesesEs[t.Month()-1], t.Year())
}

// NombreArchivoRegistros genera el nombre de descarga del libro de
// registros con la fecha en formato ISO.
func NombreArchivoRegistros(t time.Time) string {
	return fmt.Sprintf("Registros_Cursos_%s.xlsx", t.Format("2006-01-02"))
}

// NombreArchivoRegistrosCSV es el equivalente para la exportación CSV.
func NombreArchivoRegistrosCSV(t time.Time) string {
	return fmt.Sprintf("Registros_Cursos_%s.csv", t.Format("2006-01-02"))
}

// NombreArchivoContratantes genera el nombre de descarga del ranking de
// contratantes.
func NombreArchivoContratantes(t time.Time) string {
	return fmt.Sprintf("Top_Contratantes_%s.xlsx", t.Format("2006-01-02"))
}

// ExportarRegistros arma el libro con la hoja "Registros" (una fila por
// registro filtrado) y la hoja "Resumen" con los cinco totales. Un conjunto
// filtrado vacío no produce archivo.
func ExportarRegistros(filtrados []domain.Registro) ([]byte, error) {
	if len(filtrados) == 0 {
		return nil, domain.ErrNadaQueExportar
	}

	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Registros"
	if err := f.SetSheetName("Sheet1", hoja); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}

	fila := make([]interface{}, len(encabezadosLedger))
	for i, h := range encabezadosLedger {
		fila[i] = h
	}
	if err := f.SetSheetRow(hoja, "A1", &fila); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}

	var totCosto, totComision, totPendiente, totPagado float64
	for i := range filtrados {
		r := &filtrados[i]
		celda, _ := excelize.CoordinatesToCellName(1, i+2)
		fila := []interface{}{
			r.Empresa, r.Sede, r.FechaMatricula, r.Curso,
			r.TipoDocumento, r.NroDocumento, r.Contratante,
			r.CostoCurso, r.Comision, r.Pendiente, r.Pagado,
		}
		if err := f.SetSheetRow(hoja, celda, &fila); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
		}
		totCosto += r.CostoCurso
		totComision += r.Comision
		totPendiente += r.Pendiente
		totPagado += r.Pagado
	}

	const resumen = "Resumen"
	if _, err := f.NewSheet(resumen); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}
	encResumen := []interface{}{
		"Total Registros", "Total Costo Cursos", "Total Comisiones",
		"Total Pendiente", "Total Pagado",
	}
	filaResumen := []interface{}{
		len(filtrados), totCosto, totComision, totPendiente, totPagado,
	}
	if err := f.SetSheetRow(resumen, "A1", &encResumen); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}
	if err := f.SetSheetRow(resumen, "A2", &filaResumen); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}
	return buf.Bytes(), nil
}

// ExportarContratantes arma el libro del ranking de contratantes: una fila
// de título combinada sobre todas las columnas, encabezados y una fila por
// contratante hasta el corte n.
func ExportarContratantes(stats []domain.EstadisticaContratante, n int, ahora time.Time) ([]byte, error) {
	if len(stats) == 0 {
		return nil, domain.ErrNadaQueExportar
	}
	top := TopContratantes(stats, n)

	titulo := fmt.Sprintf("Top %d Contratantes - %s", len(top), fechaLargaEs(ahora))
	if len(top) == len(stats) {
		titulo = fmt.Sprintf("Todos los Contratantes - %s", fechaLargaEs(ahora))
	}

	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Contratantes"
	if err := f.SetSheetName("Sheet1", hoja); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}
	if err := f.SetCellValue(hoja, "A1", titulo); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}
	if err := f.MergeCell(hoja, "A1", "G1"); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}

	encabezados := []interface{}{
		"N°", "Contratante", "Cursos", "Total Costo (S/)",
		"Total Comisión (S/)", "Total Pagado (S/)", "Detalle de Cursos",
	}
	if err := f.SetSheetRow(hoja, "A2", &encabezados); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}

	for i := range top {
		e := &top[i]
		celda, _ := excelize.CoordinatesToCellName(1, i+3)
		fila := []interface{}{
			i + 1, e.Contratante, e.Cantidad,
			e.TotalCosto, e.TotalComision, e.TotalPagado,
			strings.Join(e.Cursos, "\n"),
		}
		if err := f.SetSheetRow(hoja, celda, &fila); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}
	return buf.Bytes(), nil
}

// ExportarRegistrosCSV genera el mismo libro mayor como CSV separado por
// punto y coma en Windows-1252, para los sistemas contables heredados que
// no leen .xlsx.
func ExportarRegistrosCSV(filtrados []domain.Registro) ([]byte, error) {
	if len(filtrados) == 0 {
		return nil, domain.ErrNadaQueExportar
	}

	var buffer bytes.Buffer
	encoder := charmap.Windows1252.NewEncoder()
	writer := csv.NewWriter(transform.NewWriter(&buffer, encoder))
	writer.Comma = ';'

	encabezado := make([]string, len(encabezadosLedger))
	for i, h := range encabezadosLedger {
		encabezado[i] = sanitizarCSV(h)
	}
	if err := writer.Write(encabezado); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}

	for i := range filtrados {
		r := &filtrados[i]
		fila := []string{
			sanitizarCSV(r.Empresa),
			sanitizarCSV(r.Sede),
			sanitizarCSV(r.FechaMatricula),
			sanitizarCSV(r.Curso),
			sanitizarCSV(r.TipoDocumento),
			sanitizarCSV(r.NroDocumento),
			sanitizarCSV(r.Contratante),
			fmt.Sprintf("%.2f", r.CostoCurso),
			fmt.Sprintf("%.2f", r.Comision),
			fmt.Sprintf("%.2f", r.Pendiente),
			fmt.Sprintf("%.2f", r.Pagado),
		}
		if err := writer.Write(fila); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportacion, err)
	}
	return buffer.Bytes(), nil
}

// sanitizarCSV recorta espacios y elimina caracteres de control embebidos
// que romperían el archivo de salida.
func sanitizarCSV(s string) string {
	if s == "" {
		return ""
	}

	inicio := 0
	fin := len(s)
	for inicio < fin {
		r, tam := utf8.DecodeRuneInString(s[inicio:fin])
		if !unicode.IsSpace(r) {
			break
		}
		inicio += tam
	}
	for fin > inicio {
		r, tam := utf8.DecodeLastRuneInString(s[inicio:fin])
		if !unicode.IsSpace(r) {
			break
		}
		fin -= tam
	}
	if inicio >= fin {
		return ""
	}

	var b strings.Builder
	b.Grow(fin - inicio)
	for i := inicio; i < fin; {
		r, tam := utf8.DecodeRuneInString(s[i:fin])
		i += tam
		if r == '\r' || r == '\n' || r == '\t' {
			continue
		}
		if r < 32 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
