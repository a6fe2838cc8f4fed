package registros

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// MaxTamArchivo es el tamaño máximo aceptado para el archivo importado.
const MaxTamArchivo = 5 * 1024 * 1024

// leerFilas abre el archivo como .xlsx y, si falla, como .xls heredado.
// Devuelve las celdas de la primera hoja como texto crudo.
func leerFilas(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err == nil {
		defer f.Close()
		hojas := f.GetSheetList()
		if len(hojas) == 0 {
			return nil, fmt.Errorf("el archivo no contiene hojas")
		}
		return f.GetRows(hojas[0])
	}

	libro, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported workbook file format")
	}
	if len(libro.GetSheets()) == 0 {
		return nil, fmt.Errorf("el archivo .xls no contiene hojas")
	}
	hoja, err := libro.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("error al obtener la hoja del archivo .xls: %w", err)
	}
	var filas [][]string
	for _, fila := range hoja.GetRows() {
		var celdas []string
		for _, celda := range fila.GetCols() {
			celdas = append(celdas, celda.GetString())
		}
		filas = append(filas, celdas)
	}
	return filas, nil
}

// filasAMapa interpreta la primera fila como encabezados y proyecta cada
// fila de datos a un mapa encabezado->celda. Las filas completamente
// vacías se omiten, igual que hace el lector de planillas del navegador.
func filasAMapa(filas [][]string) []FilaCruda {
	if len(filas) == 0 {
		return nil
	}
	encabezados := make([]string, len(filas[0]))
	for i, h := range filas[0] {
		encabezados[i] = strings.TrimSpace(h)
	}

	var out []FilaCruda
	for _, fila := range filas[1:] {
		vacia := true
		m := make(FilaCruda, len(encabezados))
		for i, h := range encabezados {
			if h == "" {
				continue
			}
			var v string
			if i < len(fila) {
				v = fila[i]
			}
			if strings.TrimSpace(v) != "" {
				vacia = false
			}
			m[h] = v
		}
		if vacia {
			continue
		}
		out = append(out, m)
	}
	return out
}
