package registros

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"registros-service/internal/domain"
)

type ExportSuite struct {
	suite.Suite
	regs []domain.Registro
}

func TestExportSuite(t *testing.T) {
	suite.Run(t, new(ExportSuite))
}

func (s *ExportSuite) SetupTest() {
	s.regs = []domain.Registro{
		{ID: "1", Empresa: "Minera Norte", Sede: "Lima", FechaMatricula: "2/1/2026",
			Curso: "Excavación", TipoDocumento: "DNI", NroDocumento: "00123456",
			Contratante: "Acme", CostoCurso: 100, Comision: 10, Pendiente: 0, Pagado: 100},
		{ID: "2", Empresa: "Minera Sur", Sede: "Cusco", FechaMatricula: "3/1/2026",
			Curso: "Soldadura", TipoDocumento: "CE", NroDocumento: "987",
			Contratante: "Globex", CostoCurso: 200, Comision: 20, Pendiente: 50, Pagado: 150},
	}
}

// TestExportarVacio cubre el escenario de exportación sin datos: error y
// ningún archivo producido.
func (s *ExportSuite) TestExportarVacio() {
	_, err := ExportarRegistros(nil)
	s.Require().ErrorIs(err, domain.ErrNadaQueExportar)

	_, err = ExportarRegistrosCSV(nil)
	s.Require().ErrorIs(err, domain.ErrNadaQueExportar)

	_, err = ExportarContratantes(nil, 5, time.Now())
	s.Require().ErrorIs(err, domain.ErrNadaQueExportar)
}

// TestLibroRegistros verifica las dos hojas del libro exportado y los cinco
// totales del resumen.
func (s *ExportSuite) TestLibroRegistros() {
	datos, err := ExportarRegistros(s.regs)
	s.Require().NoError(err)

	f, err := excelize.OpenReader(bytes.NewReader(datos))
	s.Require().NoError(err)
	defer f.Close()

	s.ElementsMatch([]string{"Registros", "Resumen"}, f.GetSheetList())

	filas, err := f.GetRows("Registros")
	s.Require().NoError(err)
	s.Require().Len(filas, 3) // encabezado + 2 registros
	s.Equal("Empresa", filas[0][0])
	s.Equal("00123456", filas[1][5])

	resumen, err := f.GetRows("Resumen")
	s.Require().NoError(err)
	s.Require().Len(resumen, 2)
	s.Equal("2", resumen[1][0])   // Total Registros
	s.Equal("300", resumen[1][1]) // Total Costo Cursos
	s.Equal("30", resumen[1][2])  // Total Comisiones
	s.Equal("50", resumen[1][3])  // Total Pendiente
	s.Equal("250", resumen[1][4]) // Total Pagado
}

// TestLibroContratantes verifica el título combinado y las filas del
// ranking.
func (s *ExportSuite) TestLibroContratantes() {
	stats := AgregarPorContratante(s.regs)
	ahora := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	datos, err := ExportarContratantes(stats, 5, ahora)
	s.Require().NoError(err)

	f, err := excelize.OpenReader(bytes.NewReader(datos))
	s.Require().NoError(err)
	defer f.Close()

	titulo, err := f.GetCellValue("Contratantes", "A1")
	s.Require().NoError(err)
	s.Equal("Todos los Contratantes - 2 de enero de 2026", titulo)

	combinadas, err := f.GetMergeCells("Contratantes")
	s.Require().NoError(err)
	s.Require().Len(combinadas, 1)
	s.Equal("A1", combinadas[0].GetStartAxis())
	s.Equal("G1", combinadas[0].GetEndAxis())

	filas, err := f.GetRows("Contratantes")
	s.Require().NoError(err)
	s.Require().Len(filas, 4) // título + encabezado + 2 contratantes
	s.Equal("1", filas[2][0])
	s.Equal("Acme", filas[2][1])
}

// TestTituloConCorte verifica el título cuando el corte es menor que el
// ranking completo.
func (s *ExportSuite) TestTituloConCorte() {
	var regs []domain.Registro
	for i := 0; i < 8; i++ {
		regs = append(regs, domain.Registro{Contratante: fmt.Sprintf("C%d", i)})
	}
	stats := AgregarPorContratante(regs)
	ahora := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	datos, err := ExportarContratantes(stats, 5, ahora)
	s.Require().NoError(err)

	f, err := excelize.OpenReader(bytes.NewReader(datos))
	s.Require().NoError(err)
	defer f.Close()

	titulo, _ := f.GetCellValue("Contratantes", "A1")
	s.Equal("Top 5 Contratantes - 31 de agosto de 2026", titulo)
}

// TestCSVHeredado verifica la variante CSV: separador, codificación y
// sanitización.
func (s *ExportSuite) TestCSVHeredado() {
	s.regs[0].Empresa = "Minera\nNorte" // control embebido

	datos, err := ExportarRegistrosCSV(s.regs)
	s.Require().NoError(err)

	decodificado, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), datos)
	s.Require().NoError(err)
	texto := string(decodificado)

	lineas := strings.Split(strings.TrimSpace(texto), "\n")
	s.Require().Len(lineas, 3)
	s.Equal("Empresa;Sede;Fecha Matricula;Curso;Tipo Documento;Nro. Documento;Contratante;Costo Curso;Comision;Pendiente;Pagado", strings.TrimSpace(lineas[0]))
	s.Contains(lineas[1], "MineraNorte")
	s.Contains(lineas[1], "100.00")
}

// TestNombresDeArchivo verifica la fecha ISO embebida en los nombres.
func (s *ExportSuite) TestNombresDeArchivo() {
	t := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	s.Equal("Registros_Cursos_2026-08-31.xlsx", NombreArchivoRegistros(t))
	s.Equal("Registros_Cursos_2026-08-31.csv", NombreArchivoRegistrosCSV(t))
	s.Equal("Top_Contratantes_2026-08-31.xlsx", NombreArchivoContratantes(t))
}
