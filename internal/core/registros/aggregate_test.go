package registros

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"registros-service/internal/domain"
)

type AggregateSuite struct {
	suite.Suite
}

func TestAggregateSuite(t *testing.T) {
	suite.Run(t, new(AggregateSuite))
}

func repetir(contratante string, n int, costo float64) []domain.Registro {
	out := make([]domain.Registro, n)
	for i := range out {
		out[i] = domain.Registro{
			Contratante: contratante,
			Curso:       "Curso X",
			CostoCurso:  costo,
			Comision:    costo / 10,
			Pagado:      costo,
		}
	}
	return out
}

// TestRankingEmpates cubre el escenario A=5, B=3, C=5: los empates
// conservan el orden de primera aparición.
func (s *AggregateSuite) TestRankingEmpates() {
	var regs []domain.Registro
	regs = append(regs, repetir("A", 5, 100)...)
	regs = append(regs, repetir("B", 3, 100)...)
	regs = append(regs, repetir("C", 5, 100)...)

	stats := AgregarPorContratante(regs)
	s.Require().Len(stats, 3)
	s.Equal("A", stats[0].Contratante)
	s.Equal("C", stats[1].Contratante)
	s.Equal("B", stats[2].Contratante)
}

// TestConservacionDeTotales verifica que las sumas por grupo reconstruyen
// los totales de la colección.
func (s *AggregateSuite) TestConservacionDeTotales() {
	var regs []domain.Registro
	regs = append(regs, repetir("A", 4, 150)...)
	regs = append(regs, repetir("B", 2, 80)...)

	stats := AgregarPorContratante(regs)

	var cantidad int
	var costo float64
	for _, e := range stats {
		cantidad += e.Cantidad
		costo += e.TotalCosto
	}
	s.Equal(len(regs), cantidad)
	s.InDelta(4*150.0+2*80.0, costo, 1e-9)
}

// TestAgrupacionSensibleAMayusculas verifica que "Acme" y "acme" forman
// grupos separados, a diferencia del filtrado.
func (s *AggregateSuite) TestAgrupacionSensibleAMayusculas() {
	regs := append(repetir("Acme", 2, 100), repetir("acme", 1, 100)...)
	stats := AgregarPorContratante(regs)
	s.Len(stats, 2)
}

// TestCursosDistintos verifica el conjunto de cursos por grupo.
func (s *AggregateSuite) TestCursosDistintos() {
	regs := []domain.Registro{
		{Contratante: "A", Curso: "Soldadura"},
		{Contratante: "A", Curso: "Soldadura"},
		{Contratante: "A", Curso: "Excavación"},
	}
	stats := AgregarPorContratante(regs)
	s.Require().Len(stats, 1)
	s.Equal([]string{"Soldadura", "Excavación"}, stats[0].Cursos)
}

// TestTopContratantes cubre el recorte y sus acotaciones.
func (s *AggregateSuite) TestTopContratantes() {
	var regs []domain.Registro
	for _, c := range []string{"A", "B", "C"} {
		regs = append(regs, repetir(c, 1, 10)...)
	}
	stats := AgregarPorContratante(regs)

	s.Len(TopContratantes(stats, 2), 2)
	s.Len(TopContratantes(stats, 0), 1)  // acotado al mínimo
	s.Len(TopContratantes(stats, 99), 3) // acotado al largo
	s.Nil(TopContratantes(nil, 5))
}

// TestSugerencia verifica la corrección difusa del nombre de contratante.
func (s *AggregateSuite) TestSugerencia() {
	regs := []domain.Registro{
		{Contratante: "Corporación Acme S.A.C."},
		{Contratante: "Globex Perú"},
	}

	s.Run("coincidencia exacta laxa", func() {
		s.Equal("Corporación Acme S.A.C.", SugerirContratante(regs, "corporacion acme s.a.c."))
	})

	s.Run("coincidencia difusa", func() {
		s.Equal("Globex Perú", SugerirContratante(regs, "globex peru sa"))
	})

	s.Run("consulta vacía no sugiere", func() {
		s.Equal("", SugerirContratante(regs, "   "))
	})
}
