package registros

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"registros-service/internal/domain"
)

type FilterSuite struct {
	suite.Suite
	regs []domain.Registro
}

func TestFilterSuite(t *testing.T) {
	suite.Run(t, new(FilterSuite))
}

func (s *FilterSuite) SetupTest() {
	s.regs = []domain.Registro{
		{ID: "1", Empresa: "Minera Norte", Curso: "Excavación", Contratante: "Acme", CostoCurso: 150},
		{ID: "2", Empresa: "Minera Sur", Curso: "Soldadura", Contratante: "acme corp", CostoCurso: 200},
		{ID: "3", Empresa: "Pesquera Este", Curso: "Refrigeración", Contratante: "Globex", CostoCurso: 150},
	}
}

// TestFiltroContratante cubre el escenario del filtro de contratante:
// "acme" coincide con "Acme" y "acme corp" sin distinguir mayúsculas.
func (s *FilterSuite) TestFiltroContratante() {
	out := AplicarFiltros(s.regs, nil, "acme")
	s.Require().Len(out, 2)
	s.Equal("1", out[0].ID)
	s.Equal("2", out[1].ID)
}

// TestConjuncion verifica que todos los filtros no vacíos deben coincidir.
func (s *FilterSuite) TestConjuncion() {
	filtros := map[domain.FiltroCampo]string{
		domain.CampoEmpresa: "minera",
		domain.CampoCurso:   "sold",
	}
	out := AplicarFiltros(s.regs, filtros, "")
	s.Require().Len(out, 1)
	s.Equal("2", out[0].ID)
}

// TestFiltroNumericoPorTexto verifica que los campos monetarios filtran por
// su forma textual.
func (s *FilterSuite) TestFiltroNumericoPorTexto() {
	filtros := map[domain.FiltroCampo]string{domain.CampoCostoCurso: "150"}
	out := AplicarFiltros(s.regs, filtros, "")
	s.Require().Len(out, 2)
	s.Equal("1", out[0].ID)
	s.Equal("3", out[1].ID)
}

// TestFiltroEstable verifica que el filtrado preserva el orden relativo y
// que los patrones vacíos no restringen.
func (s *FilterSuite) TestFiltroEstable() {
	filtros := map[domain.FiltroCampo]string{domain.CampoEmpresa: ""}
	out := AplicarFiltros(s.regs, filtros, "")
	s.Require().Len(out, 3)
	for i := range out {
		s.Equal(s.regs[i].ID, out[i].ID)
	}
}

// TestCampoDesconocido verifica que un campo no filtrable se ignora.
func (s *FilterSuite) TestCampoDesconocido() {
	filtros := map[domain.FiltroCampo]string{domain.FiltroCampo("otro"): "x"}
	out := AplicarFiltros(s.regs, filtros, "")
	s.Len(out, 3)
}
