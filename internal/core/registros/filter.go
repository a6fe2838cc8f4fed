package registros

import (
	"strconv"
	"strings"

	"registros-service/internal/domain"
)

// accesoresTexto resuelve cada campo filtrable a un accesor tipado que
// devuelve la representación textual del campo. Se resuelve una sola vez
// por configuración de filtros, nunca por registro.
var accesoresTexto = map[domain.FiltroCampo]func(*domain.Registro) string{
	domain.CampoEmpresa:        func(r *domain.Registro) string { return r.Empresa },
	domain.CampoSede:           func(r *domain.Registro) string { return r.Sede },
	domain.CampoFechaMatricula: func(r *domain.Registro) string { return r.FechaMatricula },
	domain.CampoCurso:          func(r *domain.Registro) string { return r.Curso },
	domain.CampoTipoDocumento:  func(r *domain.Registro) string { return r.TipoDocumento },
	domain.CampoNroDocumento:   func(r *domain.Registro) string { return r.NroDocumento },
	domain.CampoContratante:    func(r *domain.Registro) string { return r.Contratante },
	domain.CampoCostoCurso:     func(r *domain.Registro) string { return formatearMonto(r.CostoCurso) },
	domain.CampoComision:       func(r *domain.Registro) string { return formatearMonto(r.Comision) },
	domain.CampoPendiente:      func(r *domain.Registro) string { return formatearMonto(r.Pendiente) },
	domain.CampoPagado:         func(r *domain.Registro) string { return formatearMonto(r.Pagado) },
}

// accesoresNumericos cubre los campos que ordenan numéricamente.
var accesoresNumericos = map[domain.FiltroCampo]func(*domain.Registro) float64{
	domain.CampoCostoCurso: func(r *domain.Registro) float64 { return r.CostoCurso },
	domain.CampoComision:   func(r *domain.Registro) float64 { return r.Comision },
	domain.CampoPendiente:  func(r *domain.Registro) float64 { return r.Pendiente },
	domain.CampoPagado:     func(r *domain.Registro) float64 { return r.Pagado },
}

func formatearMonto(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CampoValido indica si el nombre corresponde a un campo filtrable.
func CampoValido(campo domain.FiltroCampo) bool {
	_, ok := accesoresTexto[campo]
	return ok
}

type predicado struct {
	accesor func(*domain.Registro) string
	patron  string
}

// AplicarFiltros evalúa la conjunción de filtros por campo más el filtro de
// contratante sobre la colección. Todo filtro es subcadena sin distinguir
// mayúsculas; el resultado preserva el orden relativo de entrada.
func AplicarFiltros(regs []domain.Registro, filtros map[domain.FiltroCampo]string, filtroContratante string) []domain.Registro {
	var predicados []predicado
	for campo, valor := range filtros {
		if valor == "" {
			continue
		}
		accesor, ok := accesoresTexto[campo]
		if !ok {
			continue
		}
		predicados = append(predicados, predicado{accesor: accesor, patron: strings.ToLower(valor)})
	}
	contratante := strings.ToLower(filtroContratante)

	out := make([]domain.Registro, 0, len(regs))
	for i := range regs {
		r := &regs[i]
		pasa := true
		for _, p := range predicados {
			if !strings.Contains(strings.ToLower(p.accesor(r)), p.patron) {
				pasa = false
				break
			}
		}
		if pasa && contratante != "" {
			pasa = strings.Contains(strings.ToLower(r.Contratante), contratante)
		}
		if pasa {
			out = append(out, regs[i])
		}
	}
	return out
}
