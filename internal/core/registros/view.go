package registros

import (
	"sort"
	"strings"

	"registros-service/internal/domain"
)

// OrdenarRegistros devuelve una copia ordenada por el campo indicado. Los
// campos monetarios comparan numéricamente; el resto como texto sin
// distinguir mayúsculas. El ordenamiento es estable: los empates conservan
// el orden relativo de entrada.
func OrdenarRegistros(regs []domain.Registro, orden *domain.Orden) []domain.Registro {
	out := make([]domain.Registro, len(regs))
	copy(out, regs)
	if orden == nil {
		return out
	}

	if num, ok := accesoresNumericos[orden.Campo]; ok {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := num(&out[i]), num(&out[j])
			if orden.Descendente {
				return a > b
			}
			return a < b
		})
		return out
	}

	texto, ok := accesoresTexto[orden.Campo]
	if !ok {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(texto(&out[i]))
		b := strings.ToLower(texto(&out[j]))
		if orden.Descendente {
			return a > b
		}
		return a < b
	})
	return out
}

// TotalPaginas calcula ceil(total/porPagina), con mínimo 1 incluso para una
// colección vacía.
func TotalPaginas(total, porPagina int) int {
	if porPagina < 1 {
		porPagina = 1
	}
	paginas := (total + porPagina - 1) / porPagina
	if paginas < 1 {
		return 1
	}
	return paginas
}

// Paginar recorta la ventana visible. La página se acota a [1, TotalPaginas]
// antes de calcular el corte; la ventana se recorta al largo disponible.
func Paginar(regs []domain.Registro, pag domain.Paginacion) ([]domain.Registro, int) {
	porPagina := pag.PorPagina
	if porPagina < 1 {
		porPagina = 1
	}
	paginas := TotalPaginas(len(regs), porPagina)

	pagina := pag.Pagina
	if pagina < 1 {
		pagina = 1
	}
	if pagina > paginas {
		pagina = paginas
	}

	desde := (pagina - 1) * porPagina
	hasta := desde + porPagina
	if desde > len(regs) {
		desde = len(regs)
	}
	if hasta > len(regs) {
		hasta = len(regs)
	}
	return regs[desde:hasta], paginas
}
