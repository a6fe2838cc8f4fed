package registros

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"registros-service/internal/domain"

	"github.com/schollz/closestmatch"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AgregarPorContratante agrupa la colección por el texto exacto del
// contratante (sensible a mayúsculas, sin recortes: los nombres se muestran
// tal como vienen del archivo) y acumula cantidad, sumas monetarias y el
// conjunto de cursos distintos. El resultado queda ordenado por cantidad
// descendente; los empates conservan el orden de primera aparición.
func AgregarPorContratante(regs []domain.Registro) []domain.EstadisticaContratante {
	indice := make(map[string]int, len(regs))
	cursosVistos := make(map[string]map[string]bool)
	var stats []domain.EstadisticaContratante

	for i := range regs {
		r := &regs[i]
		pos, ok := indice[r.Contratante]
		if !ok {
			pos = len(stats)
			indice[r.Contratante] = pos
			stats = append(stats, domain.EstadisticaContratante{Contratante: r.Contratante})
			cursosVistos[r.Contratante] = make(map[string]bool)
		}
		e := &stats[pos]
		e.Cantidad++
		e.TotalCosto += r.CostoCurso
		e.TotalComision += r.Comision
		e.TotalPagado += r.Pagado
		if !cursosVistos[r.Contratante][r.Curso] {
			cursosVistos[r.Contratante][r.Curso] = true
			e.Cursos = append(e.Cursos, r.Curso)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Cantidad > stats[j].Cantidad
	})
	return stats
}

// TopContratantes devuelve las primeras n entradas del ranking; n se acota
// a [1, len]. Con n igual al largo se obtiene el ranking completo.
func TopContratantes(stats []domain.EstadisticaContratante, n int) []domain.EstadisticaContratante {
	if len(stats) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > len(stats) {
		n = len(stats)
	}
	return stats[:n]
}

// ContratantesUnicos lista los nombres de contratante distintos en orden de
// primera aparición, para poblar el selector de la interfaz.
func ContratantesUnicos(regs []domain.Registro) []string {
	vistos := make(map[string]bool, len(regs))
	var out []string
	for i := range regs {
		c := regs[i].Contratante
		if !vistos[c] {
			vistos[c] = true
			out = append(out, c)
		}
	}
	return out
}

var noAlfanumerico = regexp.MustCompile(`[^A-Z0-9 ]+`)
var espacios = regexp.MustCompile(`\s+`)

// normalizarTexto lleva un nombre a mayúsculas sin tildes ni puntuación
// para compararlo de forma laxa.
func normalizarTexto(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, _ := transform.String(t, s)
	out = strings.ToUpper(out)
	out = noAlfanumerico.ReplaceAllString(out, " ")
	out = espacios.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// SugerirContratante busca el nombre de contratante más parecido a la
// consulta. Sirve para ofrecer una corrección cuando un filtro de
// contratante no coincide con ningún registro. Devuelve cadena vacía si no
// hay candidato razonable.
func SugerirContratante(regs []domain.Registro, consulta string) string {
	clave := normalizarTexto(consulta)
	if clave == "" {
		return ""
	}

	porClave := make(map[string]string)
	var claves []string
	for _, nombre := range ContratantesUnicos(regs) {
		k := normalizarTexto(nombre)
		if k == "" {
			continue
		}
		if _, ok := porClave[k]; !ok {
			porClave[k] = nombre
			claves = append(claves, k)
		}
	}
	if len(claves) == 0 {
		return ""
	}

	if nombre, ok := porClave[clave]; ok {
		return nombre
	}

	cm := closestmatch.New(claves, []int{3, 4})
	if m := cm.Closest(clave); m != "" {
		return porClave[m]
	}
	return ""
}
