package registros

import (
	"fmt"
	"sync"
	"time"

	"registros-service/internal/domain"
)

// Service es la superficie que la capa HTTP consume: el estado de la sesión
// (colección de registros más selecciones transitorias) y las vistas
// derivadas, que son funciones puras de ese estado y se recalculan en cada
// consulta.
type Service interface {
	Importar(data []byte) (int, error)
	Limpiar()

	Vista() domain.VistaRegistros
	Registros() []domain.Registro
	Filtros() (map[domain.FiltroCampo]string, string)

	EstablecerFiltro(campo domain.FiltroCampo, valor string) error
	EstablecerFiltroContratante(valor string)
	LimpiarFiltros()

	Ordenar(campo domain.FiltroCampo) (domain.Orden, error)
	CambiarPagina(pagina int)
	CambiarPorPagina(porPagina int)
	AlternarExpansion(id string) (bool, error)

	Contratantes() (todos, top []domain.EstadisticaContratante)
	ContratantesDisponibles() []string
	SugerenciaContratante(consulta string) string

	ExportarRegistros() (string, []byte, error)
	ExportarRegistrosCSV() (string, []byte, error)
	ExportarContratantes(limite int) (string, []byte, error)
}

// CortesTop son los cortes fijos admitidos para el ranking exportable; 0
// significa "todos".
var CortesTop = []int{5, 10, 15, 20}

// topGrafico es el corte del gráfico del dashboard.
const topGrafico = 10

type service struct {
	mu sync.RWMutex

	registros         []domain.Registro
	filtros           map[domain.FiltroCampo]string
	filtroContratante string
	orden             *domain.Orden
	pagina            int
	porPagina         int
	expandidos        map[string]bool
}

// NewService crea la sesión vacía con la paginación por defecto.
func NewService() Service {
	return &service{
		filtros:    make(map[domain.FiltroCampo]string),
		pagina:     1,
		porPagina:  10,
		expandidos: make(map[string]bool),
	}
}

// Importar reemplaza la colección de la sesión con el contenido del archivo.
// Cualquier fallo deja el estado previo intacto.
func (s *service) Importar(data []byte) (int, error) {
	if len(data) > MaxTamArchivo {
		return 0, domain.ErrArchivoMuyGrande
	}

	filas, err := leerFilas(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrArchivoIlegible, err)
	}
	crudas := filasAMapa(filas)
	if len(crudas) == 0 {
		return 0, domain.ErrSinDatos
	}
	if err := VerificarCamposRequeridos(crudas[0]); err != nil {
		return 0, err
	}
	nuevos := NormalizarLote(crudas)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.registros = nuevos
	s.pagina = 1
	s.expandidos = make(map[string]bool)
	return len(nuevos), nil
}

// Limpiar descarta la colección y todas las selecciones transitorias.
func (s *service) Limpiar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registros = nil
	s.filtros = make(map[domain.FiltroCampo]string)
	s.filtroContratante = ""
	s.orden = nil
	s.pagina = 1
	s.expandidos = make(map[string]bool)
}

func (s *service) filtradosLocked() []domain.Registro {
	return AplicarFiltros(s.registros, s.filtros, s.filtroContratante)
}

// Vista produce la ventana ordenada y paginada de la colección filtrada,
// junto con sus metadatos de paginación y los IDs expandidos visibles.
func (s *service) Vista() domain.VistaRegistros {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtrados := s.filtradosLocked()
	ordenados := OrdenarRegistros(filtrados, s.orden)
	ventana, paginas := Paginar(ordenados, domain.Paginacion{Pagina: s.pagina, PorPagina: s.porPagina})

	var expandidos []string
	for i := range ventana {
		if s.expandidos[ventana[i].ID] {
			expandidos = append(expandidos, ventana[i].ID)
		}
	}

	pagina := s.pagina
	if pagina > paginas {
		pagina = paginas
	}
	var orden *domain.Orden
	if s.orden != nil {
		o := *s.orden
		orden = &o
	}
	return domain.VistaRegistros{
		Registros:     ventana,
		Total:         len(filtrados),
		TotalPaginas:  paginas,
		Pagina:        pagina,
		PorPagina:     s.porPagina,
		Orden:         orden,
		IDsExpandidos: expandidos,
	}
}

// Registros devuelve la colección completa de la sesión.
func (s *service) Registros() []domain.Registro {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Registro, len(s.registros))
	copy(out, s.registros)
	return out
}

// Filtros devuelve los filtros activos.
func (s *service) Filtros() (map[domain.FiltroCampo]string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[domain.FiltroCampo]string, len(s.filtros))
	for k, v := range s.filtros {
		out[k] = v
	}
	return out, s.filtroContratante
}

// EstablecerFiltro fija el patrón de un campo; un valor vacío levanta la
// restricción sobre ese campo.
func (s *service) EstablecerFiltro(campo domain.FiltroCampo, valor string) error {
	if !CampoValido(campo) {
		return fmt.Errorf("campo de filtro desconocido: %s", campo)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if valor == "" {
		delete(s.filtros, campo)
	} else {
		s.filtros[campo] = valor
	}
	s.pagina = 1
	return nil
}

// EstablecerFiltroContratante fija el filtro dedicado del dashboard.
func (s *service) EstablecerFiltroContratante(valor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtroContratante = valor
	s.pagina = 1
}

// LimpiarFiltros vacía los filtros por campo y el de contratante en una
// sola transición.
func (s *service) LimpiarFiltros() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtros = make(map[domain.FiltroCampo]string)
	s.filtroContratante = ""
	s.pagina = 1
}

// Ordenar fija el ordenamiento. Repetir el campo vigente alterna la
// dirección; un campo nuevo comienza ascendente.
func (s *service) Ordenar(campo domain.FiltroCampo) (domain.Orden, error) {
	if !CampoValido(campo) {
		return domain.Orden{}, fmt.Errorf("campo de orden desconocido: %s", campo)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	descendente := s.orden != nil && s.orden.Campo == campo && !s.orden.Descendente
	s.orden = &domain.Orden{Campo: campo, Descendente: descendente}
	return *s.orden, nil
}

// CambiarPagina fija la página actual; el límite superior se acota al leer
// la vista.
func (s *service) CambiarPagina(pagina int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pagina < 1 {
		pagina = 1
	}
	s.pagina = pagina
}

// CambiarPorPagina fija el tamaño de página y vuelve a la primera.
func (s *service) CambiarPorPagina(porPagina int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if porPagina < 1 {
		porPagina = 1
	}
	s.porPagina = porPagina
	s.pagina = 1
}

// AlternarExpansion alterna el panel de detalle de un registro, identificado
// por su ID estable para que sobreviva a reordenamientos. Devuelve el nuevo
// estado.
func (s *service) AlternarExpansion(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existe := false
	for i := range s.registros {
		if s.registros[i].ID == id {
			existe = true
			break
		}
	}
	if !existe {
		return false, fmt.Errorf("registro desconocido: %s", id)
	}
	if s.expandidos[id] {
		delete(s.expandidos, id)
		return false, nil
	}
	s.expandidos[id] = true
	return true, nil
}

// Contratantes devuelve el ranking completo sobre la colección filtrada y
// el corte del gráfico. Siempre se recalcula; el costo es lineal.
func (s *service) Contratantes() (todos, top []domain.EstadisticaContratante) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	todos = AgregarPorContratante(s.filtradosLocked())
	top = TopContratantes(todos, topGrafico)
	return todos, top
}

// ContratantesDisponibles lista los contratantes distintos de toda la
// colección, sin filtrar, para el selector de la interfaz.
func (s *service) ContratantesDisponibles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ContratantesUnicos(s.registros)
}

// SugerenciaContratante propone el contratante más parecido a la consulta.
func (s *service) SugerenciaContratante(consulta string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SugerirContratante(s.registros, consulta)
}

// ExportarRegistros genera el libro de registros filtrados más su resumen.
func (s *service) ExportarRegistros() (string, []byte, error) {
	s.mu.RLock()
	filtrados := s.filtradosLocked()
	s.mu.RUnlock()

	datos, err := ExportarRegistros(filtrados)
	if err != nil {
		return "", nil, err
	}
	return NombreArchivoRegistros(time.Now()), datos, nil
}

// ExportarRegistrosCSV genera la variante CSV heredada del mismo libro.
func (s *service) ExportarRegistrosCSV() (string, []byte, error) {
	s.mu.RLock()
	filtrados := s.filtradosLocked()
	s.mu.RUnlock()

	datos, err := ExportarRegistrosCSV(filtrados)
	if err != nil {
		return "", nil, err
	}
	return NombreArchivoRegistrosCSV(time.Now()), datos, nil
}

// ExportarContratantes genera el ranking exportable hasta el corte pedido;
// limite 0 exporta el ranking completo.
func (s *service) ExportarContratantes(limite int) (string, []byte, error) {
	s.mu.RLock()
	stats := AgregarPorContratante(s.filtradosLocked())
	s.mu.RUnlock()

	n := limite
	if n <= 0 || n > len(stats) {
		n = len(stats)
	}
	datos, err := ExportarContratantes(stats, n, time.Now())
	if err != nil {
		return "", nil, err
	}
	return NombreArchivoContratantes(time.Now()), datos, nil
}
