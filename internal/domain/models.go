// package domain/models.go
package domain

import "errors"

// Campos requeridos en la primera fila del archivo importado. Los nombres
// coinciden exactamente con los encabezados del Excel de origen.
var CamposRequeridos = []string{
	"Empresa", "Sede", "Fecha Matricula", "Curso",
	"Tipo Documento", "Nro. Documento", "Contratante",
	"Costo Curso", "Comision", "Pendiente", "Pagado",
}

// Registro representa una matrícula de curso ya normalizada. Es inmutable
// una vez construido; el ID sintético se asigna al normalizar y es la
// identidad estable del registro frente a reordenamientos.
type Registro struct {
	ID             string  `json:"id"`
	Empresa        string  `json:"empresa"`
	Sede           string  `json:"sede"`
	FechaMatricula string  `json:"fechaMatricula"`
	Curso          string  `json:"curso"`
	TipoDocumento  string  `json:"tipoDocumento"`
	NroDocumento   string  `json:"nroDocumento"`
	Contratante    string  `json:"contratante"`
	CostoCurso     float64 `json:"costoCurso"`
	Comision       float64 `json:"comision"`
	Pendiente      float64 `json:"pendiente"`
	Pagado         float64 `json:"pagado"`
}

// EstadisticaContratante es el acumulado por contratante sobre la colección
// filtrada. Se recalcula en cada consulta; nunca se guarda ni se muta.
type EstadisticaContratante struct {
	Contratante   string   `json:"contratante"`
	Cantidad      int      `json:"cantidad"`
	TotalCosto    float64  `json:"totalCosto"`
	TotalComision float64  `json:"totalComision"`
	TotalPagado   float64  `json:"totalPagado"`
	Cursos        []string `json:"cursos"`
}

// FiltroCampo identifica un campo filtrable u ordenable del Registro.
type FiltroCampo string

// Campos filtrables/ordenables.
const (
	CampoEmpresa        FiltroCampo = "empresa"
	CampoSede           FiltroCampo = "sede"
	CampoFechaMatricula FiltroCampo = "fechaMatricula"
	CampoCurso          FiltroCampo = "curso"
	CampoTipoDocumento  FiltroCampo = "tipoDocumento"
	CampoNroDocumento   FiltroCampo = "nroDocumento"
	CampoContratante    FiltroCampo = "contratante"
	CampoCostoCurso     FiltroCampo = "costoCurso"
	CampoComision       FiltroCampo = "comision"
	CampoPendiente      FiltroCampo = "pendiente"
	CampoPagado         FiltroCampo = "pagado"
)

// Orden describe el ordenamiento activo de la tabla.
type Orden struct {
	Campo       FiltroCampo `json:"campo"`
	Descendente bool        `json:"descendente"`
}

// Paginacion describe la ventana visible de la tabla.
type Paginacion struct {
	Pagina    int `json:"pagina"`
	PorPagina int `json:"porPagina"`
}

// VistaRegistros es la ventana ordenada y paginada más sus metadatos.
type VistaRegistros struct {
	Registros     []Registro `json:"registros"`
	Total         int        `json:"total"`
	TotalPaginas  int        `json:"totalPaginas"`
	Pagina        int        `json:"pagina"`
	PorPagina     int        `json:"porPagina"`
	Orden         *Orden     `json:"orden,omitempty"`
	IDsExpandidos []string   `json:"idsExpandidos,omitempty"`
}

// Errores recuperables en los límites de importación/exportación. Ninguno
// es fatal para la sesión: el dataset previo sobrevive a un fallo.
var (
	ErrArchivoMuyGrande = errors.New("el archivo es demasiado grande (máximo 5MB)")
	ErrArchivoIlegible  = errors.New("no se pudo leer el archivo")
	ErrSinDatos         = errors.New("el archivo no contiene datos")
	ErrCampoFaltante    = errors.New("el archivo no tiene el campo requerido")
	ErrNadaQueExportar  = errors.New("no hay datos para exportar")
	ErrExportacion      = errors.New("error al exportar los datos")
)
