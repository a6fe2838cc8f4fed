package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"registros-service/internal/api/responses"
	"registros-service/internal/core/registros"
	"registros-service/internal/domain"

	"github.com/gin-gonic/gin"
)

const tipoXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RegistrosHandler atiende las peticiones de la API del panel de registros.
type RegistrosHandler struct {
	service registros.Service
}

// NewRegistrosHandler crea un nuevo handler de registros.
func NewRegistrosHandler(service registros.Service) *RegistrosHandler {
	return &RegistrosHandler{
		service: service,
	}
}

// codigoDeError traduce los errores recuperables del núcleo a códigos HTTP.
func codigoDeError(err error) int {
	switch {
	case errors.Is(err, domain.ErrArchivoMuyGrande):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrArchivoIlegible),
		errors.Is(err, domain.ErrSinDatos),
		errors.Is(err, domain.ErrCampoFaltante):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNadaQueExportar):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleImportar recibe el archivo de planilla y reemplaza la colección de
// la sesión. Un fallo deja el dataset previo intacto.
func (h *RegistrosHandler) HandleImportar(c *gin.Context) {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Archivo de registros (.xls, .xlsx) no encontrado o inválido")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xls" && ext != ".xlsx" {
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Extensión de archivo no soportada: %s", ext))
		return
	}

	if fileHeader.Size > registros.MaxTamArchivo {
		responses.Error(c, http.StatusRequestEntityTooLarge, domain.ErrArchivoMuyGrande.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "No se pudo abrir el archivo")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, domain.ErrArchivoIlegible.Error())
		return
	}

	total, err := h.service.Importar(data)
	if err != nil {
		responses.Error(c, codigoDeError(err), err.Error())
		return
	}

	responses.Success(c, gin.H{"total": total},
		fmt.Sprintf("Datos importados correctamente (%d registros)", total))
}

// HandleVista devuelve la ventana filtrada, ordenada y paginada.
func (h *RegistrosHandler) HandleVista(c *gin.Context) {
	vista := h.service.Vista()
	filtros, filtroContratante := h.service.Filtros()
	responses.Success(c, gin.H{
		"vista":             vista,
		"filtros":           filtros,
		"filtroContratante": filtroContratante,
	}, "")
}

// HandleEstablecerFiltro fija el patrón de un campo filtrable.
func (h *RegistrosHandler) HandleEstablecerFiltro(c *gin.Context) {
	var req struct {
		Campo string `json:"campo" binding:"required"`
		Valor string `json:"valor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Cuerpo de filtro inválido", err.Error())
		return
	}
	if err := h.service.EstablecerFiltro(domain.FiltroCampo(req.Campo), req.Valor); err != nil {
		responses.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	responses.Success(c, nil, "Filtro aplicado")
}

// HandleFiltroContratante fija el filtro dedicado de contratante.
func (h *RegistrosHandler) HandleFiltroContratante(c *gin.Context) {
	var req struct {
		Valor string `json:"valor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Cuerpo de filtro inválido", err.Error())
		return
	}
	h.service.EstablecerFiltroContratante(req.Valor)
	responses.Success(c, nil, "Filtro de contratante aplicado")
}

// HandleLimpiarFiltros vacía todos los filtros en una sola transición.
func (h *RegistrosHandler) HandleLimpiarFiltros(c *gin.Context) {
	h.service.LimpiarFiltros()
	responses.Success(c, nil, "Filtros limpiados correctamente")
}

// HandleOrdenar aplica el ordenamiento; repetir el campo alterna dirección.
func (h *RegistrosHandler) HandleOrdenar(c *gin.Context) {
	var req struct {
		Campo string `json:"campo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Cuerpo de orden inválido", err.Error())
		return
	}
	orden, err := h.service.Ordenar(domain.FiltroCampo(req.Campo))
	if err != nil {
		responses.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	responses.Success(c, orden, "")
}

// HandleCambiarPagina fija la página actual de la tabla.
func (h *RegistrosHandler) HandleCambiarPagina(c *gin.Context) {
	var req struct {
		Pagina int `json:"pagina" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Cuerpo de paginación inválido", err.Error())
		return
	}
	h.service.CambiarPagina(req.Pagina)
	responses.Success(c, nil, "")
}

// HandleCambiarPorPagina fija el tamaño de página y vuelve a la primera.
func (h *RegistrosHandler) HandleCambiarPorPagina(c *gin.Context) {
	var req struct {
		PorPagina int `json:"porPagina" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Cuerpo de paginación inválido", err.Error())
		return
	}
	h.service.CambiarPorPagina(req.PorPagina)
	responses.Success(c, nil, "")
}

// HandleAlternarExpansion alterna el panel de detalle de un registro.
func (h *RegistrosHandler) HandleAlternarExpansion(c *gin.Context) {
	expandido, err := h.service.AlternarExpansion(c.Param("id"))
	if err != nil {
		responses.Error(c, http.StatusNotFound, err.Error())
		return
	}
	responses.Success(c, gin.H{"expandido": expandido}, "")
}

// HandleContratantes devuelve el ranking completo y el corte del gráfico.
func (h *RegistrosHandler) HandleContratantes(c *gin.Context) {
	todos, top := h.service.Contratantes()
	responses.Success(c, gin.H{
		"estadisticas": todos,
		"grafico":      top,
		"disponibles":  h.service.ContratantesDisponibles(),
	}, "")
}

// HandleSugerencia propone el contratante más parecido a la consulta.
func (h *RegistrosHandler) HandleSugerencia(c *gin.Context) {
	consulta := c.Query("q")
	if strings.TrimSpace(consulta) == "" {
		responses.Error(c, http.StatusBadRequest, "Falta el parámetro de consulta 'q'")
		return
	}
	responses.Success(c, gin.H{"sugerencia": h.service.SugerenciaContratante(consulta)}, "")
}

// HandleExportar descarga el libro de registros filtrados más su resumen.
func (h *RegistrosHandler) HandleExportar(c *gin.Context) {
	nombre, datos, err := h.service.ExportarRegistros()
	if err != nil {
		responses.Error(c, codigoDeError(err), err.Error())
		return
	}
	responses.Download(c, nombre, tipoXLSX, datos)
}

// HandleExportarCSV descarga la variante CSV heredada del libro mayor.
func (h *RegistrosHandler) HandleExportarCSV(c *gin.Context) {
	nombre, datos, err := h.service.ExportarRegistrosCSV()
	if err != nil {
		responses.Error(c, codigoDeError(err), err.Error())
		return
	}
	responses.Download(c, nombre, "text/csv; charset=windows-1252", datos)
}

// HandleExportarContratantes descarga el ranking de contratantes en los
// cortes fijos 5/10/15/20/todos.
func (h *RegistrosHandler) HandleExportarContratantes(c *gin.Context) {
	limiteStr := c.DefaultQuery("limite", "todos")

	limite := 0
	if limiteStr != "todos" {
		n, err := strconv.Atoi(limiteStr)
		if err != nil {
			responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Límite inválido: %s", limiteStr))
			return
		}
		valido := false
		for _, corte := range registros.CortesTop {
			if n == corte {
				valido = true
				break
			}
		}
		if !valido {
			responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Límite fuera de los cortes admitidos: %d", n))
			return
		}
		limite = n
	}

	nombre, datos, err := h.service.ExportarContratantes(limite)
	if err != nil {
		responses.Error(c, codigoDeError(err), err.Error())
		return
	}
	responses.Download(c, nombre, tipoXLSX, datos)
}

// HandleLimpiar descarta la colección y las selecciones de la sesión.
func (h *RegistrosHandler) HandleLimpiar(c *gin.Context) {
	h.service.Limpiar()
	responses.Success(c, nil, "Sesión reiniciada")
}
