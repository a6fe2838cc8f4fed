// cmd/registros/main.go
package main

import (
	"log"

	"registros-service/internal/api/handlers"
	"registros-service/internal/api/responses"
	"registros-service/internal/core/registros"

	"github.com/gin-gonic/gin"
)

func main() {
	responses.InitLogger()

	registrosService := registros.NewService()
	registrosHandler := handlers.NewRegistrosHandler(registrosService)

	router := gin.Default()

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/registros/importar", registrosHandler.HandleImportar)
		apiV1.GET("/registros", registrosHandler.HandleVista)
		apiV1.DELETE("/registros", registrosHandler.HandleLimpiar)

		apiV1.PUT("/registros/filtros", registrosHandler.HandleEstablecerFiltro)
		apiV1.DELETE("/registros/filtros", registrosHandler.HandleLimpiarFiltros)
		apiV1.PUT("/registros/filtro-contratante", registrosHandler.HandleFiltroContratante)

		apiV1.POST("/registros/orden", registrosHandler.HandleOrdenar)
		apiV1.PUT("/registros/pagina", registrosHandler.HandleCambiarPagina)
		apiV1.PUT("/registros/por-pagina", registrosHandler.HandleCambiarPorPagina)
		apiV1.POST("/registros/:id/expandir", registrosHandler.HandleAlternarExpansion)

		apiV1.GET("/contratantes", registrosHandler.HandleContratantes)
		apiV1.GET("/contratantes/sugerencia", registrosHandler.HandleSugerencia)

		apiV1.GET("/registros/exportar", registrosHandler.HandleExportar)
		apiV1.GET("/registros/exportar-csv", registrosHandler.HandleExportarCSV)
		apiV1.GET("/contratantes/exportar", registrosHandler.HandleExportarContratantes)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "registros-service"})
	})

	const port = "8084"
	log.Printf("🚀 Registros Service (Go) iniciado y escuchando en el puerto %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Fallo al iniciar el servidor de registros: ", err)
	}
}
