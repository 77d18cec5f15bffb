package handlers

import (
	"github.com/gin-gonic/gin"

	"cestas/internal/middleware"
	"cestas/internal/service"
)

// Services bundles everything the HTTP surface calls into. Uploader may be
// nil when no object storage is configured.
type Services struct {
	Comandas    *service.ComandaService
	Surveys     *service.SurveyService
	Links       *service.LinkService
	PreCheckIns *service.PreCheckInService
	Stock       *service.StockService
	Catalog     *service.CatalogService
	Auth        *service.AuthService
	Dashboard   *service.DashboardService
	Uploader    Uploader
	DB          Pinger
}

// RegisterRoutes mounts the API under /api plus /healthz at the root. Guest
// facing routes are public; everything operated from the back office sits
// behind the admin guard.
func RegisterRoutes(r *gin.Engine, s Services, jwtSecret string) {
	admin := middleware.AdminAuth(jwtSecret)

	if s.DB != nil {
		r.GET("/healthz", Health(s.DB))
	}

	api := r.Group("/api")

	api.POST("/admin/login", AdminLogin(s.Auth))
	api.POST("/admin/admins", admin, CreateAdmin(s.Auth))
	api.GET("/admin/dashboard", admin, Dashboard(s.Dashboard))
	api.GET("/admin/estoque-stats", admin, StockStats(s.Stock))

	api.GET("/comandas", admin, ListComandas(s.Comandas))
	api.POST("/comandas", admin, CreateComanda(s.Comandas))
	api.PATCH("/comandas/:id", admin, UpdateComanda(s.Comandas))
	api.GET("/validate-token/:token", ValidateToken(s.Comandas))

	api.GET("/surveys/active", GetActiveSurvey(s.Surveys))
	api.GET("/surveys/links", admin, ListSurveyLinks(s.Links))
	api.POST("/surveys/links", admin, RecordSurveyLink(s.Links))
	api.GET("/surveys", admin, ListSurveys(s.Surveys))
	api.POST("/surveys", admin, CreateSurvey(s.Surveys))
	api.GET("/surveys/:id", GetSurvey(s.Surveys))
	api.PUT("/surveys/:id", admin, UpdateSurvey(s.Surveys))
	api.DELETE("/surveys/:id", admin, DeleteSurvey(s.Surveys))
	api.GET("/surveys/:id/results", admin, SurveyResults(s.Surveys))
	api.GET("/surveys/:id/export", admin, ExportSurvey(s.Surveys))
	api.POST("/surveys/:id/questions", admin, AddQuestion(s.Surveys))
	api.PUT("/surveys/:id/questions/:questionId", admin, UpdateQuestion(s.Surveys))
	api.DELETE("/surveys/:id/questions/:questionId", admin, DeleteQuestion(s.Surveys))
	api.POST("/responses", SubmitResponse(s.Surveys))

	api.POST("/pre-check-in", SubmitPreCheckIn(s.PreCheckIns))
	api.GET("/pre-check-in/list", admin, ListPreCheckIns(s.PreCheckIns))
	api.PATCH("/pre-check-in/:id", admin, UpdatePreCheckInStatus(s.PreCheckIns))

	estoque := api.Group("/estoque", admin)
	{
		estoque.GET("/pedidos", ListStockOrders(s.Stock))
		estoque.POST("/pedidos", SubmitStockOrder(s.Stock))
		estoque.GET("/dados-formulario", StockFormData(s.Stock))
		estoque.GET("/itens", ListStockItems(s.Stock))
		estoque.POST("/itens", CreateStockItem(s.Stock))
		estoque.DELETE("/itens", DeleteStockItem(s.Stock))
		estoque.GET("/fornecedores", ListSuppliers(s.Stock))
		estoque.POST("/fornecedores", CreateSupplier(s.Stock))
		estoque.DELETE("/fornecedores", DeleteSupplier(s.Stock))
	}

	api.GET("/locations/countries", ListCountries(s.Catalog))
	api.POST("/locations/countries", admin, CreateCountry(s.Catalog))
	api.GET("/locations/states", ListStates(s.Catalog))
	api.POST("/locations/states", admin, CreateState(s.Catalog))
	api.GET("/locations/cities", ListCities(s.Catalog))
	api.POST("/locations/cities", admin, CreateCity(s.Catalog))

	api.GET("/cabanas", ListCabins(s.Catalog))
	api.POST("/cabanas", admin, CreateCabin(s.Catalog))
	api.PATCH("/cabanas/:id", admin, UpdateCabin(s.Catalog))
	api.DELETE("/cabanas/:id", admin, DeleteCabin(s.Catalog))

	api.GET("/settings/:key", GetSettings(s.Catalog))
	api.PUT("/settings/:key", admin, UpdateSettings(s.Catalog))

	api.POST("/upload", admin, Upload(s.Uploader))
}
