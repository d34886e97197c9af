package main

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/shared/middleware"
	"shop-backend/internal/shared/response"
	"shop-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = c.Config.Storage.MaxImageBytes

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		middleware.Metrics(c.Metrics),
	)

	router.GET("/metrics", gin.WrapH(c.Metrics.Handler()))

	api := router.Group("/api")
	auth := middleware.Auth(c.JWTManager)
	admin := []gin.HandlerFunc{auth, middleware.Admin()}

	setupHealthRoutes(api, c)
	setupAuthRoutes(api, c, auth)
	setupUserRoutes(api, c, admin)
	setupCatalogRoutes(api, c, admin)
	setupPromptRoutes(api, c, admin)
	setupCartRoutes(api, c, auth)
	setupOrderRoutes(api, c, auth, admin)
	setupImageRoutes(api, c, auth)
	setupPdfRoutes(api, c, auth, admin)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "No route for "+ctx.Request.Method+" "+ctx.Request.URL.Path)
	})

	return router
}

func setupAuthRoutes(api *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	g := api.Group("/auth")
	g.POST("/login", c.AuthHandler.Login)
	g.POST("/register", c.AuthHandler.Register)
	g.GET("/session", auth, c.AuthHandler.Session)
}

func setupUserRoutes(api *gin.RouterGroup, c *container.Container, admin []gin.HandlerFunc) {
	g := api.Group("/users", admin...)
	g.GET("", c.UserHandler.List)
	g.GET("/:id", c.UserHandler.Get)
	g.POST("", c.UserHandler.Create)
	g.PUT("/:id", c.UserHandler.Update)
	g.DELETE("/:id", c.UserHandler.Delete)
}

// setupCatalogRoutes registers countries, VAT rates, suppliers and
// articles. Reads are public, writes need ADMIN.
func setupCatalogRoutes(api *gin.RouterGroup, c *container.Container, admin []gin.HandlerFunc) {
	countries := api.Group("/countries")
	countries.GET("", c.CountryHandler.List)
	countries.GET("/:id", c.CountryHandler.Get)
	countries.POST("", append(admin, c.CountryHandler.Create)...)
	countries.PUT("/:id", append(admin, c.CountryHandler.Update)...)
	countries.DELETE("/:id", append(admin, c.CountryHandler.Delete)...)

	vat := api.Group("/vat")
	vat.GET("", c.VatHandler.List)
	vat.GET("/default", c.VatHandler.GetDefault)
	vat.GET("/:id", c.VatHandler.Get)
	vat.POST("", append(admin, c.VatHandler.Create)...)
	vat.PUT("/:id", append(admin, c.VatHandler.Update)...)
	vat.DELETE("/:id", append(admin, c.VatHandler.Delete)...)

	suppliers := api.Group("/suppliers")
	suppliers.GET("", c.SupplierHandler.List)
	suppliers.GET("/:id", c.SupplierHandler.Get)
	suppliers.POST("", append(admin, c.SupplierHandler.Create)...)
	suppliers.PUT("/:id", append(admin, c.SupplierHandler.Update)...)
	suppliers.DELETE("/:id", append(admin, c.SupplierHandler.Delete)...)

	articles := api.Group("/articles")
	articles.GET("", c.ArticleHandler.List)
	articles.GET("/export", append(admin, c.ArticleHandler.Export)...)
	articles.GET("/:id", c.ArticleHandler.Get)
	articles.POST("", append(admin, c.ArticleHandler.Create)...)
	articles.PUT("/:id", append(admin, c.ArticleHandler.Update)...)
	articles.DELETE("/:id", append(admin, c.ArticleHandler.Delete)...)
	articles.GET("/:id/mug-variants", c.MugVariantHandler.List)
	articles.POST("/:id/mug-variants", append(admin, c.MugVariantHandler.Create)...)
	articles.PUT("/:id/mug-variants/:variantId", append(admin, c.MugVariantHandler.Update)...)
	articles.DELETE("/:id/mug-variants/:variantId", append(admin, c.MugVariantHandler.Delete)...)

	categories := api.Group("/article-categories")
	categories.GET("", c.ArticleCategoryHandler.List)
	categories.GET("/:id", c.ArticleCategoryHandler.Get)
	categories.GET("/:id/subcategories", c.ArticleCategoryHandler.ListSubcategories)
	categories.POST("", append(admin, c.ArticleCategoryHandler.Create)...)
	categories.PUT("/:id", append(admin, c.ArticleCategoryHandler.Update)...)
	categories.DELETE("/:id", append(admin, c.ArticleCategoryHandler.Delete)...)

	subcategories := api.Group("/article-subcategories")
	subcategories.GET("", c.ArticleCategoryHandler.ListSubcategories)
	subcategories.GET("/:id", c.ArticleCategoryHandler.GetSubcategory)
	subcategories.POST("", append(admin, c.ArticleCategoryHandler.CreateSubcategory)...)
	subcategories.PUT("/:id", append(admin, c.ArticleCategoryHandler.UpdateSubcategory)...)
	subcategories.DELETE("/:id", append(admin, c.ArticleCategoryHandler.DeleteSubcategory)...)
}

func setupPromptRoutes(api *gin.RouterGroup, c *container.Container, admin []gin.HandlerFunc) {
	prompts := api.Group("/prompts")
	prompts.GET("", c.PromptHandler.List)
	prompts.GET("/active", c.PromptHandler.ListActive)
	prompts.GET("/search", c.PromptHandler.Search)
	prompts.GET("/:id", c.PromptHandler.Get)
	prompts.POST("", append(admin, c.PromptHandler.Create)...)
	prompts.PUT("/:id", append(admin, c.PromptHandler.Update)...)
	prompts.DELETE("/:id", append(admin, c.PromptHandler.Delete)...)

	categories := api.Group("/prompt-categories")
	categories.GET("", c.PromptHandler.ListCategories)
	categories.GET("/:id", c.PromptHandler.GetCategory)
	categories.POST("", append(admin, c.PromptHandler.CreateCategory)...)
	categories.PUT("/:id", append(admin, c.PromptHandler.UpdateCategory)...)
	categories.DELETE("/:id", append(admin, c.PromptHandler.DeleteCategory)...)
	categories.GET("/:id/subcategories", c.PromptHandler.ListSubcategories)

	subcategories := api.Group("/prompt-subcategories")
	subcategories.GET("", c.PromptHandler.ListSubcategories)
	subcategories.GET("/:id", c.PromptHandler.GetSubcategory)
	subcategories.POST("", append(admin, c.PromptHandler.CreateSubcategory)...)
	subcategories.PUT("/:id", append(admin, c.PromptHandler.UpdateSubcategory)...)
	subcategories.DELETE("/:id", append(admin, c.PromptHandler.DeleteSubcategory)...)

	slotTypes := api.Group("/prompt-slot-types")
	slotTypes.GET("", c.PromptHandler.ListSlotTypes)
	slotTypes.GET("/:id", c.PromptHandler.GetSlotType)
	slotTypes.GET("/:id/variants", c.PromptHandler.ListSlotVariants)
	slotTypes.POST("", append(admin, c.PromptHandler.CreateSlotType)...)
	slotTypes.PUT("/:id", append(admin, c.PromptHandler.UpdateSlotType)...)
	slotTypes.DELETE("/:id", append(admin, c.PromptHandler.DeleteSlotType)...)

	slotVariants := api.Group("/prompt-slot-variants")
	slotVariants.GET("", c.PromptHandler.ListSlotVariants)
	slotVariants.GET("/:id", c.PromptHandler.GetSlotVariant)
	slotVariants.POST("", append(admin, c.PromptHandler.CreateSlotVariant)...)
	slotVariants.PUT("/:id", append(admin, c.PromptHandler.UpdateSlotVariant)...)
	slotVariants.DELETE("/:id", append(admin, c.PromptHandler.DeleteSlotVariant)...)
}

func setupCartRoutes(api *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	g := api.Group("/cart", auth)
	g.GET("", c.CartHandler.Get)
	g.DELETE("", c.CartHandler.Clear)
	g.GET("/summary", c.CartHandler.Summary)
	g.POST("/items", c.CartHandler.AddItem)
	g.PUT("/items/:id", c.CartHandler.UpdateItem)
	g.DELETE("/items/:id", c.CartHandler.RemoveItem)
}

func setupOrderRoutes(api *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc, admin []gin.HandlerFunc) {
	mine := api.Group("/orders", auth)
	mine.POST("", c.OrderHandler.Create)
	mine.GET("", c.OrderHandler.ListMine)
	mine.GET("/:id", c.OrderHandler.GetMine)

	all := api.Group("/admin/orders", admin...)
	all.GET("", c.OrderHandler.List)
	all.GET("/:id", c.OrderHandler.Get)
	all.PUT("/:id/status", c.OrderHandler.UpdateStatus)
	all.DELETE("/:id", c.OrderHandler.Delete)
}

// Image bytes are public so they can back <img> tags; metadata and
// mutations require a signed-in user.
func setupImageRoutes(api *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	images := api.Group("/images")
	images.GET("/:id/content", c.ImageHandler.Content)

	authed := images.Group("", auth)
	authed.GET("", c.ImageHandler.List)
	authed.GET("/:id", c.ImageHandler.Get)
	authed.POST("", c.ImageHandler.Upload)
	authed.PUT("/:id", c.ImageHandler.Update)
	authed.DELETE("/:id", c.ImageHandler.Delete)
}

func setupPdfRoutes(api *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc, admin []gin.HandlerFunc) {
	pdfs := api.Group("/pdfs", auth)
	pdfs.GET("", c.PdfHandler.List)
	pdfs.GET("/:id", c.PdfHandler.Get)
	pdfs.GET("/:id/content", c.PdfHandler.Content)

	generate := api.Group("/pdfs", admin...)
	generate.POST("/orders/:orderId", c.PdfHandler.GenerateForOrder)
	generate.POST("/articles/:articleId", c.PdfHandler.GenerateForArticle)
	generate.DELETE("/:id", c.PdfHandler.Delete)
}
