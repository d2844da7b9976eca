package handlers

import (
	"net/http"

	"recipe-share/helper"
	"recipe-share/middleware"
	"recipe-share/services"

	"github.com/gin-gonic/gin"
)

// Router bundles what NewRouter needs to mount the API.
type Router struct {
	Helper    *helper.HTTPHelper
	Tokens    services.TokenService
	RateLimit gin.HandlerFunc
	Logger    gin.HandlerFunc

	Users   *UserHandler
	Admin   *AdminHandler
	Recipes *RecipeHandler
	Groups  *GroupHandler
	Posts   *PostHandler
	Covers  *CoverHandler
}

func NewRouter(r Router) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if r.Logger != nil {
		router.Use(r.Logger)
	}
	rateLimit := r.RateLimit
	if rateLimit == nil {
		rateLimit = func(c *gin.Context) { c.Next() }
	}

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.NoRoute(func(c *gin.Context) {
		r.Helper.SendError(c, http.StatusNotFound, "Not Found", nil)
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		r.Helper.SendSuccess(c, gin.H{"status": "healthy"})
	})

	requireIdentity := middleware.RequireIdentity(r.Tokens, r.Helper)
	optionalIdentity := middleware.OptionalIdentity(r.Tokens, r.Helper)

	api := router.Group("/api")

	user := api.Group("/user")
	{
		user.POST("/login", rateLimit, r.Users.Login)
		user.POST("/token", rateLimit, r.Users.Token)
		user.PUT("/create", rateLimit, r.Users.Create)
		user.GET("/pubkey", r.Users.PublicKey)

		me := user.Group("", requireIdentity)
		{
			me.GET("/info", r.Users.Info)
			me.GET("/logout", r.Users.Logout)
			me.POST("/update", r.Users.Update)
			me.GET("/tokens", r.Users.Sessions)
			me.DELETE("/tokens/:id", r.Users.RevokeSession)
		}

		admin := user.Group("/admin", requireIdentity, middleware.RequireLevel(services.AdminLevel, r.Helper))
		{
			admin.GET("/all-users", r.Admin.ListUsers)
			admin.POST("/update", r.Admin.UpdateUser)
			admin.DELETE("/:uid", r.Admin.DeleteUser)
			admin.POST("/revoke-tokens", r.Admin.RevokeTokens)
		}
	}

	recipe := api.Group("/recipe")
	{
		public := recipe.Group("", optionalIdentity)
		{
			public.GET("/list", r.Recipes.List)
			public.GET("/item", r.Recipes.Get)
			public.GET("/cover", r.Covers.Download)
			public.GET("/group/list", r.Groups.List)
			public.GET("/group/recipes", r.Groups.Recipes)
			public.GET("/group/children", r.Groups.Children)
		}

		owner := recipe.Group("", requireIdentity)
		{
			owner.PUT("/create", r.Recipes.Create)
			owner.POST("/update", r.Recipes.Update)
			owner.DELETE("/item", r.Recipes.Delete)

			owner.PUT("/ingredient/create", r.Recipes.CreateIngredient)
			owner.POST("/ingredient/update", r.Recipes.UpdateIngredient)
			owner.DELETE("/ingredient", r.Recipes.DeleteIngredient)

			owner.PUT("/step/create", r.Recipes.CreateStep)
			owner.POST("/step/update", r.Recipes.UpdateStep)
			owner.DELETE("/step", r.Recipes.DeleteStep)

			owner.PUT("/comment/create", r.Recipes.CreateComment)
			owner.DELETE("/comment", r.Recipes.DeleteComment)

			owner.POST("/cover", r.Covers.Upload)
			owner.GET("/cover/list", r.Covers.List)

			owner.POST("/group/create", r.Groups.Create)
			owner.POST("/group/update", r.Groups.Update)
			owner.DELETE("/group/item", r.Groups.Delete)
		}
	}

	posts := api.Group("/posts")
	{
		posts.GET("/all", optionalIdentity, r.Posts.List)
		posts.GET("/:pid", optionalIdentity, r.Posts.Get)
		posts.PUT("/create", requireIdentity, r.Posts.Create)
		posts.POST("/update", requireIdentity, r.Posts.Update)
		posts.DELETE("/:pid", requireIdentity, r.Posts.Delete)
	}

	return router
}
