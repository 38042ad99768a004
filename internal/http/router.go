package api

import (
	"context"
	"database/sql"
	"log"
	stdhttp "net/http"

	"blogapi/internal/auth"
	intconfig "blogapi/internal/config"
	"blogapi/internal/domain"
	h "blogapi/internal/http/handlers"
	"blogapi/internal/http/middleware"
	"blogapi/internal/repositories"
	"blogapi/internal/services"

	"github.com/gin-gonic/gin"
)

// userDirectory adapts the user repository to the authenticator's
// lookup contract.
type userDirectory struct {
	users repositories.UserRepository
}

func (d userDirectory) FindByUUID(ctx context.Context, uuid string) (auth.DirectoryUser, error) {
	u, err := d.users.FindByUUID(ctx, uuid)
	if err != nil {
		return auth.DirectoryUser{}, err
	}
	return auth.DirectoryUser{
		UUID:     u.UUID,
		Email:    u.Email,
		Role:     domain.Role(u.Role),
		IsActive: u.IsActive,
	}, nil
}

func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	h.SetDevMode(env.DevMode)

	codec := auth.NewCodec(auth.Config{Secret: []byte(env.JWTSecret), TTL: env.JWTTTL})
	users := repositories.UserRepository{DB: db}
	posts := repositories.PostRepository{DB: db}
	comments := repositories.CommentRepository{DB: db}
	categories := repositories.CategoryRepository{DB: db}
	profiles := repositories.ProfileRepository{DB: db}

	authn := auth.Authenticator{Codec: codec, Users: userDirectory{users: users}}
	authed := middleware.Authenticate(authn)
	maybeAuthed := middleware.AuthenticateOptional(authn)

	authHandler := h.AuthHandler{Users: users, Codec: codec}
	userHandler := h.UserHandler{Users: users}
	postHandler := h.PostHandler{Posts: posts, Users: users, Docs: services.DocsService{Posts: posts}}
	commentHandler := h.CommentHandler{Comments: comments, Posts: posts, Users: users}
	categoryHandler := h.CategoryHandler{Categories: categories}
	profileHandler := h.ProfileHandler{Profiles: profiles, Users: users}
	systemHandler := h.SystemHandler{DB: db}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"status":  "EntityNotFound",
			"message": "Route " + c.Request.Method + " " + c.Request.URL.Path + " not found",
			"errors":  []string{},
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", systemHandler.Health)
		api.GET("/db-check", systemHandler.DBCheck)

		// Auth
		authRoutes := api.Group("/auth")
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/register", authHandler.Register)

		// Users (admin), plus self-deactivation for any signed-in role
		usersRoutes := api.Group("/users")
		usersRoutes.DELETE("/me", authed, userHandler.DeactivateMe)
		usersRoutes.GET("", authed, middleware.RequireRoles(domain.RoleAdmin), userHandler.List)
		usersRoutes.GET("/:id", authed, middleware.RequireRoles(domain.RoleAdmin), userHandler.GetByID)
		usersRoutes.POST("", authed, middleware.RequireRoles(domain.RoleAdmin), userHandler.Create)
		usersRoutes.PUT("/:id", authed, middleware.RequireRoles(domain.RoleAdmin), userHandler.Update)
		usersRoutes.DELETE("/:id", authed, middleware.RequireRoles(domain.RoleAdmin), userHandler.Delete)

		// Profiles
		profilesRoutes := api.Group("/profiles")
		profilesRoutes.GET("/me", authed, profileHandler.Me)
		profilesRoutes.PUT("/me", authed, profileHandler.UpdateMe)

		// Posts
		postsRoutes := api.Group("/posts")
		postsRoutes.GET("", maybeAuthed, postHandler.List)
		postsRoutes.GET("/:id", maybeAuthed, postHandler.GetByID)
		postsRoutes.GET("/:id/pdf", maybeAuthed, postHandler.ExportPDF)
		postsRoutes.POST("", authed, middleware.RequireRoles(domain.RoleAdmin, domain.RoleEditor), postHandler.Create)
		postsRoutes.PUT("/:id", authed, middleware.RequireRoles(domain.RoleAdmin, domain.RoleEditor), postHandler.Update)
		postsRoutes.DELETE("/:id", authed, middleware.RequireRoles(domain.RoleAdmin), postHandler.Delete)

		// Comments
		postsRoutes.GET("/:id/comments", commentHandler.ListByPost)
		postsRoutes.POST("/:id/comments", authed, middleware.RequireRoles(domain.RoleUser, domain.RoleEditor, domain.RoleAdmin), commentHandler.Create)
		commentsRoutes := api.Group("/comments")
		commentsRoutes.PUT("/:id", authed, middleware.RequireRoles(domain.RoleUser, domain.RoleEditor, domain.RoleAdmin), commentHandler.Update)
		commentsRoutes.DELETE("/:id", authed, middleware.RequireRoles(domain.RoleAdmin), commentHandler.Delete)

		// Categories
		categoriesRoutes := api.Group("/categories")
		categoriesRoutes.GET("", categoryHandler.List)
		categoriesRoutes.GET("/:id", categoryHandler.GetByID)
		categoriesRoutes.POST("", authed, middleware.RequireRoles(domain.RoleAdmin), categoryHandler.Create)
		categoriesRoutes.PUT("/:id", authed, middleware.RequireRoles(domain.RoleAdmin), categoryHandler.Update)
		categoriesRoutes.DELETE("/:id", authed, middleware.RequireRoles(domain.RoleAdmin), categoryHandler.Delete)
	}

	return r
}
