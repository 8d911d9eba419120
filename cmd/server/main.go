package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"time"
	"truthhub/internal/config"
	"truthhub/internal/db"
	"truthhub/internal/handlers"
	"truthhub/internal/middleware"
	"truthhub/internal/services"
	"truthhub/internal/store"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Database
	db.Init(cfg.DatabaseURL)

	// OAuth client
	handlers.InitGoogleOAuth(cfg)

	// Avatar generator
	avatars, err := services.NewAvatarService(cfg.AvatarDir)
	if err != nil {
		log.Fatalf("Failed to prepare avatar directory: %v", err)
	}

	// Stores
	users := store.NewUserStore(db.DB, avatars)
	posts := store.NewPostStore(db.DB)
	ledger := store.NewLikeLedger(db.DB)

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("truthhub_session", sessionStore))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates(cfg.TemplatesDir)

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser())

	// Handlers
	authHandler := handlers.NewAuthHandler(users)
	postHandler := handlers.NewPostHandler(posts)
	likeHandler := handlers.NewLikeHandler(ledger)
	commentHandler := handlers.NewCommentHandler(posts)
	userHandler := handlers.NewUserHandler(users, posts)
	avatarHandler := handlers.NewAvatarHandler(users, avatars)

	// Public Routes
	r.GET("/", postHandler.Home)
	r.GET("/login", authHandler.ShowLogin)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/logout", authHandler.Logout)
	r.GET("/error", func(c *gin.Context) {
		handlers.RenderError(c, http.StatusOK, c.Query("error"))
	})

	r.GET("/auth/google", authHandler.GoogleLogin)
	r.GET("/auth/google/callback", authHandler.GoogleCallback)

	r.GET("/u/:username", userHandler.PublicProfile)
	r.GET("/avatar/:username", avatarHandler.Get)
	r.GET("/comments/:postId", commentHandler.List)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/profile", userHandler.Profile)
		authorized.POST("/posts", postHandler.Create)
		authorized.POST("/delete/:id", postHandler.Delete)
		authorized.POST("/like/:id", likeHandler.Toggle)
		authorized.POST("/comments/:postId", commentHandler.Create)
		authorized.POST("/sort", postHandler.SetSort)
		authorized.POST("/account/delete", userHandler.DeleteAccount)
	}

	log.Printf("Truth Hub server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"eq": func(a, b interface{}) bool {
			return a == b
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			seconds := int(time.Since(timeVal).Seconds())
			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
	}

	// Manual registration to ensure keys match handler expectation
	r.AddFromFilesFuncs("home.html", funcMap, assemble(templatesDir+"/views/home.html")...)
	r.AddFromFilesFuncs("auth/login_register.html", funcMap, assemble(templatesDir+"/views/auth/login_register.html")...)
	r.AddFromFilesFuncs("user/profile.html", funcMap, assemble(templatesDir+"/views/user/profile.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
