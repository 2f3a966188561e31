// router.go - Route table for the storefront

package handlers

import (
	"net/http"

	"go-ebook-store/middleware"
	"go-ebook-store/session"

	"github.com/gin-gonic/gin"
)

// RouterConfig wires the router's infrastructure.
type RouterConfig struct {
	Sessions  session.Store
	Codec     *session.Codec
	StaticDir string // served under /static when set
}

// NewRouter builds the gin engine with every storefront route.
func NewRouter(app *App, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog())
	r.SetHTMLTemplate(loadTemplates())
	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Everything below carries a server-side session
	site := r.Group("/")
	site.Use(middleware.Sessions(cfg.Sessions, cfg.Codec))
	{
		site.GET("/", app.Index)
		site.GET("/search", app.Search)
		site.GET("/preview/:id", app.Preview)
		site.GET("/read/:id", app.Read)

		site.GET("/register", app.RegisterForm)
		site.POST("/register", app.Register)
		site.GET("/login", app.LoginForm)
		site.POST("/login", app.Login)
		site.GET("/logout", app.Logout)

		site.POST("/cart/add/:id", app.AddToCart)
		site.GET("/cart/remove/:id", app.RemoveFromCart)
		site.GET("/cart", app.ViewCart)
		site.GET("/receipt", app.Receipt)
	}

	// Login-gated pages
	account := site.Group("/")
	account.Use(middleware.RequireLogin())
	{
		account.GET("/checkout", app.CheckoutForm)
		account.POST("/checkout/submit", app.SubmitCheckout)
		account.GET("/history", app.History)
		account.GET("/library", app.Library)
	}

	r.NoRoute(middleware.Sessions(cfg.Sessions, cfg.Codec), app.notFound)
	return r
}
