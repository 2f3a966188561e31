// user.go - Handles user registration, login and logout

package handlers // Declares the package name

import ( // Import required packages
	"errors"
	"net/http" // HTTP status codes

	"go-ebook-store/database"   // Account store
	"go-ebook-store/middleware" // Current session
	"go-ebook-store/session"    // Flash kinds

	"github.com/gin-gonic/gin" // Gin web framework
)

type RegisterInput struct { // Struct for registration form input
	Name     string `form:"name" binding:"required"`        // Display name (required)
	Email    string `form:"email" binding:"required,email"` // Email (required)
	Password string `form:"password" binding:"required"`    // Password (required)
}

type LoginInput struct { // Struct for login form input
	Email    string `form:"email" binding:"required"`    // Email (required)
	Password string `form:"password" binding:"required"` // Password (required)
}

// Messages shown to the visitor
const (
	msgRegistered         = "Registration complete! You can now log in."
	msgEmailTaken         = "E-mail already registered!"
	msgPasswordTooLong    = "Password is too long (at most 72 bytes)."
	msgRegisterIncomplete = "Please fill in name, a valid e-mail and password."
	msgInvalidCredentials = "Invalid credentials!"
	msgLoggedOut          = "You have logged out."
)

func (a *App) RegisterForm(c *gin.Context) { // Renders the registration page
	a.render(c, http.StatusOK, "register.html", nil)
}

func (a *App) Register(c *gin.Context) { // Handler for user registration
	sess := middleware.Current(c)
	var input RegisterInput                      // Declare input variable
	if err := c.ShouldBind(&input); err != nil { // Parse form input
		sess.AddFlash(session.FlashDanger, msgRegisterIncomplete)
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}
	_, err := a.Accounts.Register(c.Request.Context(), input.Name, input.Email, input.Password) // Save user to DB
	if errors.Is(err, database.ErrEmailTaken) {                                                 // Duplicate e-mail is a user error
		sess.AddFlash(session.FlashDanger, msgEmailTaken)
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}
	if errors.Is(err, database.ErrPasswordTooLong) {
		sess.AddFlash(session.FlashDanger, msgPasswordTooLong)
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}
	if err != nil {
		a.serverError(c, err)
		return
	}
	sess.AddFlash(session.FlashSuccess, msgRegistered)
	c.Redirect(http.StatusSeeOther, "/login") // Success: go log in
}

func (a *App) LoginForm(c *gin.Context) { // Renders the login page
	a.render(c, http.StatusOK, "login.html", nil)
}

func (a *App) Login(c *gin.Context) { // Handler for user login
	sess := middleware.Current(c)
	var input LoginInput                         // Declare input variable
	if err := c.ShouldBind(&input); err != nil { // Parse form input
		sess.AddFlash(session.FlashDanger, msgInvalidCredentials)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	user, err := a.Accounts.Authenticate(c.Request.Context(), input.Email, input.Password)
	if errors.Is(err, database.ErrInvalidCredentials) { // Same message for unknown e-mail and wrong password
		sess.AddFlash(session.FlashDanger, msgInvalidCredentials)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if err != nil {
		a.serverError(c, err)
		return
	}
	if err := middleware.Renew(c); err != nil { // Fresh session ID for the authenticated user
		a.serverError(c, err)
		return
	}
	sess.Login(user.ID, user.Name, user.Email) // Session now carries the user
	c.Redirect(http.StatusSeeOther, "/library")
}

func (a *App) Logout(c *gin.Context) { // Discards all session state
	sess := middleware.Current(c)
	sess.Reset()
	sess.AddFlash(session.FlashInfo, msgLoggedOut)
	c.Redirect(http.StatusSeeOther, "/")
}
