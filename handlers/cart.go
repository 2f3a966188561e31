// cart.go - Session cart pages

package handlers

import (
	"errors"
	"net/http"

	"go-ebook-store/database"
	"go-ebook-store/middleware"
	"go-ebook-store/models"
	"go-ebook-store/session"

	"github.com/gin-gonic/gin"
)

// AddToCart puts an existing book into the session cart.
func (a *App) AddToCart(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		a.notFound(c)
		return
	}
	// Only IDs that exist right now may enter the cart
	if _, err := a.Catalog.Find(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrBookNotFound) {
			a.notFound(c)
			return
		}
		a.serverError(c, err)
		return
	}
	sess := middleware.Current(c)
	if sess.Cart.Add(id) {
		sess.AddFlash(session.FlashSuccess, "Book added to cart!")
	} else {
		sess.AddFlash(session.FlashInfo, "This book is already in your cart.")
	}
	c.Redirect(http.StatusSeeOther, backTo(c, "/"))
}

// RemoveFromCart drops a book from the cart; unknown IDs are ignored.
func (a *App) RemoveFromCart(c *gin.Context) {
	if id, ok := bookID(c); ok {
		middleware.Current(c).Cart.Remove(id)
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// ViewCart lists the cart's books and total.
func (a *App) ViewCart(c *gin.Context) {
	books, ok := a.cartBooks(c)
	if !ok {
		return
	}
	a.render(c, http.StatusOK, "cart.html", gin.H{"Books": books, "Total": models.SumPrices(books)})
}

// cartBooks resolves the current cart, rendering an error page on failure.
func (a *App) cartBooks(c *gin.Context) ([]models.Book, bool) {
	books, err := middleware.Current(c).Cart.Resolve(c.Request.Context(), a.Catalog)
	if err != nil {
		a.serverError(c, err)
		return nil, false
	}
	return books, true
}
