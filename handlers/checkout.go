// checkout.go - Checkout, receipt, purchase history and library pages

package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"go-ebook-store/checkout"
	"go-ebook-store/middleware"
	"go-ebook-store/models"
	"go-ebook-store/session"

	"github.com/gin-gonic/gin"
)

type CheckoutInput struct { // Free-form payment metadata; nothing is charged
	TaxID          string `form:"tax_id"`
	Phone          string `form:"phone"`
	PaymentMethod  string `form:"payment_method"`
	DeliverByEmail bool   `form:"deliver_email"`
}

// CheckoutForm shows the cart review and payment form.
func (a *App) CheckoutForm(c *gin.Context) {
	books, ok := a.cartBooks(c)
	if !ok {
		return
	}
	a.render(c, http.StatusOK, "checkout.html", gin.H{"Books": books, "Total": models.SumPrices(books)})
}

// SubmitCheckout records the purchase and redirects to the receipt.
func (a *App) SubmitCheckout(c *gin.Context) {
	sess := middleware.Current(c)
	var input CheckoutInput
	if err := c.ShouldBind(&input); err != nil {
		sess.AddFlash(session.FlashDanger, "Invalid payment details.")
		c.Redirect(http.StatusSeeOther, "/checkout")
		return
	}
	pay := checkout.PaymentDetails{TaxID: input.TaxID, Phone: input.Phone, Method: input.PaymentMethod}

	receipt, err := a.Checkout.Complete(c.Request.Context(), sess, pay, input.DeliverByEmail)
	switch {
	case errors.Is(err, checkout.ErrMissingPayment):
		sess.AddFlash(session.FlashDanger, "Please fill in all payment details.")
		c.Redirect(http.StatusSeeOther, "/checkout")
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		sess.AddFlash(session.FlashInfo, "Your cart is empty.")
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	case errors.Is(err, checkout.ErrNotAuthenticated):
		c.Redirect(http.StatusSeeOther, "/login")
		return
	case err != nil:
		a.serverError(c, err)
		return
	}

	sess.AddFlash(session.FlashSuccess, "Purchase complete!")
	c.Redirect(http.StatusSeeOther, "/receipt?"+receiptQuery(receipt).Encode())
}

// receiptQuery carries the receipt fields as query parameters.
func receiptQuery(r checkout.Receipt) url.Values {
	q := url.Values{}
	q.Set("tax_id", r.Payment.TaxID)
	q.Set("phone", r.Payment.Phone)
	q.Set("payment_method", r.Payment.Method)
	q.Set("total", r.Total.StringFixed(2))
	for _, id := range r.BookIDs {
		q.Add("books", strconv.FormatUint(uint64(id), 10))
	}
	return q
}

// Receipt echoes the submitted payer details, total and books from the
// query string. It does not read the recorded purchase rows.
func (a *App) Receipt(c *gin.Context) {
	var ids []uint
	for _, raw := range c.QueryArray("books") {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			ids = append(ids, uint(id))
		}
	}
	books, err := a.Catalog.FindMany(c.Request.Context(), ids)
	if err != nil {
		a.serverError(c, err)
		return
	}
	a.render(c, http.StatusOK, "receipt.html", gin.H{
		"TaxID":         c.Query("tax_id"),
		"Phone":         c.Query("phone"),
		"PaymentMethod": c.Query("payment_method"),
		"Total":         c.Query("total"),
		"Books":         books,
	})
}

// History lists the logged-in user's purchase history.
func (a *App) History(c *gin.Context) {
	entries, err := a.Purchases.History(c.Request.Context(), middleware.Current(c).UserID)
	if err != nil {
		a.serverError(c, err)
		return
	}
	a.render(c, http.StatusOK, "history.html", gin.H{"Entries": entries})
}

// Library lists the books the logged-in user owns.
func (a *App) Library(c *gin.Context) {
	books, err := a.Purchases.Library(c.Request.Context(), middleware.Current(c).UserID)
	if err != nil {
		a.serverError(c, err)
		return
	}
	a.render(c, http.StatusOK, "library.html", gin.H{"Books": books})
}
