package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/SscSPs/loan_tracker/internal/apperrors"
	"github.com/SscSPs/loan_tracker/internal/cache"
	portssvc "github.com/SscSPs/loan_tracker/internal/core/ports/services"
	"github.com/SscSPs/loan_tracker/internal/dto"
	"github.com/SscSPs/loan_tracker/internal/middleware"
	"github.com/SscSPs/loan_tracker/internal/validation"
	"github.com/gin-gonic/gin"
)

const (
	htmlContentType = "text/html; charset=utf-8"
	cacheHeader     = "X-Cache"

	msgLoadLoansFailed = "Failed to load loans. Please try again."
	msgLoadLoanFailed  = "Failed to load loan. Please try again."
	msgSaveLoanFailed  = "Failed to save loan. Please try again."
	msgUnexpected      = "An unexpected error occurred. Please try again."
)

// defaultRenderer is shared by page handlers and the panic page; templates
// are embedded so parsing cannot fail at runtime.
var defaultRenderer = newPageRenderer()

// pageHandler serves the server-rendered loan pages.
type pageHandler struct {
	loanService portssvc.LoanSvcFacade
	views       cache.ViewCache
	renderer    *pageRenderer
}

func newPageHandler(ls portssvc.LoanSvcFacade, views cache.ViewCache) *pageHandler {
	if views == nil {
		views = cache.Disabled{}
	}
	return &pageHandler{loanService: ls, views: views, renderer: defaultRenderer}
}

// RegisterPageRoutes registers the HTML routes. Form posts are wrapped in the
// given middleware (rate limiting).
func RegisterPageRoutes(r gin.IRoutes, loanService portssvc.LoanSvcFacade, views cache.ViewCache, mutation ...gin.HandlerFunc) {
	h := newPageHandler(loanService, views)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/loans") })
	r.GET("/loans", h.listPage)
	r.GET("/loans/create", h.createPage)
	r.GET("/loans/:id", h.detailPage)
	r.GET("/loans/:id/edit", h.editPage)
	r.POST("/loans", chain(mutation, h.submitCreate)...)
	r.POST("/loans/:id", chain(mutation, h.submitUpdate)...)
	r.POST("/loans/:id/delete", chain(mutation, h.submitDelete)...)
}

// writePage renders name and writes it with status. Render failures fall
// back to a plain-text 500.
func (h *pageHandler) writePage(c *gin.Context, status int, name string, data any) []byte {
	body, err := h.renderer.render(name, data)
	if err != nil {
		logServerError(middleware.GetLoggerFromContext(c), err, "Failed to render page")
		c.String(http.StatusInternalServerError, msgUnexpected)
		return nil
	}
	c.Data(status, htmlContentType, body)
	return body
}

func (h *pageHandler) notFoundPage(c *gin.Context) {
	h.writePage(c, http.StatusNotFound, pageNotFound, messageView{
		Title:       "Loan not found",
		Message:     "Loan not found.",
		ActionURL:   "/loans",
		ActionLabel: "View All Loans",
	})
}

func (h *pageHandler) errorPage(c *gin.Context, err error, msg, retryURL string) {
	logServerError(middleware.GetLoggerFromContext(c), err, msg)
	h.writePage(c, http.StatusInternalServerError, pageError, messageView{
		Title:       "Error",
		Message:     msg,
		ActionURL:   retryURL,
		ActionLabel: "Try again",
	})
}

// RenderPanicPage writes the generic failure page; it is meant for the
// recovery middleware.
func RenderPanicPage(c *gin.Context) {
	body, err := defaultRenderer.render(pageError, messageView{
		Title:       "Error",
		Message:     msgUnexpected,
		ActionURL:   c.Request.URL.RequestURI(),
		ActionLabel: "Try again",
	})
	if err != nil {
		c.String(http.StatusInternalServerError, msgUnexpected)
		return
	}
	c.Data(http.StatusInternalServerError, htmlContentType, body)
}

func (h *pageHandler) listPage(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromContext(c)
	params := dto.ParseListLoansParams(c.Request.URL.Query()).Normalize()
	cacheKey := params.Query().Encode()

	body, version, ok, cacheErr := h.views.GetList(ctx, cacheKey)
	if cacheErr != nil {
		logger.Warn("View cache read failed", slog.String("error", cacheErr.Error()))
	} else if ok {
		c.Header(cacheHeader, "HIT")
		c.Data(http.StatusOK, htmlContentType, body)
		return
	}
	c.Header(cacheHeader, "MISS")

	page, err := h.loanService.ListLoans(ctx, params)
	if err != nil {
		view := newListView(params, nil)
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrValidation) {
			status = http.StatusBadRequest
			logger.Warn("Invalid listing parameters", slog.String("error", err.Error()))
		} else {
			logServerError(logger, err, "Failed to list loans")
		}
		view.Error = msgLoadLoansFailed
		h.writePage(c, status, pageList, view)
		return
	}

	body = h.writePage(c, http.StatusOK, pageList, newListView(params, page))
	if body == nil || cacheErr != nil {
		return
	}
	if err := h.views.SetList(ctx, cacheKey, version, body); err != nil {
		logger.Warn("View cache write failed", slog.String("error", err.Error()))
	}
}

func (h *pageHandler) detailPage(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromContext(c)
	loanID := c.Param("id")

	body, version, ok, cacheErr := h.views.GetDetail(ctx, loanID)
	if cacheErr != nil {
		logger.Warn("View cache read failed", slog.String("error", cacheErr.Error()))
	} else if ok {
		c.Header(cacheHeader, "HIT")
		c.Data(http.StatusOK, htmlContentType, body)
		return
	}
	c.Header(cacheHeader, "MISS")

	loan, err := h.loanService.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.notFoundPage(c)
			return
		}
		h.errorPage(c, err, msgLoadLoanFailed, c.Request.URL.RequestURI())
		return
	}

	body = h.writePage(c, http.StatusOK, pageDetail, newDetailView(loan))
	if body == nil || cacheErr != nil {
		return
	}
	if err := h.views.SetDetail(ctx, loanID, version, body); err != nil {
		logger.Warn("View cache write failed", slog.String("error", err.Error()))
	}
}

func (h *pageHandler) createPage(c *gin.Context) {
	h.writePage(c, http.StatusOK, pageForm, newFormView(true, "", nil, nil))
}

func (h *pageHandler) editPage(c *gin.Context) {
	loanID := c.Param("id")
	loan, err := h.loanService.GetLoanByID(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.notFoundPage(c)
			return
		}
		h.errorPage(c, err, msgLoadLoanFailed, c.Request.URL.RequestURI())
		return
	}
	h.writePage(c, http.StatusOK, pageForm, newFormView(false, loan.LoanID, loanFormValues(loan), nil))
}

// postedFields collects the loan fields present in a submitted form.
func postedFields(c *gin.Context) (map[string]string, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	fields := make(map[string]string)
	for _, name := range dto.LoanFields {
		if values, ok := c.Request.PostForm[name]; ok && len(values) > 0 {
			fields[name] = values[0]
		}
	}
	return fields, nil
}

// handleFormError re-renders the form for validation failures and shows the
// matching page for everything else.
func (h *pageHandler) handleFormError(c *gin.Context, err error, create bool, loanID string, fields map[string]string) {
	var verrs *validation.Errors
	switch {
	case errors.As(err, &verrs):
		middleware.GetLoggerFromContext(c).Warn("Loan form rejected", slog.String("error", err.Error()))
		h.writePage(c, http.StatusBadRequest, pageForm, newFormView(create, loanID, fields, verrs))
	case errors.Is(err, apperrors.ErrValidation):
		general := validation.NewErrors()
		general.Add(validation.GeneralField, "Please check the form and try again.")
		h.writePage(c, http.StatusBadRequest, pageForm, newFormView(create, loanID, fields, general))
	case errors.Is(err, apperrors.ErrNotFound):
		h.notFoundPage(c)
	default:
		retry := "/loans/create"
		if !create {
			retry = "/loans/" + url.PathEscape(loanID) + "/edit"
		}
		h.errorPage(c, err, msgSaveLoanFailed, retry)
	}
}

func (h *pageHandler) submitCreate(c *gin.Context) {
	fields, err := postedFields(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	input, err := validation.ParseFields(fields)
	if err != nil {
		h.handleFormError(c, err, true, "", fields)
		return
	}
	loan, err := h.loanService.CreateLoan(c.Request.Context(), input)
	if err != nil {
		h.handleFormError(c, err, true, "", fields)
		return
	}
	c.Redirect(http.StatusSeeOther, "/loans/"+url.PathEscape(loan.LoanID))
}

func (h *pageHandler) submitUpdate(c *gin.Context) {
	loanID := c.Param("id")
	fields, err := postedFields(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	input, err := validation.ParseFields(fields)
	if err != nil {
		h.handleFormError(c, err, false, loanID, fields)
		return
	}
	loan, err := h.loanService.UpdateLoan(c.Request.Context(), loanID, input)
	if err != nil {
		h.handleFormError(c, err, false, loanID, fields)
		return
	}
	c.Redirect(http.StatusSeeOther, "/loans/"+url.PathEscape(loan.LoanID))
}

func (h *pageHandler) submitDelete(c *gin.Context) {
	loanID := c.Param("id")
	if err := h.loanService.DeleteLoan(c.Request.Context(), loanID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.notFoundPage(c)
			return
		}
		h.errorPage(c, err, "Failed to delete loan. Please try again.", "/loans/"+url.PathEscape(loanID))
		return
	}
	c.Redirect(http.StatusSeeOther, "/loans")
}
