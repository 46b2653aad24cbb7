package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"gmfn-backend/internal/adapter/middleware"
	loanDomain "gmfn-backend/internal/domain/loan"
	loanUC "gmfn-backend/internal/usecase/loan"
	"gmfn-backend/internal/usecase/member"
)

type LoanHandler struct {
	loans   *loanUC.Usecase
	members *member.Usecase
}

func NewLoanHandler(loans *loanUC.Usecase, members *member.Usecase) *LoanHandler {
	return &LoanHandler{loans: loans, members: members}
}

type createLoanReq struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"omitempty,max=8"`
}

type loansListResp struct {
	Items []loanDomain.Loan `json:"items"`
	Total int               `json:"total"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	caller, err := resolveCaller(c, h.members)
	if err != nil {
		return writeError(c, err)
	}
	l, err := h.loans.Create(c.Request().Context(), caller, loanUC.CreateInput{
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, ok := pathID(c, "loan_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	u := middleware.CurrentUser(c)
	l, err := h.loans.Get(c.Request().Context(), id, u.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) ListMyLoans(c echo.Context) error {
	caller, err := resolveCaller(c, h.members)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.loans.ListMine(c.Request().Context(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, loansListResp{Items: items, Total: len(items)})
}

func (h *LoanHandler) ListAllLoans(c echo.Context) error {
	caller, err := resolveCaller(c, h.members)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.loans.ListAll(c.Request().Context(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, loansListResp{Items: items, Total: len(items)})
}

type updateLoanReq struct {
	Status string `json:"status" validate:"required"`
}

func (h *LoanHandler) UpdateLoanStatus(c echo.Context) error {
	id, ok := pathID(c, "loan_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	var req updateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	caller, err := resolveCaller(c, h.members)
	if err != nil {
		return writeError(c, err)
	}
	l, err := h.loans.UpdateStatus(c.Request().Context(), id, req.Status, caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
