package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	guarantorDomain "gmfn-backend/internal/domain/guarantor"
	guarantorUC "gmfn-backend/internal/usecase/guarantor"
	"gmfn-backend/internal/usecase/member"
)

type GuarantorHandler struct {
	guarantors *guarantorUC.Usecase
	members    *member.Usecase
}

func NewGuarantorHandler(guarantors *guarantorUC.Usecase, members *member.Usecase) *GuarantorHandler {
	return &GuarantorHandler{guarantors: guarantors, members: members}
}

type inviteGuarantorReq struct {
	GuarantorUserID uint64          `json:"guarantor_user_id" validate:"required"`
	PledgeAmount    decimal.Decimal `json:"pledge_amount"`
}

type guarantorsListResp struct {
	Items []guarantorDomain.Guarantor `json:"items"`
	Total int                         `json:"total"`
}

func (h *GuarantorHandler) InviteGuarantor(c echo.Context) error {
	loanID, ok := pathID(c, "loan_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	var req inviteGuarantorReq
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
	g, err := h.guarantors.Invite(c.Request().Context(), loanID, req.GuarantorUserID, req.PledgeAmount, caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, g)
}

func (h *GuarantorHandler) ListGuarantors(c echo.Context) error {
	loanID, ok := pathID(c, "loan_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	caller, err := resolveCaller(c, h.members)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.guarantors.List(c.Request().Context(), loanID, caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, guarantorsListResp{Items: items, Total: len(items)})
}

type decideGuarantorReq struct {
	Status string `json:"status" validate:"required"`
}

func (h *GuarantorHandler) DecideGuarantor(c echo.Context) error {
	loanID, ok := pathID(c, "loan_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	rowID, ok := pathID(c, "guarantor_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid guarantor_id"})
	}
	var req decideGuarantorReq
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
	g, err := h.guarantors.Decide(c.Request().Context(), loanID, rowID, req.Status, caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, g)
}
