package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"gmfn-backend/internal/usecase/member"
)

type ClanHandler struct{ members *member.Usecase }

func NewClanHandler(members *member.Usecase) *ClanHandler { return &ClanHandler{members: members} }

type poolBalanceReq struct {
	Balance decimal.Decimal `json:"personal_pool_balance"`
}

type poolBalanceResp struct {
	ClanID  uint64          `json:"clan_id"`
	UserID  uint64          `json:"user_id"`
	Balance decimal.Decimal `json:"personal_pool_balance"`
}

func (h *ClanHandler) SetPoolBalance(c echo.Context) error {
	clanID, ok := pathID(c, "clan_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid clan_id"})
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}
	var req poolBalanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	caller, err := resolveCaller(c, h.members)
	if err != nil {
		return writeError(c, err)
	}
	m, err := h.members.SetPoolBalance(c.Request().Context(), clanID, userID, req.Balance, caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, poolBalanceResp{
		ClanID:  m.ClanID,
		UserID:  m.UserID,
		Balance: m.PersonalPoolBalance,
	})
}
