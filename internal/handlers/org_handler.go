package handlers

import (
	"planify-backend/internal/actions"

	"github.com/gofiber/fiber/v2"
)

// OrgHandler serves organization-wide reads: activity and board limits.
type OrgHandler struct {
	svc *actions.Service
}

func NewOrgHandler(svc *actions.Service) *OrgHandler {
	return &OrgHandler{svc: svc}
}

// GetAuditLogs reads ?page= and ?pageSize=; missing values use the defaults.
func (h *OrgHandler) GetAuditLogs(c *fiber.Ctx) error {
	in := actions.AuditPageInput{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 0),
	}
	return respond(c, h.svc.OrgLogs(c.UserContext(), &in), fiber.StatusOK)
}

func (h *OrgHandler) GetLimits(c *fiber.Ctx) error {
	return respond(c, h.svc.QuotaStatus(c.UserContext()), fiber.StatusOK)
}
