package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

// IdentityLister exposes the live index contents
type IdentityLister interface {
	Entries() []domain.Identity
}

type IdentitiesHandler struct {
	index IdentityLister
}

func NewIdentitiesHandler(index IdentityLister) *IdentitiesHandler {
	return &IdentitiesHandler{index: index}
}

type IdentityItem struct {
	Name   string        `json:"name"`
	Origin domain.Origin `json:"origin"`
}

type ListIdentitiesResponse struct {
	Identities []IdentityItem `json:"identities"`
	Total      int            `json:"total"`
}

// List GET /identities - identities currently loaded in memory
func (h *IdentitiesHandler) List(c *fiber.Ctx) error {
	entries := h.index.Entries()

	items := make([]IdentityItem, len(entries))
	for i, e := range entries {
		items[i] = IdentityItem{Name: e.Name, Origin: e.Origin}
	}

	return c.JSON(ListIdentitiesResponse{
		Identities: items,
		Total:      len(items),
	})
}
