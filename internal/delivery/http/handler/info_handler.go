package handler

import (
	"net/http"

	"service-market/internal/delivery/http/middleware"
	entity "service-market/internal/domain"
	service "service-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
)

type InfoHandler struct {
	infoService *service.InfoService
}

func NewInfoHandler(infoService *service.InfoService) *InfoHandler {
	return &InfoHandler{infoService: infoService}
}

// BaseInfo handles GET /api/base-info/ (public).
func (h *InfoHandler) BaseInfo(c *gin.Context) {
	info, err := h.infoService.BaseInfo()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Dashboard handles GET /api/dashboard/: the caller's profile, offers
// and orders in one payload.
func (h *InfoHandler) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)

	profile, offers, orders, err := h.infoService.Dashboard(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	offerResponses := make([]entity.OfferResponse, 0, len(offers))
	for i := range offers {
		offerResponses = append(offerResponses, offerResponse(c, &offers[i]))
	}
	orderResponses := make([]entity.OrderResponse, 0, len(orders))
	for i := range orders {
		orderResponses = append(orderResponses, orders[i].Response())
	}

	c.JSON(http.StatusOK, entity.Dashboard{
		Profile: profileResponse(c, profile),
		Offers:  offerResponses,
		Orders:  orderResponses,
	})
}
