package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/bitmap")

	r.Get("/sat/:number", h.GetSat)
	r.Get("/sats", h.GetSatsRange)
	r.Get("/canonical/:number", h.GetCanonical)
	r.Post("/validate/batch", h.ValidateBatch)
	r.Post("/validate/content", h.ValidateContent)
	r.Get("/validate/:number/parcel/:parcel", h.ValidateParcel)
	r.Get("/validate/:number", h.ValidateBitmap)
	return nil
}
