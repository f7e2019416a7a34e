package routes

import (
	"venuehub/ratelim"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddVenueRoutes(router, rateLimiter)
	AddServiceRoutes(router, rateLimiter)
	AddCartRoutes(router, rateLimiter)
	AddBookingRoutes(router, rateLimiter)
	AddCheckoutRoutes(router, rateLimiter)
	AddUserRoutes(router, rateLimiter)
	AddPayRoutes(router, rateLimiter)
	AddUploadRoutes(router, rateLimiter)
	AddUtilityRoutes(router, rateLimiter)
}
