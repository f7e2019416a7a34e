package routes

import (
	"net/http"

	"venuehub/auth"
	"venuehub/bookings"
	"venuehub/cart"
	"venuehub/checkout"
	"venuehub/enums"
	"venuehub/filemgr"
	"venuehub/middleware"
	"venuehub/models"
	"venuehub/pay"
	"venuehub/ratelim"
	"venuehub/services"
	"venuehub/users"
	"venuehub/venues"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/v1/auth/register", middleware.Chain(rateLimiter.Limit)(auth.Register))
	router.POST("/api/v1/auth/login", middleware.Chain(rateLimiter.Limit)(auth.Login))
	router.POST("/api/v1/auth/refresh", middleware.Chain(rateLimiter.Limit)(auth.RefreshToken))
	router.POST("/api/v1/auth/logout", middleware.Chain(rateLimiter.Limit)(auth.Logout))
}

func AddVenueRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/v1/venues",
		middleware.Chain(rateLimiter.Limit, middleware.OptionalAuth)(venues.GetVenues))
	router.GET("/api/v1/venues/:venueid",
		middleware.Chain(rateLimiter.Limit, middleware.OptionalAuth)(venues.GetVenue))
	router.GET("/api/v1/venues/:venueid/availability",
		middleware.Chain(rateLimiter.Limit)(venues.GetVenueAvailability))

	router.POST("/api/v1/venues",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireCompleteAccount,
			middleware.RequireRoles(models.RoleVendor, models.RoleAdmin),
		)(venues.CreateVenue))
	router.PUT("/api/v1/venues/:venueid",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireCompleteAccount,
		)(venues.UpdateVenue))
	router.DELETE("/api/v1/venues/:venueid",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireCompleteAccount,
		)(venues.DeleteVenue))
	router.POST("/api/v1/venues/:venueid/moderate",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireRoles(models.RoleAdmin),
		)(venues.ModerateVenue))
}

func AddServiceRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/v1/services",
		middleware.Chain(rateLimiter.Limit, middleware.OptionalAuth)(services.GetServices))
	router.GET("/api/v1/services/:serviceid",
		middleware.Chain(rateLimiter.Limit, middleware.OptionalAuth)(services.GetService))

	router.POST("/api/v1/services",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireCompleteAccount,
			middleware.RequireRoles(models.RoleVendor, models.RoleAdmin),
		)(services.CreateService))
	router.PUT("/api/v1/services/:serviceid",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireCompleteAccount,
		)(services.UpdateService))
	router.DELETE("/api/v1/services/:serviceid",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireCompleteAccount,
		)(services.DeleteService))
	router.POST("/api/v1/services/:serviceid/moderate",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireRoles(models.RoleAdmin),
		)(services.ModerateService))
}

func AddCartRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/v1/cart/quote",
		middleware.Chain(rateLimiter.Limit, middleware.OptionalAuth)(cart.Quote))
}

func AddBookingRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	authed := middleware.Chain(
		rateLimiter.Limit,
		middleware.Authenticate,
		middleware.RequireCompleteAccount,
	)

	router.POST("/api/v1/bookings", authed(bookings.CreateBooking))
	router.GET("/api/v1/bookings", authed(bookings.ListBookings))
	router.GET("/api/v1/bookings/:bookingid", authed(bookings.GetBooking))
	router.PUT("/api/v1/bookings/:bookingid/status", authed(bookings.UpdateBookingStatus))
	router.POST("/api/v1/bookings/:bookingid/cancel", authed(bookings.CancelBooking))
	router.GET("/api/v1/bookings/:bookingid/receipt", authed(bookings.PrintReceipt))

	router.GET("/ws/bookings/:entitytype/:entityid", bookings.HandleWS)
}

func AddCheckoutRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	bridge := checkout.NewBridge()

	router.POST("/api/v1/payments/session",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireCompleteAccount,
			pay.Idempotent,
		)(bridge.CreateSession))

	// provider callback, authenticated by signature instead of JWT
	router.POST("/api/v1/payments/webhook", bridge.HandleWebhook)
}

func AddUserRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	base := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)

	router.GET("/api/v1/profile", base(users.GetProfile))
	router.PUT("/api/v1/profile", base(users.UpdateProfile))
	router.POST("/api/v1/profile/complete", base(users.CompleteProfile))
	router.GET("/api/v1/account",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireCompleteAccount,
		)(users.GetAccount))
}

func AddPayRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	authed := middleware.Chain(
		rateLimiter.Limit,
		middleware.Authenticate,
		middleware.RequireCompleteAccount,
	)

	router.GET("/api/v1/transactions", authed(pay.ListTransactions))
	router.GET("/api/v1/transactions/:txnid", authed(pay.GetTransaction))
}

func AddUploadRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/v1/uploads",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireCompleteAccount,
		)(filemgr.UploadFiles))

	router.ServeFiles("/static/uploads/*filepath", http.Dir(filemgr.UploadRoot))
}

func AddUtilityRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/v1/enums", middleware.Chain(rateLimiter.Limit)(enums.GetEnums))
}
