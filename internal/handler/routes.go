package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the admin and public API surfaces under the prefix.
// Trailing slashes match the original client; gin's default redirect covers
// the slash-less variants.
func RegisterRoutes(r *gin.Engine, prefix string, eventTypes *EventTypeHandler, availability *AvailabilityHandler, bookings *BookingHandler, public *PublicHandler) {
	api := r.Group(prefix)

	api.GET("/event-types/", eventTypes.List)
	api.POST("/event-types/", eventTypes.Create)
	api.PATCH("/event-types/:id/", eventTypes.Update)
	api.DELETE("/event-types/:id/", eventTypes.Delete)

	api.GET("/availability/", availability.Get)
	api.PUT("/availability/:id/", availability.Replace)

	api.GET("/bookings/", bookings.List)
	api.GET("/bookings/export/", bookings.Export)
	api.POST("/bookings/:id/cancel/", bookings.Cancel)

	api.GET("/public/event-types/:slug/", public.EventType)
	api.GET("/public/slots/", public.Slots)
	api.POST("/public/bookings/", public.CreateBooking)
	api.GET("/public/bookings/:uid/", public.Booking)
}
