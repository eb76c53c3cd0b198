package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CalClone API",
        "description": "Scheduling backend: event types, weekly availability, open slots and bookings",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Event Types", "description": "Admin management of bookable event types"},
        {"name": "Availability", "description": "Default weekly availability profile"},
        {"name": "Bookings", "description": "Admin booking review and export"},
        {"name": "Public", "description": "Visitor-facing slots and booking endpoints"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/event-types/": {
            "get": {
                "tags": ["Event Types"],
                "summary": "List event types",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/EventType"}}}
                }
            },
            "post": {
                "tags": ["Event Types"],
                "summary": "Create event type",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventTypeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/EventType"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/FieldErrors"}}
                }
            }
        },
        "/api/event-types/{id}/": {
            "patch": {
                "tags": ["Event Types"],
                "summary": "Partially update event type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEventTypeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventType"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/DetailError"}}
                }
            },
            "delete": {
                "tags": ["Event Types"],
                "summary": "Delete event type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "409": {"description": "Upcoming confirmed bookings exist", "schema": {"$ref": "#/definitions/DetailError"}}
                }
            }
        },
        "/api/availability/": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get the availability profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Availability"}}
                }
            }
        },
        "/api/availability/{id}/": {
            "put": {
                "tags": ["Availability"],
                "summary": "Replace timezone and rules",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceAvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Availability"}}
                }
            }
        },
        "/api/bookings/": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List bookings relative to now",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string", "enum": ["upcoming", "past"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Booking"}}}
                }
            }
        },
        "/api/bookings/export/": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Export bookings as CSV or PDF",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string", "enum": ["upcoming", "past"]},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/api/bookings/{id}/cancel/": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Cancel a confirmed booking",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Canceled", "schema": {"$ref": "#/definitions/Booking"}},
                    "409": {"description": "Already canceled", "schema": {"$ref": "#/definitions/DetailError"}}
                }
            }
        },
        "/api/public/event-types/{slug}/": {
            "get": {
                "tags": ["Public"],
                "summary": "Get an active event type by slug",
                "parameters": [
                    {"name": "slug", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventType"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/DetailError"}}
                }
            }
        },
        "/api/public/slots/": {
            "get": {
                "tags": ["Public"],
                "summary": "List open slots for a date",
                "parameters": [
                    {"name": "slug", "in": "query", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "Ordered ISO-8601 start instants", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/api/public/bookings/": {
            "post": {
                "tags": ["Public"],
                "summary": "Book an open slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Booking"}},
                    "409": {"description": "Slot no longer available", "schema": {"$ref": "#/definitions/DetailError"}}
                }
            }
        },
        "/api/public/bookings/{uid}/": {
            "get": {
                "tags": ["Public"],
                "summary": "Get a booking by public identifier",
                "parameters": [
                    {"name": "uid", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Booking"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/DetailError"}}
                }
            }
        }
    },
    "definitions": {
        "EventType": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "slug": {"type": "string"},
                "duration_minutes": {"type": "integer"},
                "active": {"type": "boolean"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "CreateEventTypeRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "slug": {"type": "string"},
                "duration_minutes": {"type": "integer", "minimum": 5},
                "active": {"type": "boolean"}
            },
            "required": ["title", "slug", "duration_minutes"]
        },
        "UpdateEventTypeRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "slug": {"type": "string"},
                "duration_minutes": {"type": "integer", "minimum": 5},
                "active": {"type": "boolean"}
            }
        },
        "AvailabilityRule": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "weekday": {"type": "integer", "minimum": 0, "maximum": 6},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "17:00"}
            }
        },
        "Availability": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "timezone": {"type": "string", "example": "Asia/Kolkata"},
                "rules": {"type": "array", "items": {"$ref": "#/definitions/AvailabilityRule"}},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "ReplaceAvailabilityRequest": {
            "type": "object",
            "properties": {
                "timezone": {"type": "string"},
                "rules": {"type": "array", "items": {"$ref": "#/definitions/AvailabilityRule"}}
            },
            "required": ["timezone"]
        },
        "CreateBookingRequest": {
            "type": "object",
            "properties": {
                "slug": {"type": "string"},
                "startAt": {"type": "string", "format": "date-time"},
                "name": {"type": "string"},
                "email": {"type": "string", "format": "email"}
            },
            "required": ["slug", "startAt", "name", "email"]
        },
        "Booking": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "booking_uid": {"type": "string"},
                "event_type": {"type": "string"},
                "event_type_slug": {"type": "string"},
                "booker_name": {"type": "string"},
                "booker_email": {"type": "string"},
                "start_at": {"type": "string", "format": "date-time"},
                "end_at": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["CONFIRMED", "CANCELED"]},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "DetailError": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "FieldErrors": {
            "type": "object",
            "additionalProperties": {
                "type": "array",
                "items": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
