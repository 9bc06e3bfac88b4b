package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Info
	BannerHandler     Handler
	GetVersionHandler Handler

	// Auth
	CreateTokenHandler Handler

	// Analysis
	AnalyzeSectorHandler Handler
}
