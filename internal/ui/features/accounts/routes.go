package accounts

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the account form actions. Each form posts back to
// its own page path; the pages are mounted by the router from the route table.
func SetupRoutes(router chi.Router, handlers *Handlers) {
	router.Post("/sign-in", handlers.SignIn)
	router.Post("/sign-up", handlers.SignUp)
	router.Post("/forgot-password", handlers.ForgotPassword)
	router.Post("/token/{email}", handlers.VerifyToken)
	router.Post("/reset-password/{email}", handlers.ResetPassword)
}
