package http

import (
	"github.com/edustack/accounts-api/internal/infrastructure/smtp"
	"github.com/edustack/accounts-api/internal/infrastructure/userstore"
)

// Deps holds the infrastructure dependencies for the router.
type Deps struct {
	Store  *userstore.Store
	Mailer smtp.Mailer
}
