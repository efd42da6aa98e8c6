package services

import (
	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/services/account/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the account
// bounded context.
type Services struct {
	Account *AccountService
	Google  *GoogleConnector
}

// New wires the account services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Account: NewAccountService(postgres.NewUserRepository(a.Db)),
		Google: NewGoogleConnector(GoogleConfig{
			ClientID:     a.Config.GoogleClientID,
			ClientSecret: a.Config.GoogleClientSecret,
			RedirectURL:  a.Config.OAuthRedirectURL,
		}),
	}
}
