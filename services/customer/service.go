package customer

import (
	"context"
	"fmt"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

type service struct {
	client storefrontclient.StorefrontClient
	logger mylog.Logger
}

func newService(client storefrontclient.StorefrontClient, logger mylog.Logger) *service {
	return &service{
		client: client,
		logger: logger,
	}
}

func (s *service) login(c context.Context, email string, password string) (storefrontclient.CustomerAccessToken, error) {
	if email == "" || password == "" {
		return storefrontclient.CustomerAccessToken{}, myerrors.NewInvalidInputError(fmt.Errorf("email and password are required"))
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Login attempt")

	token, err := s.client.CreateCustomerAccessToken(c, email, password)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Login failed: %s", err)
		return storefrontclient.CustomerAccessToken{}, err
	}

	return token, nil
}
