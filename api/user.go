package api

import (
	"context"
	"net/http"

	"marketplace-client-sample/model"
)

// UserClient talks to the user service.
type UserClient struct {
	*Client
}

func NewUserClient(baseURL, token string) *UserClient {
	return &UserClient{Client: NewClient(baseURL, token)}
}

func (c *UserClient) GetMe(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, nil, &u)
	return u, err
}

func (c *UserClient) GetBillingAddress(ctx context.Context, userID string) (model.BillingAddress, error) {
	var addr model.BillingAddress
	err := c.doJSON(ctx, http.MethodGet, "/users/"+userID+"/billing-address", nil, nil, &addr)
	return addr, err
}
