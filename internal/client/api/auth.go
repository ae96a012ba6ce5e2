package api

import (
	"context"
	"net/http"

	"wishlist-backend/internal/domains/user"
)

func (c *Client) SignUp(ctx context.Context, req user.SignUpRequest) (*user.Session, error) {
	var s user.Session
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, req, &s); err != nil {
		return nil, err
	}
	c.setSession(&s)
	return &s, nil
}

func (c *Client) SignIn(ctx context.Context, req user.SignInRequest) (*user.Session, error) {
	var s user.Session
	if err := c.do(ctx, http.MethodPost, "/auth/signin", nil, req, &s); err != nil {
		return nil, err
	}
	c.setSession(&s)
	return &s, nil
}

// SignOut revokes the token server-side. The local session is cleared even
// when the server call fails, since the token is unusable either way.
func (c *Client) SignOut(ctx context.Context) error {
	if c.Token() == "" {
		return ErrNoSession
	}
	err := c.do(ctx, http.MethodPost, "/auth/signout", nil, nil, nil)
	c.setSession(nil)
	return err
}

func (c *Client) Me(ctx context.Context) (*user.UserDTO, error) {
	var u user.UserDTO
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
