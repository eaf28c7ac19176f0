package api

import (
	"context"
	"fmt"

	smartwallet "github.com/Debraj8301/smart-wallet"
)

// SignupRequest carries the extended profile the backend collects at
// registration.
type SignupRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Age          int     `json:"age"`
	Occupation   string  `json:"occupation"`
	YearlyIncome float64 `json:"yearly_income"`
	Country      string  `json:"country"`
}

// Signup registers a new user. The password rule is checked locally first so
// an obviously bad request never hits the network.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	if err := smartwallet.ValidatePassword(req.Password); err != nil {
		return err
	}
	if err := smartwallet.ValidateEmail(req.Email); err != nil {
		return err
	}
	return c.post(ctx, "/auth/signup", nil, req, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// Login authenticates and, on success, stores the access token in the
// session for every subsequent request.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("login succeeded but no access token was returned")
	}
	c.session.SetToken(resp.AccessToken)
	return nil
}

// Profile is the authenticated user's record, including the backend-computed
// financial scores. Both scores are 0–100 or absent when the backend could
// not compute them.
type Profile struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Age          int     `json:"age"`
	Occupation   string  `json:"occupation"`
	YearlyIncome float64 `json:"yearly_income"`
	Country      string  `json:"country"`

	BudgetAdherenceScore *smartwallet.Percent `json:"budget_adherence_score"`
	ImpulseBuyScore      *smartwallet.Percent `json:"impulse_buy_score"`
}

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.get(ctx, "/auth/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name         string  `json:"name"`
	Age          int     `json:"age"`
	Occupation   string  `json:"occupation"`
	YearlyIncome float64 `json:"yearly_income"`
	Country      string  `json:"country"`
}

// CompleteProfile saves or updates the profile details.
func (c *Client) CompleteProfile(ctx context.Context, update ProfileUpdate) error {
	return c.post(ctx, "/auth/complete-profile", nil, update, nil)
}
