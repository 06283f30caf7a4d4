package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"imagique/models"
)

func (c *Client) UserDetails(ctx context.Context, userDetailsID int64) (models.UserDetails, error) {
	var details models.UserDetails
	err := c.getJSON(ctx, "userdetails.get", "/api/userdetails/"+itoa(userDetailsID), &details)
	return details, err
}

func (c *Client) UpdateUserDetails(ctx context.Context, details models.UserDetails) error {
	return c.sendJSON(ctx, "userdetails.put", http.MethodPut, "/api/userdetails/"+itoa(details.UserDetailsID), details, nil)
}

// UpdateProfile sends the profile screen fields; the id travels in the body.
func (c *Client) UpdateProfile(ctx context.Context, p models.ProfileUpdate) error {
	return c.sendJSON(ctx, "userdetails.update", http.MethodPut, "/api/userdetails/update", p, nil)
}

func (c *Client) ChangePassword(ctx context.Context, userDetailsID int64, currentPassword, newPassword string) error {
	q := url.Values{}
	q.Set("userDetailsId", itoa(userDetailsID))
	q.Set("currentPassword", currentPassword)
	q.Set("newPassword", newPassword)
	return c.do(ctx, request{
		op:     "userdetails.change_password",
		method: http.MethodPut,
		path:   "/api/userdetails/" + itoa(userDetailsID) + "/change-password",
		query:  q,
	}, nil)
}

// AddToWallet credits the wallet. The amount is sent as a JSON number.
func (c *Client) AddToWallet(ctx context.Context, userDetailsID int64, amount decimal.Decimal) error {
	body := map[string]float64{"amount": amount.InexactFloat64()}
	return c.sendJSON(ctx, "userdetails.wallet_add", http.MethodPut, "/api/userdetails/"+itoa(userDetailsID)+"/wallet/add", body, nil)
}

func (c *Client) ListOrganizers(ctx context.Context) ([]models.Organizer, error) {
	var organizers []models.Organizer
	if err := c.getJSON(ctx, "userdetails.organizers", "/api/userdetails/organizers", &organizers); err != nil {
		return nil, err
	}
	return organizers, nil
}

func (c *Client) ApproveOrganizer(ctx context.Context, userDetailsID int64) error {
	return c.moderate(ctx, userDetailsID, "approve")
}

func (c *Client) RejectOrganizer(ctx context.Context, userDetailsID int64) error {
	return c.moderate(ctx, userDetailsID, "reject")
}

func (c *Client) BlockOrganizer(ctx context.Context, userDetailsID int64) error {
	return c.moderate(ctx, userDetailsID, "block")
}

func (c *Client) moderate(ctx context.Context, userDetailsID int64, action string) error {
	return c.do(ctx, request{
		op:     "userdetails.organizer_" + action,
		method: http.MethodPost,
		path:   "/api/userdetails/organizers/" + itoa(userDetailsID) + "/" + action,
	}, nil)
}
