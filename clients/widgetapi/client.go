// Package widgetapi is the HTTP implementation of the booking flow's
// collaborator interface, used where the widget runtime talks to a remote
// sitekit deployment instead of in-process services.
package widgetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"sitekit/models"
	"sitekit/services/flow"
)

var _ flow.BookingAPI = (*Client)(nil)

type Client struct {
	baseURL    string
	siteID     string
	httpClient *http.Client
}

func NewClient(baseURL, siteID string) *Client {
	return &Client{
		baseURL: baseURL,
		siteID:  siteID,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) ListSlots(ctx context.Context, date string) (*models.SlotListResponse, error) {
	endpoint := fmt.Sprintf("%s/api/public/%s/slots?date=%s",
		c.baseURL, url.PathEscape(c.siteID), url.QueryEscape(date))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp models.SlotListResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to list slots for %s: %w", date, err)
	}
	return &resp, nil
}

func (c *Client) CreateReservation(ctx context.Context, request models.CreateReservationRequest) (*models.CreateReservationResponse, error) {
	endpoint := fmt.Sprintf("%s/api/public/%s/reservations", c.baseURL, url.PathEscape(c.siteID))
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp models.CreateReservationResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	return &resp, nil
}

func (c *Client) CancelPendingPayment(ctx context.Context, pending models.PendingPayment) error {
	endpoint := fmt.Sprintf("%s/api/public/%s/payment/cancel", c.baseURL, url.PathEscape(c.siteID))
	body, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("failed to cancel pending payment: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error
		}
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, msg)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
