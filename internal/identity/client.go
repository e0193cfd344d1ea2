package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/devrajsawant/dev-scrum/internal/domain"
)

// Client talks JSON over HTTP to the identity provider's backend API,
// authenticated with a server-side API key.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

var _ Provider = (*Client)(nil)

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// VerifySession exchanges a session token for the caller identity and
// profile. An expired or unknown token fails with ErrUnauthorized.
func (c *Client) VerifySession(ctx context.Context, token string) (*Session, error) {
	var payload struct {
		UserID   string `json:"user_id"`
		OrgID    string `json:"org_id"`
		OrgRole  string `json:"org_role"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		ImageURL string `json:"image_url"`
	}
	status, err := c.do(ctx, http.MethodPost, "/v1/sessions/verify",
		map[string]string{"token": token}, &payload)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusNotFound:
		return nil, fmt.Errorf("verify session: %w", domain.ErrUnauthorized)
	default:
		return nil, fmt.Errorf("verify session: provider returned %d", status)
	}
	return &Session{
		Caller: Caller{UserID: payload.UserID, OrgID: payload.OrgID, OrgRole: payload.OrgRole},
		Profile: Profile{
			ExternalID: payload.UserID,
			Name:       payload.Name,
			Email:      payload.Email,
			ImageURL:   payload.ImageURL,
		},
	}, nil
}

// GetOrganization fetches organization metadata by slug. Unknown slugs return
// (nil, nil) rather than an error; the caller decides what absence means.
func (c *Client) GetOrganization(ctx context.Context, slug string) (*Organization, error) {
	var org Organization
	status, err := c.do(ctx, http.MethodGet, "/v1/organizations/"+slug, nil, &org)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return &org, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("get organization %q: provider returned %d", slug, status)
	}
}

// ListMembers fetches the membership list of an organization.
func (c *Client) ListMembers(ctx context.Context, orgID string) ([]Membership, error) {
	var payload struct {
		Data []Membership `json:"data"`
	}
	status, err := c.do(ctx, http.MethodGet, "/v1/organizations/"+orgID+"/memberships", nil, &payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list members of %q: provider returned %d", orgID, status)
	}
	return payload.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode provider response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
