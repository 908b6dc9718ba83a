package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Pinner stores a JSON document on IPFS and returns its content id.
type Pinner interface {
	Pin(ctx context.Context, name string, doc any) (string, error)
}

// Pinata pins JSON documents through the Pinata API.
type Pinata struct {
	endpoint string
	jwt      string
	client   *http.Client
}

func NewPinata(endpoint, token string, client *http.Client) *Pinata {
	return &Pinata{endpoint: endpoint, jwt: token, client: client}
}

type pinRequest struct {
	Content  any         `json:"pinataContent"`
	Metadata pinMetadata `json:"pinataMetadata"`
}

type pinMetadata struct {
	Name string `json:"name"`
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

func (p *Pinata) Pin(ctx context.Context, name string, doc any) (string, error) {
	body, err := json.Marshal(pinRequest{Content: doc, Metadata: pinMetadata{Name: name}})
	if err != nil {
		return "", fmt.Errorf("%w: encode: %v", ErrPin, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPin, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.jwt)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPin, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrPin, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d: %s", ErrPin, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out pinResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrPin, err)
	}
	if out.IpfsHash == "" {
		return "", fmt.Errorf("%w: response has no IpfsHash", ErrPin)
	}
	return out.IpfsHash, nil
}

// checkPinataJWT rejects tokens that are malformed or already expired.
// The signature is not checked; Pinata does that on every request.
func checkPinataJWT(token string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("parse pinata jwt: %w", err)
	}
	if !claims.VerifyExpiresAt(now.Unix(), false) {
		return fmt.Errorf("pinata jwt expired")
	}
	return nil
}
