package agents

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot identifies the account behind a messaging channel token.
type Bot struct {
	ID       int64
	Username string
}

// Channel verifies messaging channel credentials.
type Channel interface {
	Verify(ctx context.Context, token string) (*Bot, error)
}

// Telegram verifies bot tokens against the Telegram Bot API getMe method.
type Telegram struct {
	endpoint string
	client   *http.Client
}

// NewTelegram creates a verifier. endpoint is a Bot API format string with
// token and method verbs; empty selects the public Bot API.
func NewTelegram(endpoint string, timeout time.Duration) *Telegram {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	return &Telegram{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (t *Telegram) Verify(ctx context.Context, token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, t.endpoint, contextClient{ctx: ctx, client: t.client})
	if err != nil {
		// transport errors carry the request URL, which embeds the token
		return nil, errors.New(strings.ReplaceAll(err.Error(), token, "<token>"))
	}
	return &Bot{ID: api.Self.ID, Username: api.Self.UserName}, nil
}

// contextClient binds outgoing Bot API requests to the caller's context.
type contextClient struct {
	ctx    context.Context
	client *http.Client
}

func (c contextClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req.WithContext(c.ctx))
}
