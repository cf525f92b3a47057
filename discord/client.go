// Package discord is the upstream client: it issues the authenticated
// REST calls this service proxies and classifies every failure into an
// error kind the route handlers can map onto HTTP statuses.
package discord

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Retry-After fallback when the upstream 429 carries no usable header
const defaultRetryAfter = 5 * time.Second

const maxBodyBytes = 1 << 20

type Options struct {
	// Bot token. Required, the client cannot be built without it
	Token string

	// Upstream REST base URL, e.g. https://discord.com/api/v10
	BaseURL string

	UserAgent string

	// Per-call deadline
	Timeout time.Duration

	// Minimum spacing between our own successive upstream calls.
	// Zero disables pacing
	Pace time.Duration

	Logger *zap.SugaredLogger
}

type Client struct {
	http      *http.Client
	token     string
	baseURL   string
	userAgent string
	pace      time.Duration
	logger    *zap.SugaredLogger

	// Guards nextSlot, the earliest time the next upstream call may be
	// issued. Calls reserve a slot under the lock so concurrent
	// requests cannot both read a stale timestamp
	mu       sync.Mutex
	nextSlot time.Time

	sf singleflight.Group
}

func New(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, errors.New("bot token not configured")
	}

	if opts.BaseURL == "" {
		return nil, errors.New("upstream base URL not configured")
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &Client{
		http:      &http.Client{Timeout: opts.Timeout},
		token:     opts.Token,
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		pace:      opts.Pace,
		logger:    opts.Logger,
	}, nil
}

// MaskedToken returns a loggable prefix of the credential. The full
// token must never reach the logs.
func (c *Client) MaskedToken() string {
	if len(c.token) <= 8 {
		return "********"
	}

	return c.token[:8] + "..."
}

// CheckInvite resolves a vanity invite code. Concurrent checks of the
// same code share one upstream call. An upstream 404 is not a failure:
// it means the code is free to claim.
func (c *Client) CheckInvite(ctx context.Context, code string) (*InviteLookup, error) {
	v, err, _ := c.sf.Do("invite:"+code, func() (any, error) {
		return c.checkInvite(ctx, code)
	})

	if err != nil {
		return nil, err
	}

	return v.(*InviteLookup), nil
}

func (c *Client) checkInvite(ctx context.Context, code string) (*InviteLookup, error) {
	status, body, err := c.do(ctx, c.baseURL+"/invites/"+url.PathEscape(code)+"?with_counts=true&with_expiration=true")

	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		return &InviteLookup{Available: true}, nil
	case status == http.StatusUnauthorized:
		return nil, c.classifyStatus(status, body, nil)
	case status >= 200 && status < 300:
		var invite RawInvite

		if uerr := json.Unmarshal(body, &invite); uerr != nil || invite.Guild == nil {
			c.logger.Error("upstream invite response missing guild, code=", code)
			return nil, &Error{Kind: ErrKindBadUpstream, Status: status, Message: "Invalid response from Discord API"}
		}

		return &InviteLookup{Invite: &invite}, nil
	default:
		return nil, c.classifyStatus(status, body, nil)
	}
}

// FetchUser looks up a user profile by snowflake ID. Concurrent lookups
// of the same ID share one upstream call.
func (c *Client) FetchUser(ctx context.Context, id string) (*RawUser, error) {
	v, err, _ := c.sf.Do("user:"+id, func() (any, error) {
		return c.fetchUser(ctx, id)
	})

	if err != nil {
		return nil, err
	}

	return v.(*RawUser), nil
}

func (c *Client) fetchUser(ctx context.Context, id string) (*RawUser, error) {
	status, body, err := c.do(ctx, c.baseURL+"/users/"+url.PathEscape(id))

	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		return nil, &Error{Kind: ErrKindNotFound, Status: status, Message: "User not found"}
	}

	if status < 200 || status >= 300 {
		return nil, c.classifyStatus(status, body, nil)
	}

	var user RawUser

	if uerr := json.Unmarshal(body, &user); uerr != nil || user.ID == "" {
		c.logger.Error("upstream user response unusable, id=", id)
		return nil, &Error{Kind: ErrKindBadUpstream, Status: status, Message: "Invalid response from Discord API"}
	}

	return &user, nil
}

// do issues one paced, authenticated GET and returns the status and
// body. Transport failures come back classified.
func (c *Client) do(ctx context.Context, rawURL string) (int, []byte, error) {
	if err := c.waitForSlot(ctx); err != nil {
		return 0, nil, &Error{Kind: ErrKindNetwork, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)

	if err != nil {
		return 0, nil, &Error{Kind: ErrKindNetwork, Message: err.Error()}
	}

	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", "application/json")

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)

	if err != nil {
		if isTimeout(err) {
			return 0, nil, &Error{Kind: ErrKindTimeout, Message: "Request timeout"}
		}

		c.logger.Error("upstream call failed: ", err)

		return 0, nil, &Error{Kind: ErrKindNetwork, Message: "Failed to reach Discord API"}
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if err != nil {
		if isTimeout(err) {
			return 0, nil, &Error{Kind: ErrKindTimeout, Message: "Request timeout"}
		}

		return 0, nil, &Error{Kind: ErrKindNetwork, Message: "Failed to read Discord API response"}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return resp.StatusCode, body, c.classifyStatus(resp.StatusCode, body, resp.Header)
	}

	return resp.StatusCode, body, nil
}

// waitForSlot reserves the next upstream call slot, enforcing the
// minimum spacing even when many requests race for it.
func (c *Client) waitForSlot(ctx context.Context) error {
	if c.pace <= 0 {
		return nil
	}

	c.mu.Lock()

	now := time.Now()
	slot := c.nextSlot

	if slot.Before(now) {
		slot = now
	}

	c.nextSlot = slot.Add(c.pace)
	c.mu.Unlock()

	wait := time.Until(slot)

	if wait <= 0 {
		return nil
	}

	t := time.NewTimer(wait)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) classifyStatus(status int, body []byte, header http.Header) error {
	var msg apiError

	_ = json.Unmarshal(body, &msg)

	switch status {
	case http.StatusTooManyRequests:
		retryAfter := defaultRetryAfter

		if header != nil {
			if secs, err := strconv.ParseFloat(header.Get("Retry-After"), 64); err == nil && secs > 0 {
				retryAfter = time.Duration(secs * float64(time.Second))
			}
		}

		message := msg.Message

		if message == "" {
			message = "Rate limited by Discord API"
		}

		return &Error{Kind: ErrKindRateLimited, Status: status, Message: message, RetryAfter: retryAfter}
	case http.StatusUnauthorized:
		c.logger.Error("upstream rejected bot credential ", c.MaskedToken())

		return &Error{Kind: ErrKindUnauthorized, Status: status, Message: "Discord API credential rejected"}
	default:
		message := msg.Message

		if message == "" {
			message = "Discord API error: " + strconv.Itoa(status)
		}

		return &Error{Kind: ErrKindUpstream, Status: status, Message: message}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var nerr interface{ Timeout() bool }

	return errors.As(err, &nerr) && nerr.Timeout()
}
