package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL

	if opts.Token == "" {
		opts.Token = "testtoken1234567890"
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	c, err := New(opts)
	require.NoError(t, err)

	return c, srv
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(Options{BaseURL: "https://discord.com/api/v10"})

	assert.EqualError(t, err, "bot token not configured")
}

func TestMaskedToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, Options{
		Token: "MTA5OTY3supersecretpart",
	})

	assert.Equal(t, "MTA5OTY3...", c.MaskedToken())
	assert.NotContains(t, c.MaskedToken(), "supersecret")
}

func TestCheckInviteNotFoundMeansAvailable(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Unknown Invite", "code": 10006}`))
	}, Options{})

	lookup, err := c.CheckInvite(context.Background(), "free-code")

	require.NoError(t, err)
	assert.True(t, lookup.Available)
	assert.Nil(t, lookup.Invite)
}

func TestCheckInviteTaken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bot testtoken1234567890", r.Header.Get("Authorization"))
		assert.Equal(t, "/invites/cool-server", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("with_counts"))

		w.Write([]byte(`{
			"code": "cool-server",
			"guild": {"id": "41771983423143937", "name": "Cool Server", "icon": "abc123"},
			"channel": {"id": "127121515262115840", "name": "general", "type": 0},
			"approximate_member_count": 420,
			"approximate_presence_count": 69
		}`))
	}, Options{})

	lookup, err := c.CheckInvite(context.Background(), "cool-server")

	require.NoError(t, err)
	assert.False(t, lookup.Available)
	require.NotNil(t, lookup.Invite)
	require.NotNil(t, lookup.Invite.Guild)
	assert.Equal(t, "Cool Server", lookup.Invite.Guild.Name)
	assert.Equal(t, 420, lookup.Invite.ApproximateMemberCount)
}

func TestCheckInviteMissingGuildIsBadUpstream(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "weird"}`))
	}, Options{})

	_, err := c.CheckInvite(context.Background(), "weird")

	derr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindBadUpstream, derr.Kind)
	assert.Equal(t, "Invalid response from Discord API", derr.Message)
}

func TestCheckInviteRateLimited(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "2.5")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message": "You are being rate limited.", "retry_after": 2.5}`))
	}, Options{})

	_, err := c.CheckInvite(context.Background(), "busy")

	derr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindRateLimited, derr.Kind)
	assert.Equal(t, 2500*time.Millisecond, derr.RetryAfter)
	assert.Equal(t, "You are being rate limited.", derr.Message)
}

func TestCheckInviteRateLimitedWithoutHeader(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, Options{})

	_, err := c.CheckInvite(context.Background(), "busy")

	derr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindRateLimited, derr.Kind)
	assert.Equal(t, 5*time.Second, derr.RetryAfter)
	assert.Equal(t, "Rate limited by Discord API", derr.Message)
}

func TestCheckInviteUnauthorized(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "401: Unauthorized", "code": 0}`))
	}, Options{})

	_, err := c.CheckInvite(context.Background(), "anything")

	derr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindUnauthorized, derr.Kind)
	assert.Equal(t, "Discord API credential rejected", derr.Message)
}

func TestCheckInviteTimeout(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}, Options{
		Timeout: 20 * time.Millisecond,
	})

	_, err := c.CheckInvite(context.Background(), "slow")

	derr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindTimeout, derr.Kind)
	assert.Equal(t, "Request timeout", derr.Message)
}

func TestCheckInviteDedupesConcurrentCalls(t *testing.T) {
	var calls atomic.Int64

	release := make(chan struct{})

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.WriteHeader(http.StatusNotFound)
	}, Options{})

	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			lookup, err := c.CheckInvite(context.Background(), "same-code")

			assert.NoError(t, err)
			assert.True(t, lookup.Available)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
}

func TestPacingSpacesCalls(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, Options{
		Pace: 60 * time.Millisecond,
	})

	start := time.Now()

	_, err := c.CheckInvite(context.Background(), "one")
	require.NoError(t, err)

	_, err = c.CheckInvite(context.Background(), "two")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestPacingRespectsContextCancel(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, Options{
		Pace: time.Minute,
	})

	_, err := c.CheckInvite(context.Background(), "one")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.CheckInvite(ctx, "two")
	assert.Error(t, err)
}

func TestFetchUser(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/80351110224678912", r.URL.Path)

		w.Write([]byte(`{
			"id": "80351110224678912",
			"username": "nelly",
			"avatar": "8342729096ea3675442027381ff50dfe",
			"banner": null,
			"accent_color": 16711680,
			"public_flags": 64,
			"bot": false
		}`))
	}, Options{})

	user, err := c.FetchUser(context.Background(), "80351110224678912")

	require.NoError(t, err)
	assert.Equal(t, "nelly", user.Username)
	assert.Equal(t, 64, user.Flags)
	require.NotNil(t, user.AccentColor)
	assert.Equal(t, 16711680, *user.AccentColor)
	assert.Nil(t, user.Banner)
}

func TestFetchUserNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Unknown User", "code": 10013}`))
	}, Options{})

	_, err := c.FetchUser(context.Background(), "99999999999999999")

	derr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindNotFound, derr.Kind)
	assert.Equal(t, "User not found", derr.Message)
}

func TestFetchUserUnusableBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, Options{})

	_, err := c.FetchUser(context.Background(), "80351110224678912")

	derr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindBadUpstream, derr.Kind)
}

func TestUpstreamErrorPassthrough(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, Options{})

	_, err := c.CheckInvite(context.Background(), "anything")

	derr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindUpstream, derr.Kind)
	assert.Equal(t, http.StatusBadGateway, derr.Status)
	assert.Equal(t, "Discord API error: 502", derr.Message)
}
