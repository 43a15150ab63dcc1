package userdir

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"order-service/internal/models"
	"order-service/internal/util"

	"go.uber.org/zap"
)

// Outcomes the remote directory can signal affirmatively. Anything else
// (timeout, connection refused, 5xx) is a transport failure and callers
// decide whether to substitute a fallback projection.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserUnauthorized = errors.New("user service unauthorized")
)

// Directory resolves user projections from the remote user service.
type Directory interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ResolveUsers resolves a set of user ids in one call. Ids that cannot
	// be resolved map to a fallback projection, so the returned map always
	// covers every requested id.
	ResolveUsers(ctx context.Context, ids []int64) map[int64]*models.User
}

// Client is the HTTP implementation of Directory, with an optional Redis
// cache in front of the remote service.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
	logger  *zap.Logger
}

// NewClient creates a directory client. cache may be nil.
func NewClient(baseURL string, timeout time.Duration, cache *Cache) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
		logger:  util.GetLogger(),
	}
}

// GetUserByID resolves a user by id.
func (c *Client) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if c.cache != nil {
		if user, ok := c.cache.GetByID(ctx, id); ok {
			return user, nil
		}
	}

	user, err := c.fetch(ctx, fmt.Sprintf("%s/users/get/%d", c.baseURL, id))
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Put(ctx, user)
	}
	return user, nil
}

// GetUserByEmail resolves a user by email.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if c.cache != nil {
		if user, ok := c.cache.GetByEmail(ctx, email); ok {
			return user, nil
		}
	}

	user, err := c.fetch(ctx, fmt.Sprintf("%s/users/get/email?email=%s", c.baseURL, url.QueryEscape(email)))
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Put(ctx, user)
	}
	return user, nil
}

// ResolveUsers resolves each distinct id with a single lookup, substituting
// a fallback projection when the lookup fails. The remote contract is
// single-lookup only, so this loops; the interface keeps callers independent
// of that detail.
func (c *Client) ResolveUsers(ctx context.Context, ids []int64) map[int64]*models.User {
	resolved := make(map[int64]*models.User, len(ids))
	for _, id := range ids {
		if _, ok := resolved[id]; ok {
			continue
		}

		user, err := c.GetUserByID(ctx, id)
		if err != nil {
			c.logger.Warn("User lookup failed, using fallback projection",
				zap.Int64("user_id", id),
				zap.Error(err))
			util.UserLookupFallbacksTotal.Inc()
			user = FallbackByID(id)
		}
		resolved[id] = user
	}
	return resolved
}

func (c *Client) fetch(ctx context.Context, rawURL string) (*models.User, error) {
	util.UserLookupsTotal.Inc()
	start := time.Now()
	defer func() {
		util.UserLookupLatency.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user service request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUserUnauthorized
	default:
		return nil, fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}
	return &user, nil
}
