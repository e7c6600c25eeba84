package goConsole

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/OpenAdminHQ/goConsole/api"
	"github.com/OpenAdminHQ/goConsole/storage"
	"github.com/OpenAdminHQ/goConsole/token"
)

/*
====================================
RESTORE
====================================
*/

// Restore describes the restore operation and its observable behavior.
//
// Restore may return an error when input validation, dependency calls, or security checks fail.
// Restore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Restore(ctx context.Context) error {
	if c == nil {
		return ErrClientNotReady
	}
	defer c.finishLoading()

	creds, err := c.store.Load(ctx)
	if err != nil {
		c.metricInc(MetricRestoreFailure)
		c.emitAudit(ctx, auditEventRestoreFailure, false, "", "", err, nil)
		return fmt.Errorf("load stored session: %w", err)
	}

	if creds.AccessToken == "" {
		c.metricInc(MetricRestoreEmpty)
		c.emitAudit(ctx, auditEventRestoreEmpty, true, "", "", nil, nil)
		return nil
	}

	var user UserRecord
	if err := json.Unmarshal(creds.User, &user); err != nil || user.Username == "" {
		// A token without a readable user record is useless. Purge it.
		c.purgeStorage(ctx)
		c.metricInc(MetricRestoreFailure)
		c.emitAudit(ctx, auditEventRestoreFailure, false, "", "", ErrInvalidUserRecord, nil)
		return nil
	}

	if !token.IsExpired(creds.AccessToken, time.Now()) {
		c.adopt(ctx, creds.AccessToken, creds.RefreshToken, &user, false)
		c.metricInc(MetricRestoreHit)
		c.emitAudit(ctx, auditEventSessionRestored, true, userID(&user), user.Username, nil, nil)
		c.notify()
		return nil
	}

	// Access token expired while we were away. Try one silent refresh with
	// the stored refresh token before giving up on the session.
	c.metricInc(MetricRestoreExpired)
	c.emitAudit(ctx, auditEventRestoreExpired, true, userID(&user), user.Username, nil, nil)

	if creds.RefreshToken == "" {
		c.purgeStorage(ctx)
		c.metricInc(MetricRestoreFailure)
		c.emitAudit(ctx, auditEventRestoreFailure, false, userID(&user), user.Username, ErrRefreshTokenMissing, nil)
		return nil
	}

	resp, err := c.api.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		c.purgeStorage(ctx)
		c.metricInc(MetricRestoreFailure)
		c.emitAudit(ctx, auditEventRestoreFailure, false, userID(&user), user.Username, err, nil)
		return nil
	}

	if err := c.store.SetAccessToken(ctx, resp.AccessToken); err != nil {
		log.Print("goConsole: persist refreshed access token: ", err)
	}
	c.adopt(ctx, resp.AccessToken, creds.RefreshToken, &user, false)
	c.metricInc(MetricRestoreHit)
	c.emitAudit(ctx, auditEventSessionRestored, true, userID(&user), user.Username, nil, nil)
	c.notify()
	return nil
}

/*
====================================
LOGIN
====================================
*/

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Login(ctx context.Context, username, password string) (*UserRecord, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}
	defer c.finishLoading()

	resp, err := c.api.Login(ctx, username, password)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			err = ErrInvalidCredentials
		}
		c.metricInc(MetricLoginFailure)
		c.emitAudit(ctx, auditEventLoginFailure, false, "", username, err, nil)
		return nil, err
	}

	var user UserRecord
	if err := json.Unmarshal(resp.User, &user); err != nil || user.Username == "" {
		c.metricInc(MetricLoginFailure)
		c.emitAudit(ctx, auditEventLoginFailure, false, "", username, ErrInvalidUserRecord, nil)
		return nil, ErrInvalidUserRecord
	}

	c.adopt(ctx, resp.AccessToken, resp.RefreshToken, &user, true)
	c.metricInc(MetricLoginSuccess)
	c.emitAudit(ctx, auditEventLoginSuccess, true, userID(&user), user.Username, nil, nil)
	c.notify()
	return &user, nil
}

// LoginWithTokens describes the loginwithtokens operation and its observable behavior.
//
// LoginWithTokens may return an error when input validation, dependency calls, or security checks fail.
// LoginWithTokens does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) LoginWithTokens(ctx context.Context, accessToken, refreshToken string, user UserRecord) error {
	if c == nil {
		return ErrClientNotReady
	}
	if accessToken == "" || user.Username == "" {
		return ErrInvalidCredentials
	}
	defer c.finishLoading()

	c.adopt(ctx, accessToken, refreshToken, &user, true)
	c.metricInc(MetricLoginSuccess)
	c.emitAudit(ctx, auditEventLoginSuccess, true, userID(&user), user.Username, nil, func() map[string]string {
		return map[string]string{"source": "external_tokens"}
	})
	c.notify()
	return nil
}

/*
====================================
LOGOUT
====================================
*/

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Logout(ctx context.Context) {
	if c == nil {
		return
	}

	c.mu.Lock()
	user := c.user
	hadToken := c.accessToken != ""
	c.mu.Unlock()

	// Best effort. The server sweeping its session record is a courtesy;
	// the local session dies regardless.
	if hadToken {
		if err := c.api.Logout(ctx); err != nil {
			log.Print("goConsole: logout notify: ", err)
			c.metricInc(MetricLogoutNotifyFailure)
			c.emitAudit(ctx, auditEventLogoutNotifyFailure, false, userID(user), userName(user), err, nil)
		}
	}

	c.purgeStorage(ctx)

	c.mu.Lock()
	c.user = nil
	c.accessToken = ""
	c.refreshToken = ""
	c.generation++
	c.stopRenewal()
	c.mu.Unlock()

	c.metricInc(MetricLogout)
	c.emitAudit(ctx, auditEventLogout, true, userID(user), userName(user), nil, nil)
	c.notify()
}

/*
====================================
REFRESH
====================================
*/

// Refresh describes the refresh operation and its observable behavior.
//
// Refresh may return an error when input validation, dependency calls, or security checks fail.
// Refresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Refresh(ctx context.Context) error {
	if c == nil {
		return ErrClientNotReady
	}

	c.mu.Lock()
	gen := c.generation
	user := c.user
	refreshToken := c.refreshToken
	c.mu.Unlock()

	if refreshToken == "" {
		if creds, err := c.store.Load(ctx); err == nil {
			refreshToken = creds.RefreshToken
		}
	}

	if refreshToken == "" {
		c.metricInc(MetricRefreshFailure)
		c.emitAudit(ctx, auditEventRefreshFailure, false, userID(user), userName(user), ErrRefreshTokenMissing, nil)
		c.Logout(ctx)
		return ErrRefreshTokenMissing
	}

	resp, err := c.api.Refresh(ctx, refreshToken)
	if err != nil {
		c.metricInc(MetricRefreshFailure)
		c.emitAudit(ctx, auditEventRefreshFailure, false, userID(user), userName(user), err, nil)
		c.Logout(ctx)
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	c.mu.Lock()
	if c.generation != gen {
		// The session changed identity while the request was in flight.
		// The result belongs to a session that no longer exists.
		c.mu.Unlock()
		return nil
	}
	c.accessToken = resp.AccessToken
	c.mu.Unlock()

	if err := c.store.SetAccessToken(ctx, resp.AccessToken); err != nil {
		log.Print("goConsole: persist refreshed access token: ", err)
	}

	// The session may have been logged out between the memory update and the
	// storage write above, in which case the token just persisted outlived
	// its session's Clear and must be removed again.
	c.mu.Lock()
	superseded := c.generation != gen
	c.mu.Unlock()
	if superseded {
		c.purgeStorage(ctx)
		return nil
	}

	c.metricInc(MetricRefreshSuccess)
	c.emitAudit(ctx, auditEventRefreshSuccess, true, userID(user), userName(user), nil, nil)
	c.notify()
	return nil
}

/*
====================================
SHARED HELPERS
====================================
*/

// adopt installs a session triple: durable storage first when persist is set,
// then the in-memory mirror, then the renewal timer.
func (c *Client) adopt(ctx context.Context, accessToken, refreshToken string, user *UserRecord, persist bool) {
	if persist {
		data, err := json.Marshal(user)
		if err == nil {
			err = c.store.Save(ctx, storage.Credentials{
				AccessToken:  accessToken,
				RefreshToken: refreshToken,
				User:         data,
			})
		}
		if err != nil {
			log.Print("goConsole: persist session: ", err)
		}
	}

	c.mu.Lock()
	c.user = user
	c.accessToken = accessToken
	c.refreshToken = refreshToken
	c.generation++
	c.armRenewal()
	c.mu.Unlock()
}

func (c *Client) purgeStorage(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		log.Print("goConsole: clear stored session: ", err)
	}
}

func (c *Client) finishLoading() {
	c.mu.Lock()
	was := c.loading
	c.loading = false
	c.mu.Unlock()
	if was {
		c.notify()
	}
}

func userID(u *UserRecord) string {
	if u == nil || u.ID == 0 {
		return ""
	}
	return fmt.Sprintf("%d", u.ID)
}

func userName(u *UserRecord) string {
	if u == nil {
		return ""
	}
	return u.Username
}
