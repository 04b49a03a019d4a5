package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/and161185/edu-web/internal/errs"
	"github.com/and161185/edu-web/internal/model"
)

// User-facing messages for failures that carry no server text.
const (
	MsgAuthFailed         = "authentication request failed"
	MsgLoginUnreachable   = "cannot reach the authentication server, please try again later"
	MsgRefreshUnreachable = "cannot refresh the session"
	MsgSignupUnreachable  = "cannot reach the registration server, please try again later"
)

// Login exchanges credentials for a session payload.
func (c *Client) Login(ctx context.Context, cred model.Credentials) (model.LoginResponse, error) {
	body := model.Credentials{Email: strings.TrimSpace(cred.Email), Password: cred.Password}
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body)
	if err != nil {
		return model.LoginResponse{}, &errs.NetworkError{Message: MsgLoginUnreachable, Err: err}
	}
	defer resp.Body.Close()
	return decodeSession(resp)
}

// Refresh exchanges a refresh token for a new session payload.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (model.LoginResponse, error) {
	body := struct {
		RefreshToken string `json:"refreshToken"`
	}{refreshToken}
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/refresh", "", body)
	if err != nil {
		return model.LoginResponse{}, &errs.NetworkError{Message: MsgRefreshUnreachable, Err: err}
	}
	defer resp.Body.Close()
	return decodeSession(resp)
}

// Logout notifies the backend. Failures are logged and swallowed.
func (c *Client) Logout(ctx context.Context, accessToken, refreshToken string) {
	body := struct {
		RefreshToken string `json:"refreshToken,omitempty"`
	}{refreshToken}
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/logout", accessToken, body)
	if err != nil {
		c.log.Warn("logout endpoint unreachable", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if !ok(resp.StatusCode) {
		c.log.Warn("logout request failed", zap.Int("status", resp.StatusCode))
	}
}

// Signup registers an account. A rejection carries the response text.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/signup", "", req)
	if err != nil {
		return &errs.NetworkError{Message: MsgSignupUnreachable, Err: err}
	}
	defer resp.Body.Close()
	if ok(resp.StatusCode) {
		return nil
	}
	msg := readText(resp)
	if msg == "" {
		msg = fmt.Sprintf("signup failed: %d", resp.StatusCode)
	}
	return &errs.ServerError{Status: resp.StatusCode, Message: msg}
}

func decodeSession(resp *http.Response) (model.LoginResponse, error) {
	if !ok(resp.StatusCode) {
		b, _ := io.ReadAll(resp.Body)
		return model.LoginResponse{}, &errs.ServerError{Status: resp.StatusCode, Message: errorMessage(b)}
	}
	var out model.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.LoginResponse{}, fmt.Errorf("decode session response: %w", err)
	}
	return out, nil
}

// errorMessage picks, in order: a JSON string body, its "message", its "error", else MsgAuthFailed.
func errorMessage(body []byte) string {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return MsgAuthFailed
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case map[string]any:
		for _, k := range []string{"message", "error"} {
			if s, isStr := t[k].(string); isStr && s != "" {
				return s
			}
		}
	}
	return MsgAuthFailed
}
