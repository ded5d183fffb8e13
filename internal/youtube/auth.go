package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"spotisync/internal/server"
	"spotisync/internal/shared"
)

const tokenScope = youtube.YoutubeForceSslScope

// consentTimeout bounds how long the interactive flow waits for the user to
// complete the browser grant.
const consentTimeout = 3 * time.Minute

// Authenticate produces an authenticated Data API client.
//
// Credential lifecycle: load token file → refresh if expired → interactive
// browser grant if absent or unrefreshable → persist token file. A missing
// client-secrets file is fatal for the stage and carries remediation text.
func Authenticate(ctx context.Context, cfg shared.YouTubeConfig, logger *log.Logger) (*youtube.Service, error) {
	secrets, err := os.ReadFile(cfg.ClientSecretsPath)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: client secrets file not found at %q: download your OAuth client credentials from the Google Cloud console and place them there, or set CLIENT_SECRETS_PATH",
			shared.ErrMissingCredentials, cfg.ClientSecretsPath)
	}

	oauthCfg, err := google.ConfigFromJSON(secrets, tokenScope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid client secrets file: %v", shared.ErrAuthFailed, err)
	}
	oauthCfg.RedirectURL = "http://" + cfg.CallbackAddr + "/callback"

	if token := loadToken(cfg.TokenPath, logger); token != nil {
		ts := oauthCfg.TokenSource(ctx, token)
		if fresh, err := ts.Token(); err == nil {
			if fresh.AccessToken != token.AccessToken {
				saveToken(cfg.TokenPath, fresh, logger)
			}
			return newService(ctx, oauthCfg, fresh)
		} else {
			logger.Warn("token refresh failed, requesting a new grant", "err", err)
		}
	}

	token, err := consentFlow(ctx, oauthCfg, cfg.CallbackAddr, logger)
	if err != nil {
		return nil, err
	}
	saveToken(cfg.TokenPath, token, logger)

	return newService(ctx, oauthCfg, token)
}

func newService(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (*youtube.Service, error) {
	svc, err := youtube.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return svc, nil
}

// consentFlow runs the browser-based authorization code grant with a
// localhost callback server.
func consentFlow(ctx context.Context, cfg *oauth2.Config, addr string, logger *log.Logger) (*oauth2.Token, error) {
	state := shared.GenerateID()
	handler := server.NewOAuthHandler(cfg, state)

	shutdown, err := server.Serve(addr, handler)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to start callback server: %v", shared.ErrAuthFailed, err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		shutdown(shutdownCtx)
	}()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	if err := shared.OpenBrowser(authURL); err != nil {
		logger.Warn("could not open browser automatically", "err", err)
	}
	logger.Info("waiting for authorization", "url", authURL)

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
		}
		return result.Token, nil
	case <-time.After(consentTimeout):
		return nil, fmt.Errorf("%w: no authorization received", shared.ErrTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// loadToken reads a stored token file. Any failure means "no usable token".
func loadToken(path string, logger *log.Logger) *oauth2.Token {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		logger.Warn("stored token is invalid, requesting a new one", "path", path)
		return nil
	}
	return &token
}

// saveToken persists the token for the next run. Failure to persist is not
// fatal since the session still holds a valid token.
func saveToken(path string, token *oauth2.Token, logger *log.Logger) {
	data, err := json.Marshal(token)
	if err != nil {
		logger.Warn("failed to encode token", "err", err)
		return
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		logger.Warn("failed to save token file", "path", path, "err", err)
		return
	}
	logger.Debug("token saved", "path", path)
}
