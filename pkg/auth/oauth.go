package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	// ClientSecretsFile is the Google API credentials.json downloaded from the
	// Cloud Console, placed in the data directory.
	ClientSecretsFile = "credentials.json"

	// TokenFile holds the user's access and refresh token, next to the credentials.
	TokenFile = "token.json"

	// LocalhostAuthPort is where the local web server captures the OAuth redirect.
	LocalhostAuthPort = "6789"
)

// CalendarScopes are the scopes needed to write schedule blocks as events.
func CalendarScopes() []string {
	return []string{
		calendar.CalendarEventsScope,
		calendar.CalendarReadonlyScope,
	}
}

// TokenPath is where the OAuth token for dir is cached.
func TokenPath(dir string) string {
	return filepath.Join(dir, TokenFile)
}

// GetConfig creates an oauth2.Config from the client secrets file in dir.
func GetConfig(dir string, scopes []string) (*oauth2.Config, error) {
	clientSecretsFile := filepath.Join(dir, ClientSecretsFile)
	b, err := os.ReadFile(clientSecretsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", clientSecretsFile, err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	config.RedirectURL = normalizeRedirect(config.RedirectURL)
	return config, nil
}

// normalizeRedirect pins localhost and out-of-band redirects to LocalhostAuthPort.
func normalizeRedirect(redirect string) string {
	log := zap.L()
	if redirect == "urn:ietf:wg:oauth:2.0:oob" || redirect == "" {
		return fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort)
	}

	parsedURL, err := url.Parse(redirect)
	if err != nil {
		log.Warn("could not parse redirect URL, using it as is", zap.String("redirect", redirect), zap.Error(err))
		return redirect
	}
	if parsedURL.Hostname() != "localhost" && parsedURL.Hostname() != "127.0.0.1" {
		log.Warn("redirect URL is not a localhost callback", zap.String("redirect", redirect))
		return redirect
	}
	if port := parsedURL.Port(); port != "" && port != LocalhostAuthPort {
		log.Warn("forcing localhost redirect port", zap.String("configured", port), zap.String("port", LocalhostAuthPort))
	}
	parsedURL.Host = net.JoinHostPort(parsedURL.Hostname(), LocalhostAuthPort)
	return parsedURL.String()
}

// GetClient retrieves an authenticated *http.Client.
// It loads an existing token from dir, or runs the web authorization flow
// and caches the result. The returned client refreshes expired tokens itself.
func GetClient(ctx context.Context, dir string, scopes []string) (*http.Client, error) {
	config, err := GetConfig(dir, scopes)
	if err != nil {
		return nil, err
	}

	tokenFile := TokenPath(dir)
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		zap.L().Info("no cached token, starting web authorization", zap.String("token_file", tokenFile))
		tok, err = getTokenFromWeb(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("failed to get token from web: %w", err)
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, err
		}
	}

	src := config.TokenSource(ctx, tok)
	current, err := src.Token()
	if err == nil && (current.AccessToken != tok.AccessToken || current.RefreshToken != tok.RefreshToken) {
		if err := saveToken(tokenFile, current); err != nil {
			zap.L().Warn("could not persist refreshed token", zap.Error(err))
		}
	}
	return oauth2.NewClient(ctx, src), nil
}

// getTokenFromWeb runs the authorization code flow through a local web server.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%s", LocalhostAuthPort))
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on port %s: %w", LocalhostAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				select {
				case errCh <- fmt.Errorf("authorization code not found in redirect URL"):
				default:
				}
				return
			}
			fmt.Fprintf(w, "Authentication successful! You can close this window.")
			select {
			case codeCh <- code:
			default:
			}
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case errCh <- fmt.Errorf("HTTP server error: %w", err):
			default:
			}
		}
	}()
	defer server.Shutdown(context.Background())

	// AccessTypeOffline is required for a refresh token.
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Open the following URL in your browser to let dayblock write to your calendar:\n%s\n", authURL)

	select {
	case authCode := <-codeCh:
		exCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := config.Exchange(exCtx, authCode)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from Google: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Minute):
		return nil, fmt.Errorf("authorization timed out. Please try again")
	}
}

// tokenFromFile reads an oauth2.Token from a JSON file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", file, err)
	}
	return tok, nil
}

// saveToken writes an oauth2.Token to path, owner read/write only.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("could not create token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// Reauthorize drops any cached token and runs the authorization flow again.
func Reauthorize(ctx context.Context, dir string) (*calendar.Service, error) {
	tokenFile := TokenPath(dir)
	if err := os.Remove(tokenFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not delete token file '%s': %w", tokenFile, err)
	}
	return GetCalendarService(ctx, dir)
}

// GetCalendarService creates an authenticated Google Calendar service.
func GetCalendarService(ctx context.Context, dir string) (*calendar.Service, error) {
	client, err := GetClient(ctx, dir, CalendarScopes())
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated client for Calendar API: %w", err)
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google Calendar service: %w", err)
	}
	return srv, nil
}
