package cmd

import (
	"fmt"

	"github.com/jrsteele09/project-sync-web/auth"
	"github.com/jrsteele09/project-sync-web/backend"
	"github.com/jrsteele09/project-sync-web/internal/config"
	"github.com/jrsteele09/project-sync-web/notify"
	"github.com/jrsteele09/project-sync-web/session"
	"github.com/jrsteele09/project-sync-web/token"
)

// app is the wired client core shared by every command
type app struct {
	config  config.Config
	store   *session.Store
	gateway *auth.Gateway
	notices *notify.Center
}

func newApp(c config.Config, recorder auth.Recorder) (*app, error) {
	client, err := backend.New(c.GetBackendURL(), c.GetRequestTimeout())
	if err != nil {
		return nil, fmt.Errorf("[newApp] backend client: %w", err)
	}

	store, writer := session.New()
	notices := notify.NewCenter()

	options := []auth.GatewayOption{
		auth.WithNotifier(notices),
		auth.WithRestoreTimeout(c.GetRestoreTimeout()),
	}
	if recorder != nil {
		options = append(options, auth.WithRecorder(recorder))
	}
	if path := c.GetTokenCachePath(); path != "" {
		repo, err := token.NewFileRepo(path, c.GetTokenCacheSecret())
		if err != nil {
			return nil, fmt.Errorf("[newApp] token cache: %w", err)
		}
		options = append(options, auth.WithTokenRepo(repo))
	}

	gateway, err := auth.NewGateway(client, writer, options...)
	if err != nil {
		return nil, fmt.Errorf("[newApp] gateway: %w", err)
	}

	return &app{config: c, store: store, gateway: gateway, notices: notices}, nil
}
