package app

import (
	"context"

	"tableflip.dev/penpal/pkg/gemini"
	"tableflip.dev/penpal/pkg/identity"
	"tableflip.dev/penpal/pkg/logging"
	"tableflip.dev/penpal/pkg/persona"
	"tableflip.dev/penpal/pkg/store"
)

// Env bundles everything a runner needs: the service plus the local-only
// settings and session handles that never sync.
type Env struct {
	Service  *Service
	Config   store.Config
	Settings *store.Settings
	Identity *identity.FileProvider
}

// Bootstrap wires config, settings, identity, and the right persistence
// variant, then performs the initial load. A stored session selects the
// remote variant; otherwise state lives in the local diskv tree.
func Bootstrap(ctx context.Context) (*Env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	logging.Initialize(cfg.BasePath(), cfg.Debug())

	settings, err := store.LoadSettings(cfg)
	if err != nil {
		return nil, err
	}

	ident := identity.NewFileProvider(cfg.BasePath())

	var persistence store.Persistence
	if session, ok := ident.Current(); ok {
		persistence = store.NewRemote(session.Server, session.User, session.Token)
	} else {
		persistence, err = store.Load(cfg)
		if err != nil {
			return nil, err
		}
	}

	client := gemini.NewClient(settings.Model())
	svc := &Service{
		Persistence: persistence,
		Registry:    persona.NewRegistry(),
		Commentary:  client,
		Analysis:    client,
		Credentials: settings,
	}
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}

	return &Env{Service: svc, Config: cfg, Settings: settings, Identity: ident}, nil
}
