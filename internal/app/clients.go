package app

import (
	"context"
	"fmt"

	"github.com/openpress/openpress-backend/internal/clients/collab"
	"github.com/openpress/openpress-backend/internal/clients/domains"
	"github.com/openpress/openpress-backend/internal/clients/gcsbucket"
	"github.com/openpress/openpress-backend/internal/logger"
)

type Clients struct {
	Bucket    gcsbucket.Bucket
	Sessions  collab.SessionStore
	Registrar domains.Registrar
}

func wireClients(ctx context.Context, log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")
	bucket, err := gcsbucket.New(ctx, log)
	if err != nil {
		return Clients{}, fmt.Errorf("init gcs bucket: %w", err)
	}
	sessions, err := collab.NewSessionStore(ctx, log)
	if err != nil {
		return Clients{}, fmt.Errorf("init collab session store: %w", err)
	}
	return Clients{
		Bucket:    bucket,
		Sessions:  sessions,
		Registrar: domains.NewRegistrar(log),
	}, nil
}
