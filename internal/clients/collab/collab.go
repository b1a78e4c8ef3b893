package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/utils"
)

// Collaborator is one entry in a session document's collaborator map,
// keyed by a journal subdomain or a username.
type Collaborator struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Thumbnail  string `json:"thumbnail"`
	Permission string `json:"permission"`
	Admin      bool   `json:"admin"`
}

type SessionSettings struct {
	StyleDesktop string `json:"styleDesktop"`
}

// SessionDocument is the editing-session state stored per document slug.
type SessionDocument struct {
	Collaborators map[string]Collaborator `json:"collaborators"`
	Settings      SessionSettings         `json:"settings"`
}

// SessionStore seeds collaborative editing sessions in the realtime backend.
type SessionStore interface {
	InitializeSession(ctx context.Context, slug string, doc SessionDocument) error
	Close() error
}

type redisSessionStore struct {
	rdb *redis.Client
	log *logger.Logger
}

func NewSessionStore(ctx context.Context, baseLog *logger.Logger) (SessionStore, error) {
	log := baseLog.With("client", "CollabSessionStore")
	addr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetEnv("REDIS_PASSWORD", "", log),
		DB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &redisSessionStore{rdb: rdb, log: log}, nil
}

func (s *redisSessionStore) InitializeSession(ctx context.Context, slug string, doc SessionDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling session document: %w", err)
	}
	key := "collab:doc:" + slug
	if err := s.rdb.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("seeding session %s: %w", key, err)
	}
	s.log.Debug("initialized collab session", "slug", slug)
	return nil
}

func (s *redisSessionStore) Close() error {
	return s.rdb.Close()
}
