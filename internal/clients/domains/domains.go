package domains

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/utils"
)

// Registrar points custom domains at the platform edge. Registration is
// best-effort from the caller's perspective; failures surface as errors
// for the caller to log.
type Registrar interface {
	RegisterDomain(ctx context.Context, oldDomain, newDomain string) error
}

type httpRegistrar struct {
	apiURL string
	apiKey string
	client *http.Client
	log    *logger.Logger
}

func NewRegistrar(baseLog *logger.Logger) Registrar {
	log := baseLog.With("client", "DomainRegistrar")
	return &httpRegistrar{
		apiURL: utils.GetEnv("DOMAIN_API_URL", "", log),
		apiKey: utils.GetEnv("DOMAIN_API_KEY", "", log),
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

type registerRequest struct {
	OldDomain string `json:"oldDomain,omitempty"`
	NewDomain string `json:"newDomain"`
}

func (r *httpRegistrar) RegisterDomain(ctx context.Context, oldDomain, newDomain string) error {
	if r.apiURL == "" {
		r.log.Debug("DOMAIN_API_URL unset, skipping domain registration", "domain", newDomain)
		return nil
	}
	payload, err := json.Marshal(registerRequest{OldDomain: oldDomain, NewDomain: newDomain})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.apiURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("registering domain %s: %w", newDomain, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("registering domain %s: registrar returned %d", newDomain, resp.StatusCode)
	}
	r.log.Info("registered custom domain", "old", oldDomain, "new", newDomain)
	return nil
}
