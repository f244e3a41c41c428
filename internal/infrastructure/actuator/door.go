// Package actuator sends unlock commands to the physical lock controller.
package actuator

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/smartdoor/biometric-api/internal/core/ports"
)

// The controller sits on the local network next to the door; a short timeout
// keeps a dead controller from backing up the unlock queue.
const unlockTimeout = 2 * time.Second

// Gateway implements ports.DoorGateway against the lock controller's HTTP
// endpoint.
type Gateway struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewGateway creates a door gateway client. The token authenticates unlock
// commands with the controller.
func NewGateway(baseURL, token string) *Gateway {
	return &Gateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: unlockTimeout},
	}
}

// Unlock sends an authenticated unlock command. The subject and device refs
// travel as headers for the controller's local log only.
func (g *Gateway) Unlock(ctx context.Context, cmd ports.UnlockCommand) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/unlock", nil)
	if err != nil {
		return fmt.Errorf("door gateway: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	if cmd.DeviceRef != "" {
		req.Header.Set("X-Device-Ref", cmd.DeviceRef)
	}
	if cmd.SubjectRef != "" {
		req.Header.Set("X-Subject-Ref", cmd.SubjectRef)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("door gateway: unlock: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("door gateway: unlock failed (status %d)", resp.StatusCode)
	}
	return nil
}
