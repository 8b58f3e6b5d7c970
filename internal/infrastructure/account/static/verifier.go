// Package static resolves bearer tokens from a fixed token-to-user mapping.
// It stands in for a real identity provider in development and tests.
package static

import (
	"context"
	"fmt"
	"strings"

	"github.com/jordangerads/pickem/internal/domain/user"
	"github.com/jordangerads/pickem/internal/usecase"
)

type Verifier struct {
	principals map[string]user.Principal
}

// NewVerifier builds a verifier from "token:userID:email" entries.
func NewVerifier(entries []string) (*Verifier, error) {
	principals := make(map[string]user.Principal, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed static token entry %q, want token:userID:email", entry)
		}
		var userID int64
		if _, err := fmt.Sscanf(parts[1], "%d", &userID); err != nil || userID <= 0 {
			return nil, fmt.Errorf("malformed user id in static token entry %q", entry)
		}
		principals[parts[0]] = user.Principal{UserID: userID, Email: parts[2]}
	}

	return &Verifier{principals: principals}, nil
}

func (v *Verifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v.principals[strings.TrimSpace(token)]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown access token", usecase.ErrUnauthorized)
	}
	return principal, nil
}
