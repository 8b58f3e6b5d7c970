package pool

import (
	"fmt"

	"github.com/jordangerads/pickem/internal/domain/scoring"
)

// Pool is a group of users sharing one weekly pick competition. The scoring
// method never changes after creation.
type Pool struct {
	ID            int64
	Name          string
	ScoringMethod scoring.Method
}

func (p Pool) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("pool name is required")
	}
	if !p.ScoringMethod.Valid() {
		return fmt.Errorf("pool scoring method %q is not supported", p.ScoringMethod)
	}

	return nil
}
