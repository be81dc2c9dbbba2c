package usecase

import (
	"context"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type Readiness struct {
	checkers []Checker
}

func NewReadiness(checkers ...Checker) *Readiness {
	return &Readiness{checkers: checkers}
}

// Ready fails with the first unhealthy dependency.
func (r *Readiness) Ready(ctx context.Context) error {
	for _, ch := range r.checkers {
		if err := ch.Check(ctx); err != nil {
			return fmt.Errorf("%s: %w", ch.Name(), err)
		}
	}
	return nil
}
