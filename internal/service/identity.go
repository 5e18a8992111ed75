package service

import (
	"context"

	"bfv-tracker/internal/api"
	"bfv-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type Resolver struct {
	provider Provider
	caches   *Caches
	logger   zerolog.Logger
}

func NewResolver(provider Provider, caches *Caches, logger zerolog.Logger) *Resolver {
	return &Resolver{provider: provider, caches: caches, logger: logger}
}

// Resolve maps a display name to the player's persona id.
func (r *Resolver) Resolve(ctx context.Context, name string) (*domain.PlayerIdentity, error) {
	resp := r.caches.Identity.GetOrCompute(name, func() *api.CheckPlayerResponse {
		// detached so one caller's cancellation is not cached for everyone
		return r.provider.CheckPlayer(context.WithoutCancel(ctx), name)
	})

	if resp == nil || !resp.Status.Valid || resp.Status.Value != 1 || resp.Data.PersonaID == "" {
		r.logger.Info().Str("name", name).Msg("player not found")
		return nil, ErrPlayerNotFound
	}

	identity := &domain.PlayerIdentity{
		QueryName:     name,
		PersonaID:     resp.Data.PersonaID.String(),
		CanonicalName: resp.Data.Name,
	}
	if identity.CanonicalName == "" {
		identity.CanonicalName = name
	}

	r.logger.Debug().Str("name", name).Str("persona_id", identity.PersonaID).Msg("player resolved")
	return identity, nil
}
