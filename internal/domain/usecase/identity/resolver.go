package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/persistence"
)

// Profile carries optional profile fields to seed or backfill onto the
// resolved user record
type Profile struct {
	DisplayName string
	Channel     entity.Channel
}

// Resolver maps any of the interchangeable external identifiers to a single
// internal user record, creating one on first contact.
type Resolver struct {
	users        persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewResolver creates a new identity resolver
func NewResolver(users persistence.UserRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) *Resolver {
	return &Resolver{
		users:        users,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Resolve maps the supplied identifiers to one user. Lookup runs in fixed
// priority order (wallet > chat > email). When several identifiers resolve to
// different existing users the call fails with an identity conflict instead
// of silently merging. When none resolve, a new user is created seeded with
// whatever was supplied. When exactly one resolves, missing identifiers are
// backfilled onto that record; backfill only adds, never overwrites.
// The second return value reports whether a new user was created.
func (r *Resolver) Resolve(ctx context.Context, ids entity.Identifiers, profile *Profile) (*entity.User, bool, error) {
	if ids.Empty() {
		return nil, false, fmt.Errorf("%w: no identifier supplied", errs.ErrValidation)
	}

	matches, err := r.lookupAll(ctx, ids)
	if err != nil {
		return nil, false, err
	}

	switch len(matches) {
	case 0:
		user, err := r.createUser(ctx, ids, profile)
		if err != nil {
			return nil, false, err
		}
		return user, true, nil

	case 1:
		user := matches[0].user
		if err := r.backfill(ctx, user, ids, profile); err != nil {
			return nil, false, err
		}
		return user, false, nil

	default:
		// Two or more different users matched different identifiers.
		r.logger.Warn("Identity conflict during resolution", map[string]any{
			"identifier_a": matches[0].identifier,
			"user_a":       matches[0].user.ID,
			"identifier_b": matches[1].identifier,
			"user_b":       matches[1].user.ID,
		})
		return nil, false, errs.NewIdentityConflictError(matches[0].identifier, matches[1].identifier)
	}
}

type match struct {
	identifier string
	user       *entity.User
}

// lookupAll queries each supplied identifier in priority order and collapses
// hits on the same user into one match.
func (r *Resolver) lookupAll(ctx context.Context, ids entity.Identifiers) ([]match, error) {
	type lookup struct {
		value string
		fn    func(context.Context, string) (*entity.User, error)
	}
	lookups := []lookup{
		{ids.WalletAddress, r.users.GetByWalletAddress},
		{ids.ChatID, r.users.GetByChatID},
		{ids.Email, r.users.GetByEmail},
	}

	var matches []match
	for _, l := range lookups {
		if l.value == "" {
			continue
		}
		user, err := l.fn(ctx, l.value)
		if err != nil {
			if errors.Is(err, errs.ErrUserNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to look up identifier: %w", err)
		}

		duplicate := false
		for _, m := range matches {
			if m.user.ID == user.ID {
				duplicate = true
				break
			}
		}
		if !duplicate {
			matches = append(matches, match{identifier: l.value, user: user})
		}
	}
	return matches, nil
}

// createUser registers a new user seeded with the supplied identifiers
func (r *Resolver) createUser(ctx context.Context, ids entity.Identifiers, profile *Profile) (*entity.User, error) {
	channel := entity.ChannelWeb
	if profile != nil && profile.Channel != "" {
		channel = profile.Channel
	}

	user, err := entity.NewUser(ids, channel, r.timeProvider)
	if err != nil {
		return nil, err
	}
	if profile != nil && profile.DisplayName != "" {
		user.DisplayName = profile.DisplayName
	}

	if err := r.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("New user onboarded", map[string]any{
		"user_id":      user.ID,
		"channel":      string(user.Channel),
		"display_name": user.DisplayName,
	})
	return user, nil
}

// backfill adds missing identifiers and profile fields onto an existing user.
// Conflicting overwrites surface as identity conflicts; nothing is persisted
// unless something actually changed.
func (r *Resolver) backfill(ctx context.Context, user *entity.User, ids entity.Identifiers, profile *Profile) error {
	changed, err := user.Backfill(ids, r.timeProvider)
	if err != nil {
		return err
	}

	if profile != nil && profile.DisplayName != "" && user.DisplayName == entity.DeriveDisplayName(entity.Identifiers{
		WalletAddress: user.WalletAddress,
		ChatID:        user.ChatID,
		Email:         user.Email,
	}) {
		// Only replace the derived default, never a name the user chose.
		user.DisplayName = profile.DisplayName
		changed = true
	}

	if !changed {
		return nil
	}

	if err := r.users.UpdateIdentifiers(ctx, user); err != nil {
		if errors.Is(err, errs.ErrDuplicateUser) {
			// Another user claimed the identifier between lookup and update.
			return errs.NewIdentityConflictError(user.ID, err.Error())
		}
		return fmt.Errorf("failed to backfill identifiers: %w", err)
	}

	r.logger.Debug("Backfilled user identifiers", map[string]any{
		"user_id": user.ID,
	})
	return nil
}
