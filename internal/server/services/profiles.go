package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tokomonggo/server/internal/common"
	"github.com/tokomonggo/server/internal/server/models"
	"github.com/tokomonggo/server/internal/server/repositories/repomanager"
)

// ProfileService manages public seller profiles keyed by account id.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// GetOrCreate returns the profile for the given account, lazily creating it
// from account data if the signup flow never stored one. A concurrent create
// is resolved by re-reading the winning row.
func (s *ProfileService) GetOrCreate(ctx context.Context, authID string) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)

	profile, err := repo.GetByAuthID(ctx, authID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}

	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, authID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	displayName := profileDisplayName(account.Name, account.Email)
	profile, err = repo.Insert(ctx, &models.Profile{
		AuthID: account.ID,
		Name:   displayName,
		Email:  account.Email,
		Avatar: defaultAvatarURL(displayName),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return repo.GetByAuthID(ctx, authID)
		}
		return nil, fmt.Errorf("error creating profile: %w", err)
	}
	return profile, nil
}

// Update changes the mutable profile fields. The display name must not be
// blank.
func (s *ProfileService) Update(ctx context.Context, authID, name, location, avatar string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	profile, err := s.repomanager.Profiles(s.db).Update(ctx, authID, name, location, avatar)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return profile, nil
}

// profileDisplayName picks a human-readable name for a profile: the account
// name if present, otherwise the local part of the email.
func profileDisplayName(name, email string) string {
	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

// defaultAvatarURL builds an initials avatar for accounts that never
// uploaded a picture.
func defaultAvatarURL(name string) string {
	return "https://api.dicebear.com/6.x/initials/svg?seed=" + url.QueryEscape(name)
}
