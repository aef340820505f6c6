package cmd

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/config"
	"github.com/careerbridge/server/internal/domain/ids"
	"github.com/careerbridge/server/internal/domain/users"
	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/careerbridge/server/internal/storage"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// bootstrapAdmin seeds the first admin account from ADMIN_* env vars. It is
// a no-op when the account already exists or the vars are unset.
func bootstrapAdmin(ctx context.Context, cfg config.Config, repo storage.Repository, logger zerolog.Logger) error {
	bootstrap := cfg.AdminBootstrap
	if bootstrap.Email == "" || bootstrap.Password == "" {
		logger.Debug().Msg("admin bootstrap env vars not set; skipping")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := repo.Users().GetByEmail(ctx, bootstrap.Email); err == nil {
		logger.Debug().Str("email", bootstrap.Email).Msg("admin account already exists")
		return nil
	} else if workflow.KindOf(err) != workflow.KindNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrap.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	ulid, err := ids.NewULID()
	if err != nil {
		return err
	}

	_, err = repo.Users().Create(ctx, users.CreateParams{
		ULID:         ulid,
		Email:        bootstrap.Email,
		FullName:     bootstrap.FullName,
		Role:         string(auth.RoleAdmin),
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}
	logger.Info().Str("email", bootstrap.Email).Msg("admin account bootstrapped")
	return nil
}
