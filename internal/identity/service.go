package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bissquit/hr-portal/internal/domain"
	"github.com/bissquit/hr-portal/internal/mailer"
	"github.com/bissquit/hr-portal/internal/pkg/ctxlog"
	"github.com/google/uuid"
)

// ActivationSubject is the fixed subject line of the activation mail.
const ActivationSubject = "Activate your account"

// TokenSigner issues and verifies activation tokens.
type TokenSigner interface {
	Sign(userID string) (string, error)
	Verify(token string) (string, error)
}

// ActivationRenderer renders the activation mail body.
type ActivationRenderer interface {
	RenderActivation(name, url string) (string, error)
}

// ActivationResult is the closed set of activation outcomes.
type ActivationResult int

const (
	ActivationSuccess ActivationResult = iota
	ActivationAlreadyActive
	ActivationUserNotFound
)

// String returns the symbolic name of the outcome.
func (r ActivationResult) String() string {
	switch r {
	case ActivationSuccess:
		return "success"
	case ActivationAlreadyActive:
		return "already_active"
	case ActivationUserNotFound:
		return "user_not_exist"
	default:
		return "unknown"
	}
}

// Service orchestrates account registration and email activation.
type Service struct {
	repo     Repository
	signer   TokenSigner
	renderer ActivationRenderer
	sender   mailer.Sender
	baseURL  string
}

// NewService creates the identity service.
func NewService(repo Repository, signer TokenSigner, renderer ActivationRenderer, sender mailer.Sender, baseURL string) *Service {
	return &Service{
		repo:     repo,
		signer:   signer,
		renderer: renderer,
		sender:   sender,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// RegisterInput carries the registration fields. All six are required and
// must not be blank. EmailVerified is accepted as a form field only; the
// created record is always unverified until activation.
type RegisterInput struct {
	Email          string
	Password       string
	Name           string
	Role           string
	EmailVerified  string
	EmploymentType string
}

// blank reports whether s is empty or whitespace-only.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// incomplete reports whether any required field is blank.
func (in RegisterInput) incomplete() bool {
	return blank(in.Name) || blank(in.Email) || blank(in.Password) ||
		blank(in.Role) || blank(in.EmailVerified) || blank(in.EmploymentType)
}

// Register creates an account and dispatches the activation mail.
//
// The duplicate-email check runs before field validation: a duplicate email
// with otherwise blank fields reports ErrEmailExists, not ErrIncompleteInput.
// A uniqueness violation at insert time is also reported as ErrEmailExists,
// covering the window between lookup and insert.
//
// There is no rollback on partial failure: a user created before a failed
// mail dispatch stays in the directory and can retry activation later.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	_, err := s.repo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrEmailExists
	case !errors.Is(err, ErrUserNotFound):
		return nil, stageErr(StageStore, err)
	}

	if in.incomplete() {
		return nil, ErrIncompleteInput
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, stageErr(StageHash, err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   hash,
		Role:           domain.Role(in.Role),
		EmploymentType: domain.EmploymentType(in.EmploymentType),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, stageErr(StageStore, err)
	}

	tokenString, err := s.signer.Sign(user.ID)
	if err != nil {
		return nil, stageErr(StageToken, err)
	}

	activationURL := fmt.Sprintf("%s/auth/activation/%s", s.baseURL, tokenString)

	body, err := s.renderer.RenderActivation(user.Name, activationURL)
	if err != nil {
		return nil, stageErr(StageRender, err)
	}

	if err := s.sender.Send(ctx, mailer.Message{
		To:      user.Email,
		Subject: ActivationSubject,
		Body:    body,
	}); err != nil {
		return nil, stageErr(StageMail, err)
	}

	ctxlog.FromContext(ctx).Info("user registered",
		"user_id", user.ID,
		"role", user.Role,
	)

	return user, nil
}

// Activate verifies the token and marks the account's email as verified.
//
// Any token verification failure is treated as an absent payload and yields
// ActivationUserNotFound; only directory failures return an error.
func (s *Service) Activate(ctx context.Context, tokenString string) (ActivationResult, error) {
	userID, err := s.signer.Verify(tokenString)
	if err != nil {
		ctxlog.FromContext(ctx).Debug("activation token rejected", "error", err)
		return ActivationUserNotFound, nil
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ActivationUserNotFound, nil
		}
		return ActivationUserNotFound, stageErr(StageStore, err)
	}

	if user.Verified() {
		return ActivationAlreadyActive, nil
	}

	updated, err := s.repo.MarkEmailVerified(ctx, user.ID, time.Now().UTC())
	if err != nil {
		return ActivationUserNotFound, stageErr(StageStore, err)
	}
	if !updated {
		// Lost a race with another activation of the same token.
		return ActivationAlreadyActive, nil
	}

	ctxlog.FromContext(ctx).Info("user activated", "user_id", user.ID)

	return ActivationSuccess, nil
}

// GetUserByID returns the user with the given ID.
func (s *Service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}
