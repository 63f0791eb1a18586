package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"scatch_back_end/internal/models"
	"scatch_back_end/internal/store"
	"scatch_back_end/internal/token"
)

var (
	ErrEmailTaken = errors.New("un compte avec cet email existe déjà")

	// ErrInvalidCredentials couvre email inconnu et mot de passe faux,
	// sans distinction côté client.
	ErrInvalidCredentials = errors.New("email ou mot de passe incorrect")
)

// Service porte le cycle de vie des comptes : inscription, connexion et
// émission du credential de session. Les mots de passe ne sont stockés
// qu'en hash bcrypt.
type Service struct {
	users  store.UserStore
	owners store.OwnerStore
	codec  *token.Codec
}

func NewService(users store.UserStore, owners store.OwnerStore, codec *token.Codec) *Service {
	return &Service{users: users, owners: owners, codec: codec}
}

// Register crée un compte client et rend le token de session frais.
func (s *Service) Register(ctx context.Context, fullname, email, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash mot de passe: %w", err)
	}

	u := &models.User{
		Fullname: fullname,
		Email:    email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	tok, err := s.codec.Issue(email)
	if err != nil {
		return nil, "", err
	}

	u.Password = "" // le hash ne remonte jamais au-dessus de cette couche
	return u, tok, nil
}

// Login vérifie le mot de passe contre le hash stocké puis émet un token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	hash, err := s.users.Credentials(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.codec.Issue(email)
}

// RegisterOwner crée un compte marchand (surface admin).
func (s *Service) RegisterOwner(ctx context.Context, fullname, email, password string) (*models.Owner, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash mot de passe: %w", err)
	}

	o := &models.Owner{
		Fullname: fullname,
		Email:    email,
		Password: string(hash),
	}
	if err := s.owners.Create(ctx, o); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	tok, err := s.codec.Issue(email)
	if err != nil {
		return nil, "", err
	}

	o.Password = ""
	return o, tok, nil
}

// LoginOwner : même contrat que Login, contre la collection owners.
func (s *Service) LoginOwner(ctx context.Context, email, password string) (string, error) {
	hash, err := s.owners.Credentials(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.codec.Issue(email)
}
