package service

import (
	"errors"
	"strings"
	"time"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
)

var (
	ErrPasswordTooShort = errors.New("password is too short")
	ErrEmptyUsername    = errors.New("username must not be empty")
)

const minPasswordLength = 6

type AuthService interface {
	Register(username, plainTextPassword string) (*model.User, error)
	Login(username, plainTextPassword string) (*model.User, error)
}

func NewAuthService(repo model.UserRepository, passManager model.PasswordManager, dispatcher EventDispatcher) AuthService {
	return &authService{
		repo:        repo,
		passManager: passManager,
		dispatcher:  dispatcher,
	}
}

type authService struct {
	repo        model.UserRepository
	passManager model.PasswordManager
	dispatcher  EventDispatcher
}

func (s *authService) Register(username, plainTextPassword string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if len(plainTextPassword) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.FindByUsername(username); err == nil {
		return nil, model.ErrUsernameTaken
	}

	hashedPassword, err := s.passManager.Hash(plainTextPassword)
	if err != nil {
		return nil, err
	}

	userID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:             userID,
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.UserRegistered{UserID: userID, Username: username})
	return user, nil
}

func (s *authService) Login(username, plainTextPassword string) (*model.User, error) {
	user, err := s.repo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.passManager.Check(user.HashedPassword, plainTextPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}
