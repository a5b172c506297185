package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
	"github.com/vamshigadde09/PickleMatch-sub001/repositories"
	"github.com/vamshigadde09/PickleMatch-sub001/storage"
)

type UserService interface {
	GetProfile(ctx context.Context, userID int) (*models.User, *models.PlayerStats, error)
	UploadAvatar(ctx context.Context, userID int, contentType string, content io.Reader) (*models.User, error)
}

type userService struct {
	userRepo  repositories.UserRepository
	statsRepo repositories.StatsRepository
	uploader  storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, statsRepo repositories.StatsRepository, uploader storage.FileUploader) UserService {
	return &userService{userRepo: userRepo, statsRepo: statsRepo, uploader: uploader}
}

func (s *userService) GetProfile(ctx context.Context, userID int) (*models.User, *models.PlayerStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	populateAvatarURL(user, s.uploader)

	stats, err := s.statsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrStatsNotFound) {
			return nil, nil, fmt.Errorf("failed to load stats of user %d: %w", userID, err)
		}
		// A player who has not finished a game yet simply has no row.
		stats = &models.PlayerStats{UserID: &user.ID}
	}
	return user, stats, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID int, contentType string, content io.Reader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	key := fmt.Sprintf("avatars/%d", userID)
	if _, err := s.uploader.Upload(ctx, key, contentType, content); err != nil {
		return nil, fmt.Errorf("failed to upload avatar for user %d: %w", userID, err)
	}

	if err := s.userRepo.UpdateAvatarKey(ctx, userID, &key); err != nil {
		return nil, fmt.Errorf("failed to store avatar key for user %d: %w", userID, err)
	}
	user.AvatarKey = &key
	populateAvatarURL(user, s.uploader)
	return user, nil
}

func populateAvatarURL(user *models.User, uploader storage.FileUploader) {
	if user != nil && user.AvatarKey != nil && *user.AvatarKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*user.AvatarKey)
		user.AvatarURL = &url
	}
}
