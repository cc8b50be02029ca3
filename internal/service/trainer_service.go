package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
	"smartgains/trainer-app/internal/storage"
)

var (
	ErrTrainerNotFound    = errors.New("trainer not found")
	ErrInvalidContentType = errors.New("unsupported photo content type")
)

// photoDownloadExpiry keeps profile photo links alive long enough for a
// dashboard session.
const photoDownloadExpiry = time.Hour

// TrainerService serves the trainer's own account and dashboard profile,
// including the presigned-URL flow for profile photos. Bytes go straight
// between the browser and object storage.
type TrainerService interface {
	GetByID(ctx context.Context, trainerID int64) (*domain.Trainer, error)
	GetProfile(ctx context.Context, trainerID int64) (*domain.TrainerProfile, error)
	UpdateProfile(ctx context.Context, trainerID int64, photoKey, quote1, quote2 string) (*domain.TrainerProfile, error)
	// PhotoUploadURL mints a fresh object key plus a presigned PUT URL. The
	// caller saves the returned key via UpdateProfile after uploading.
	PhotoUploadURL(ctx context.Context, trainerID int64, contentType string) (key string, uploadURL string, err error)
	// PhotoDownloadURL presigns a GET for the trainer's current photo; empty
	// when no photo has been uploaded.
	PhotoDownloadURL(ctx context.Context, trainerID int64) (string, error)
}

type trainerService struct {
	trainerRepo repository.TrainerRepository
	fileStorage storage.FileStorage
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(trainerRepo repository.TrainerRepository, fileStorage storage.FileStorage) TrainerService {
	return &trainerService{
		trainerRepo: trainerRepo,
		fileStorage: fileStorage,
	}
}

func (s *trainerService) GetByID(ctx context.Context, trainerID int64) (*domain.Trainer, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}

	trainer, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	trainer.PasswordHash = ""
	return trainer, nil
}

func (s *trainerService) GetProfile(ctx context.Context, trainerID int64) (*domain.TrainerProfile, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}

	profile, err := s.trainerRepo.GetProfileByTrainerID(ctx, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		// Fresh accounts have no profile row yet; an empty card is fine.
		return &domain.TrainerProfile{TrainerID: trainerID}, nil
	}
	return profile, err
}

func (s *trainerService) UpdateProfile(ctx context.Context, trainerID int64, photoKey, quote1, quote2 string) (*domain.TrainerProfile, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}

	profile := &domain.TrainerProfile{
		TrainerID: trainerID,
		PhotoKey:  photoKey,
		Quote1:    quote1,
		Quote2:    quote2,
	}
	if err := s.trainerRepo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return s.trainerRepo.GetProfileByTrainerID(ctx, trainerID)
}

func (s *trainerService) PhotoUploadURL(ctx context.Context, trainerID int64, contentType string) (string, string, error) {
	if trainerID <= 0 {
		return "", "", ErrUnauthorized
	}

	ext := extensionFor(contentType)
	if ext == "" {
		return "", "", ErrInvalidContentType
	}

	key := path.Join("trainer-photos", fmt.Sprintf("%d", trainerID), uuid.NewString()+ext)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", err
	}
	return key, uploadURL, nil
}

func (s *trainerService) PhotoDownloadURL(ctx context.Context, trainerID int64) (string, error) {
	profile, err := s.GetProfile(ctx, trainerID)
	if err != nil {
		return "", err
	}
	if profile.PhotoKey == "" {
		return "", nil
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, profile.PhotoKey, photoDownloadExpiry)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
