package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/storage"
	"fleetrent-backend/internal/store"

	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

type imageStorageService struct {
	store        *store.Store
	storage      storage.StorageInterface
	maxBytes     int64
	allowedTypes []string
}

func NewImageStorageService(st *store.Store, objects storage.StorageInterface, maxBytes int64, allowedTypes []string) ImageStorageService {
	return &imageStorageService{
		store:        st,
		storage:      objects,
		maxBytes:     maxBytes,
		allowedTypes: allowedTypes,
	}
}

func (s *imageStorageService) UploadVehicleImage(ctx context.Context, vehicleID, filename, contentType string, size int64, r io.Reader) (string, error) {
	logger.EnterMethod("imageStorageService.UploadVehicleImage", "vehicleID", vehicleID, "filename", filename, "size", size)

	ext := strings.ToLower(filepath.Ext(filename))
	expected, ok := imageExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image extension %q", domain.ErrInvalidEntity, ext)
	}
	if contentType == "" {
		contentType = expected
	}
	if contentType != expected || !slices.Contains(s.allowedTypes, contentType) {
		return "", fmt.Errorf("%w: unsupported content type %q", domain.ErrInvalidEntity, contentType)
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", domain.ErrInvalidEntity, s.maxBytes)
	}

	if err := s.store.Read(func(snap *domain.Snapshot) error {
		if snap.FindVehicle(vehicleID) == nil {
			return fmt.Errorf("%w: vehicle %s", domain.ErrNotFound, vehicleID)
		}
		return nil
	}); err != nil {
		return "", err
	}

	key := fmt.Sprintf("vehicles/%s/%s%s", vehicleID, uuid.New().String(), ext)
	if s.maxBytes > 0 {
		r = io.LimitReader(r, s.maxBytes)
	}
	if err := s.storage.SaveFile(ctx, key, r); err != nil {
		logger.ExitMethodWithError("imageStorageService.UploadVehicleImage", err, "vehicleID", vehicleID)
		return "", fmt.Errorf("%w: %v", domain.ErrIO, err)
	}

	var previous string
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		v := snap.FindVehicle(vehicleID)
		if v == nil {
			return fmt.Errorf("%w: vehicle %s", domain.ErrNotFound, vehicleID)
		}
		previous = v.ImageKey
		v.ImageKey = key
		return nil
	})
	if err != nil {
		_ = s.storage.DeleteFile(ctx, key)
		logger.ExitMethodWithError("imageStorageService.UploadVehicleImage", err, "vehicleID", vehicleID)
		return "", err
	}
	if previous != "" {
		if err := s.storage.DeleteFile(ctx, previous); err != nil {
			logger.Warn("Failed to delete replaced image", "key", previous, "error", err)
		}
	}

	url, err := s.storage.GenerateDownloadURL(ctx, key)
	if err != nil {
		return "", err
	}
	logger.ExitMethod("imageStorageService.UploadVehicleImage", "vehicleID", vehicleID, "key", key)
	return url, nil
}

func (s *imageStorageService) OpenVehicleImage(ctx context.Context, vehicleID string) (io.ReadCloser, string, error) {
	var key string
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		v := snap.FindVehicle(vehicleID)
		if v == nil {
			return fmt.Errorf("%w: vehicle %s", domain.ErrNotFound, vehicleID)
		}
		key = v.ImageKey
		return nil
	}); err != nil {
		return nil, "", err
	}
	if key == "" {
		return nil, "", fmt.Errorf("%w: vehicle %s has no image", domain.ErrNotFound, vehicleID)
	}

	rc, err := s.storage.ReadFile(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return rc, imageExtensions[strings.ToLower(filepath.Ext(key))], nil
}
