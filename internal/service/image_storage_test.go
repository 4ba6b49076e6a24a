package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"fleetrent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

func TestImageStorageService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		st, _ := newTestStore(t, fixtureSnapshot(t))
		objects := new(MockStorage)
		objects.On("SaveFile", mock.Anything, mock.MatchedBy(func(k string) bool {
			return strings.HasPrefix(k, "vehicles/CAR01/") && strings.HasSuffix(k, ".png")
		}), mock.Anything).Return(nil)
		objects.On("GenerateDownloadURL", mock.Anything, mock.Anything).Return("http://localhost/api/v1/vehicles/CAR01/image", nil)
		svc := NewImageStorageService(st, objects, 1024, testImageTypes)

		url, err := svc.UploadVehicleImage(ctx, "CAR01", "front.PNG", "image/png", 4, strings.NewReader("data"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost/api/v1/vehicles/CAR01/image", url)
		objects.AssertExpectations(t)

		detail, err := NewVehicleService(st).GetVehicle(ctx, "CAR01")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(detail.ImageKey, "vehicles/CAR01/"))
	})

	t.Run("Replacing deletes the previous image", func(t *testing.T) {
		snap := fixtureSnapshot(t)
		snap.Vehicles[0].ImageKey = "vehicles/CAR01/old.jpg"
		st, _ := newTestStore(t, snap)
		objects := new(MockStorage)
		objects.On("SaveFile", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		objects.On("DeleteFile", mock.Anything, "vehicles/CAR01/old.jpg").Return(nil)
		objects.On("GenerateDownloadURL", mock.Anything, mock.Anything).Return("url", nil)
		svc := NewImageStorageService(st, objects, 0, testImageTypes)

		_, err := svc.UploadVehicleImage(ctx, "CAR01", "new.jpg", "", 4, strings.NewReader("data"))
		require.NoError(t, err)
		objects.AssertCalled(t, "DeleteFile", mock.Anything, "vehicles/CAR01/old.jpg")
	})

	rejects := []struct {
		name        string
		vehicleID   string
		filename    string
		contentType string
		size        int64
		wantErr     error
	}{
		{"Bad extension", "CAR01", "notes.txt", "text/plain", 4, domain.ErrInvalidEntity},
		{"Mismatched type", "CAR01", "front.png", "image/jpeg", 4, domain.ErrInvalidEntity},
		{"Too large", "CAR01", "front.png", "image/png", 2048, domain.ErrInvalidEntity},
		{"Unknown vehicle", "NOPE", "front.png", "image/png", 4, domain.ErrNotFound},
	}
	for _, tt := range rejects {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := newTestStore(t, fixtureSnapshot(t))
			objects := new(MockStorage)
			svc := NewImageStorageService(st, objects, 1024, testImageTypes)

			_, err := svc.UploadVehicleImage(ctx, tt.vehicleID, tt.filename, tt.contentType, tt.size, strings.NewReader("data"))
			assert.ErrorIs(t, err, tt.wantErr)
			objects.AssertNotCalled(t, "SaveFile", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("Storage failure", func(t *testing.T) {
		st, _ := newTestStore(t, fixtureSnapshot(t))
		objects := new(MockStorage)
		objects.On("SaveFile", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))
		svc := NewImageStorageService(st, objects, 1024, testImageTypes)

		_, err := svc.UploadVehicleImage(ctx, "CAR01", "front.png", "image/png", 4, strings.NewReader("data"))
		assert.ErrorIs(t, err, domain.ErrIO)
	})
}

func TestImageStorageService_Open(t *testing.T) {
	ctx := context.Background()
	snap := fixtureSnapshot(t)
	snap.Vehicles[0].ImageKey = "vehicles/CAR01/abc.jpg"
	st, _ := newTestStore(t, snap)
	objects := new(MockStorage)
	objects.On("ReadFile", mock.Anything, "vehicles/CAR01/abc.jpg").Return(io.NopCloser(strings.NewReader("jpeg")), nil)
	svc := NewImageStorageService(st, objects, 0, testImageTypes)

	rc, contentType, err := svc.OpenVehicleImage(ctx, "CAR01")
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "image/jpeg", contentType)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "jpeg", string(body))

	_, _, err = svc.OpenVehicleImage(ctx, "BIKE01")
	assert.ErrorIs(t, err, domain.ErrNotFound, "vehicle without an image")

	_, _, err = svc.OpenVehicleImage(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
