package http

import (
	"io"
	"net/http"

	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/service"

	"github.com/gorilla/mux"
)

// ImageHandler serves vehicle image uploads and downloads
type ImageHandler struct {
	imageSvc service.ImageStorageService
}

func NewImageHandler(imageSvc service.ImageStorageService) *ImageHandler {
	return &ImageHandler{imageSvc: imageSvc}
}

// UploadVehicleImage handles PUT requests carrying the raw image body. The
// original file name is passed in the filename query parameter.
func (h *ImageHandler) UploadVehicleImage(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeMessage(w, http.StatusBadRequest, "missing filename parameter")
		return
	}
	defer r.Body.Close()

	url, err := h.imageSvc.UploadVehicleImage(r.Context(), mux.Vars(r)["id"], filename,
		r.Header.Get("Content-Type"), r.ContentLength, r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{DownloadURL: url})
}

// GetVehicleImage streams the stored image
func (h *ImageHandler) GetVehicleImage(w http.ResponseWriter, r *http.Request) {
	file, contentType, err := h.imageSvc.OpenVehicleImage(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Failed to stream vehicle image", "vehicleID", mux.Vars(r)["id"], "error", err)
	}
}
