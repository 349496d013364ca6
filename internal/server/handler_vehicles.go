package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/fleetgate/pkg/model"
	"github.com/me/fleetgate/pkg/rentapi"
)

// maxImageUploadBytes bounds a single multipart upload request.
const maxImageUploadBytes = 32 << 20

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())
	opts := listOptions(r)

	vehicles, total, err := s.api.ListVehicles(r.Context(), sess.AccessToken, opts)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondList(w, reqID, vehicles, pagination(opts, total))
}

func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badIDError(w, reqID, "id")
		return
	}

	vehicle, err := s.api.GetVehicle(r.Context(), sess.AccessToken, id)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondOK(w, reqID, vehicle)
}

func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	in, apiErr := decodeVehicleInput(r)
	if apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	vehicle, err := s.api.CreateVehicle(r.Context(), sess.AccessToken, *in)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	s.logger.Info("vehicle created", "vehicle_id", vehicle.ID, "by", sess.UserID)
	respondCreated(w, reqID, vehicle)
}

func (s *Server) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badIDError(w, reqID, "id")
		return
	}

	in, apiErr := decodeVehicleInput(r)
	if apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	vehicle, err := s.api.UpdateVehicle(r.Context(), sess.AccessToken, id, *in)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondOK(w, reqID, vehicle)
}

func (s *Server) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badIDError(w, reqID, "id")
		return
	}

	if err := s.api.DeleteVehicle(r.Context(), sess.AccessToken, id); err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	s.logger.Info("vehicle deleted", "vehicle_id", id, "by", sess.UserID)
	respondOK(w, reqID, map[string]any{"deleted": id})
}

// handleUploadVehicleImages forwards multipart image uploads one at a time.
// Uploads are sequential; the first failure aborts and the response reports
// how many images made it.
func (s *Server) handleUploadVehicleImages(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badIDError(w, reqID, "id")
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "invalid multipart body: " + err.Error(),
		})
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("no images provided",
				model.FieldError{Field: "images", Message: "at least one image file is required"}))
		return
	}

	var ups []rentapi.ImageUpload
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			respondError(w, reqID, http.StatusBadRequest, &model.APIError{
				Code:    model.ErrValidation,
				Message: "unreadable image " + fh.Filename,
			})
			return
		}
		defer f.Close()
		ups = append(ups, rentapi.ImageUpload{Filename: fh.Filename, Content: f})
	}

	images, err := s.api.UploadVehicleImages(r.Context(), sess.AccessToken, id, ups)
	if err != nil {
		// Partial progress: some images may already be attached upstream.
		s.logger.Warn("image upload aborted",
			"vehicle_id", id, "uploaded", len(images), "total", len(ups), "error", err)
		respondUpstreamError(w, reqID, err)
		return
	}
	respondCreated(w, reqID, images)
}

func (s *Server) handleDeleteVehicleImage(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badIDError(w, reqID, "id")
		return
	}
	imageID, ok := pathID(r, "imageID")
	if !ok {
		badIDError(w, reqID, "imageID")
		return
	}

	if err := s.api.DeleteVehicleImage(r.Context(), sess.AccessToken, id, imageID); err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondOK(w, reqID, map[string]any{"deleted": imageID})
}

// decodeVehicleInput parses and validates a vehicle create/update body.
func decodeVehicleInput(r *http.Request) (*rentapi.VehicleInput, *model.APIError) {
	var in rentapi.VehicleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return nil, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		}
	}

	var details []model.FieldError
	if in.Make == "" {
		details = append(details, model.FieldError{Field: "make", Message: "make is required"})
	}
	if in.Model == "" {
		details = append(details, model.FieldError{Field: "model", Message: "model is required"})
	}
	if in.Year < 1950 {
		details = append(details, model.FieldError{Field: "year", Message: "year must be 1950 or later"})
	}
	if in.LicensePlate == "" {
		details = append(details, model.FieldError{Field: "licensePlate", Message: "licensePlate is required"})
	}
	if in.DailyRate <= 0 {
		details = append(details, model.FieldError{Field: "dailyRate", Message: "dailyRate must be positive"})
	}
	if len(details) > 0 {
		return nil, model.NewValidationError("invalid vehicle", details...)
	}
	return &in, nil
}
