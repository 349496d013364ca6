package rentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// ImageUpload is one pending image for a vehicle.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// UploadVehicleImage uploads one image for a vehicle as multipart form data.
func (c *Client) UploadVehicleImage(ctx context.Context, token string, vehicleID int64, up ImageUpload) (*VehicleImage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", up.Filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return nil, fmt.Errorf("copy image content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	path := fmt.Sprintf("/api/admin/vehicles/%d/images", vehicleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.Debug("upstream upload", "path", path, "filename", up.Filename)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	return decodeVehicleImage(body)
}

// UploadVehicleImages uploads a batch of images one at a time, in order.
// The first failure aborts the batch; already-uploaded images are returned
// alongside the error so the caller can report partial progress.
func (c *Client) UploadVehicleImages(ctx context.Context, token string, vehicleID int64, ups []ImageUpload) ([]VehicleImage, error) {
	uploaded := make([]VehicleImage, 0, len(ups))
	for _, up := range ups {
		img, err := c.UploadVehicleImage(ctx, token, vehicleID, up)
		if err != nil {
			return uploaded, fmt.Errorf("upload %s: %w", up.Filename, err)
		}
		uploaded = append(uploaded, *img)
	}
	return uploaded, nil
}

// DeleteVehicleImage removes an uploaded image.
func (c *Client) DeleteVehicleImage(ctx context.Context, token string, vehicleID, imageID int64) error {
	path := fmt.Sprintf("/api/admin/vehicles/%d/images/%d", vehicleID, imageID)
	_, err := c.doJSON(ctx, http.MethodDelete, path, token, nil)
	return err
}

// decodeVehicleImage validates the image payload shape.
func decodeVehicleImage(data []byte) (*VehicleImage, error) {
	const op = "upload image"

	var img VehicleImage
	if err := json.Unmarshal(data, &img); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	if img.URL == "" {
		return nil, &DecodeError{Op: op, Field: "url"}
	}
	return &img, nil
}
