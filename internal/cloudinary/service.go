package cloudinary

import (
	"context"

	"github.com/sirupsen/logrus"
)

// floorPlanFolder scopes every floor-plan upload on the media host.
const floorPlanFolder = "floorplans"

type Service struct {
	client *Client
	logger *logrus.Logger
}

func NewService(client *Client, logger *logrus.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// UploadFloorPlanFile uploads the file bytes and returns the secure URL plus a
// thumbnail URL, falling back to the file URL when the host produced no
// distinct thumbnail.
func (s *Service) UploadFloorPlanFile(ctx context.Context, fileName string, contents []byte) (string, string, error) {
	result, err := s.client.Upload(ctx, fileName, contents, floorPlanFolder)
	if err != nil {
		return "", "", err
	}

	thumbnailURL := result.ThumbnailURL
	if thumbnailURL == "" {
		thumbnailURL = result.SecureURL
	}

	s.logger.WithFields(logrus.Fields{
		"public_id": result.PublicID,
		"file_url":  result.SecureURL,
	}).Debug("Floor plan file uploaded")

	return result.SecureURL, thumbnailURL, nil
}
