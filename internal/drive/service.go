package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Service wraps the cloud-storage folder/file API. When the credential file
// is missing or invalid the service stays disabled and every operation is a
// logged no-op instead of an error.
type Service struct {
	service *drive.Service
	logger  *logrus.Logger
}

func NewService(ctx context.Context, credentialsFile string, logger *logrus.Logger) *Service {
	s := &Service{logger: logger}

	if _, err := os.Stat(credentialsFile); err != nil {
		logger.WithField("file", credentialsFile).Warn("Google Drive credentials file not found. Drive integration disabled.")
		return s
	}

	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		logger.WithError(err).Error("Failed to authenticate with Google Drive")
		return s
	}

	s.service = svc
	logger.Info("Successfully authenticated with Google Drive")
	return s
}

func (s *Service) Enabled() bool {
	return s.service != nil
}

// CreateFolder creates a folder and returns its id, or "" on failure or when
// the service is disabled.
func (s *Service) CreateFolder(ctx context.Context, name, parentID string) string {
	if s.service == nil {
		s.logger.Warn("Drive service not initialized. Cannot create folder.")
		return ""
	}

	metadata := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		metadata.Parents = []string{parentID}
	}

	created, err := s.service.Files.Create(metadata).Fields("id").Context(ctx).Do()
	if err != nil {
		s.logger.WithError(err).WithField("folder", name).Error("Error creating folder")
		return ""
	}

	s.logger.WithFields(logrus.Fields{
		"folder": name,
		"id":     created.Id,
	}).Info("Created Drive folder")
	return created.Id
}

// UploadFile uploads a local file and returns the new file id, or "" when the
// source path does not exist, the service is disabled, or the call fails.
func (s *Service) UploadFile(ctx context.Context, filePath, folderID, mimeType string) string {
	if s.service == nil {
		s.logger.Warn("Drive service not initialized. Cannot upload file.")
		return ""
	}

	source, err := os.Open(filePath)
	if err != nil {
		s.logger.WithError(err).WithField("path", filePath).Error("File to upload not found")
		return ""
	}
	defer source.Close()

	metadata := &drive.File{Name: filepath.Base(filePath)}
	if folderID != "" {
		metadata.Parents = []string{folderID}
	}

	call := s.service.Files.Create(metadata).Fields("id").Context(ctx)
	if mimeType != "" {
		call = call.Media(source, googleapi.ContentType(mimeType))
	} else {
		call = call.Media(source)
	}

	created, err := call.Do()
	if err != nil {
		s.logger.WithError(err).WithField("path", filePath).Error("Error uploading file")
		return ""
	}

	s.logger.WithFields(logrus.Fields{
		"file": metadata.Name,
		"id":   created.Id,
	}).Info("Uploaded file to Drive")
	return created.Id
}

// FindFolder returns the id of the first matching non-trashed folder, or "".
func (s *Service) FindFolder(ctx context.Context, name, parentID string) string {
	if s.service == nil {
		return ""
	}

	query := fmt.Sprintf("mimeType='%s' and name='%s' and trashed=false", folderMimeType, name)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	results, err := s.service.Files.List().
		Q(query).
		Spaces("drive").
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		s.logger.WithError(err).WithField("folder", name).Error("Error finding folder")
		return ""
	}

	if len(results.Files) > 0 {
		return results.Files[0].Id
	}
	return ""
}
