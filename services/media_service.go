package services

import (
	"context"
	"fmt"
	"io"

	"eduplatform/dto"
	apperrors "eduplatform/errors"
	"eduplatform/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

const (
	contentFileFolder      = "content/files"
	contentThumbnailFolder = "content/thumbnails"
)

type MediaServiceInterface interface {
	UploadContentMedia(ctx context.Context, id, userID uint, file, thumbnail io.Reader) (*dto.MediaUploadResponse, error)
}

type MediaService struct {
	uploader Uploader
	content  ContentServiceInterface
	logger   logger.Logger
}

type MediaServiceOptions struct {
	Uploader Uploader
	Content  ContentServiceInterface
	Logger   logger.Logger
}

func NewMediaService(opts MediaServiceOptions) *MediaService {
	s := &MediaService{uploader: opts.Uploader, content: opts.Content, logger: opts.Logger}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	return s
}

// UploadContentMedia uploads the given file and/or thumbnail for content id
// and stores their URLs. Only the creator or an admin may upload.
func (s *MediaService) UploadContentMedia(ctx context.Context, id, userID uint, file, thumbnail io.Reader) (*dto.MediaUploadResponse, error) {
	if file == nil && thumbnail == nil {
		return nil, apperrors.Validation("file or thumbnail is required", nil)
	}
	if s.uploader == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUploadFailed, "Media uploads are not configured", nil)
	}
	if err := s.content.AuthorizeContentWrite(ctx, id, userID, msgUnauthorizedToUpdate); err != nil {
		return nil, err
	}

	var out dto.MediaUploadResponse
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, contentFileFolder)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeUploadFailed, "Upload failed", err)
		}
		out.FileURL = &url
	}
	if thumbnail != nil {
		url, err := s.uploader.Upload(ctx, thumbnail, contentThumbnailFolder)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeUploadFailed, "Upload failed", err)
		}
		out.ThumbnailURL = &url
	}

	if _, err := s.content.SetMediaURLs(ctx, id, out.FileURL, out.ThumbnailURL); err != nil {
		return nil, err
	}
	s.logger.Info("user %d uploaded media for content %d", userID, id)
	return &out, nil
}
