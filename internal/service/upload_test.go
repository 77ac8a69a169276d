package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/eusluer/bosphorus-fellas-api/internal/config"
)

func newTestUploadService() *UploadService {
	cfg := testAppConfig()
	cfg.Upload = config.UploadConfig{
		MaxFileSize: 1024,
		Folders:     []string{"profile_photos", "events"},
	}
	return NewUploadService(nil, cfg, zerolog.Nop())
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc := newTestUploadService()

	_, err := svc.Upload(context.Background(), nil, "events")
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := newTestUploadService()

	_, err := svc.Upload(context.Background(), bytes.Repeat([]byte{0xff}, 2048), "events")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadRejectsUnknownFolder(t *testing.T) {
	svc := newTestUploadService()

	_, err := svc.Upload(context.Background(), []byte{0x89, 0x50}, "secrets")
	assert.ErrorIs(t, err, ErrInvalidFolder)
}

// The content type comes from sniffing the bytes, not from anything the
// client claims.
func TestUploadRejectsNonImageContent(t *testing.T) {
	svc := newTestUploadService()

	_, err := svc.Upload(context.Background(), []byte("#!/bin/sh\nrm -rf /"), "events")
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestDeleteRejectsBadPaths(t *testing.T) {
	svc := newTestUploadService()

	for _, filePath := range []string{
		"no-folder-segment",
		"secrets/file.jpg",
		"events/../admins.jpg",
	} {
		assert.ErrorIs(t, svc.Delete(context.Background(), filePath), ErrInvalidPath, filePath)
	}
}
