package relay

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveConfig holds the service-account credential blob and the optional
// destination folder, both read once at startup.
type DriveConfig struct {
	CredentialsJSON string
	FolderID        string
}

// Drive uploads recordings into a Google Drive folder and returns the
// standard shareable view link.
type Drive struct {
	svc      *drive.Service
	folderID string
}

func NewDrive(ctx context.Context, cfg DriveConfig) (*Drive, error) {
	if cfg.CredentialsJSON == "" {
		return nil, fmt.Errorf("drive credentials not configured")
	}

	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}

	return &Drive{svc: svc, folderID: cfg.FolderID}, nil
}

func (d *Drive) Name() string { return "google_drive" }

// Upload creates the file, grants anyone-with-the-link read access, and
// returns the drive.google.com view link. The open permission is a
// deliberate relaxation so support agents can open the link directly.
func (d *Drive) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	meta := &drive.File{
		Name:        filename,
		Description: "Support screen recording - " + time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
	if d.folderID != "" {
		meta.Parents = []string{d.folderID}
	}

	created, err := d.svc.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType("video/webm")).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive upload: %w", err)
	}

	perm := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := d.svc.Permissions.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("drive permission: %w", err)
	}

	return fmt.Sprintf("https://drive.google.com/file/d/%s/view?usp=sharing", created.Id), nil
}
