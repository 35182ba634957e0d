package clinicconfig

import (
	"context"
	"io"

	"github.com/clinica/clinica/internal/platform/blobstore"
	"github.com/clinica/clinica/internal/platform/db"
)

type Service struct {
	repo  Repository
	blobs blobstore.Store
}

func NewService(repo Repository, blobs blobstore.Store) *Service {
	return &Service{repo: repo, blobs: blobs}
}

// Get returns the configuration, or nil when none has been written yet.
func (s *Service) Get(ctx context.Context) (*ClinicConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Update writes the clinic name, creating the row on first use and keeping
// the existing logo.
func (s *Service) Update(ctx context.Context, clinicName *string) (*ClinicConfig, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &ClinicConfig{}
	}
	cfg.ClinicName = clinicName
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UploadLogo stores the logo and upserts the configuration row, replacing
// any previous logo blob.
func (s *Service) UploadLogo(ctx context.Context, fileName, contentType string, content io.Reader) (*ClinicConfig, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &ClinicConfig{}
	}

	meta, err := s.blobs.Save(ctx, blobstore.BlobMetadata{
		FileName:    fileName,
		ContentType: contentType,
		Category:    "logo",
	}, content)
	if err != nil {
		return nil, err
	}

	previous := cfg.LogoBlobID
	cfg.LogoBlobID = &meta.ID
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		_ = s.blobs.Delete(ctx, meta.ID)
		return nil, err
	}
	if previous != nil {
		_ = s.blobs.Delete(ctx, *previous)
	}
	return cfg, nil
}

// OpenLogo streams the configured logo.
func (s *Service) OpenLogo(ctx context.Context) (io.ReadCloser, *blobstore.BlobMetadata, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	if cfg == nil || cfg.LogoBlobID == nil {
		return nil, nil, blobstore.ErrBlobNotFound
	}
	return s.blobs.Open(ctx, *cfg.LogoBlobID)
}
