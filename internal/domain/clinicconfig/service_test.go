package clinicconfig

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinica/clinica/internal/platform/blobstore"
)

type mockRepo struct {
	cfg *ClinicConfig
}

func (m *mockRepo) Get(_ context.Context) (*ClinicConfig, error) {
	if m.cfg == nil {
		return nil, pgx.ErrNoRows
	}
	copy := *m.cfg
	return &copy, nil
}

func (m *mockRepo) Upsert(_ context.Context, cfg *ClinicConfig) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	cfg.UpdatedAt = time.Now()
	stored := *cfg
	m.cfg = &stored
	return nil
}

func newTestService() (*Service, *mockRepo, *blobstore.MemStore) {
	repo := &mockRepo{}
	blobs := blobstore.NewMemStore()
	return NewService(repo, blobs), repo, blobs
}

func TestGet_AbsentIsNotAnError(t *testing.T) {
	svc, _, _ := newTestService()

	cfg, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg != nil {
		t.Errorf("cfg = %+v, want nil", cfg)
	}
}

func TestUpdate_CreatesRowOnFirstUse(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	name := "Consultorio Norte"
	cfg, err := svc.Update(ctx, &name)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if cfg.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if cfg.ClinicName == nil || *cfg.ClinicName != name {
		t.Errorf("clinic_name = %v", cfg.ClinicName)
	}

	got, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != cfg.ID {
		t.Errorf("Get after Update = %+v", got)
	}
}

func TestUploadLogo(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cfg, err := svc.UploadLogo(ctx, "logo.png", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}
	if cfg.LogoBlobID == nil {
		t.Fatal("expected logo_blob_id to be set")
	}

	rc, meta, err := svc.OpenLogo(ctx)
	if err != nil {
		t.Fatalf("OpenLogo: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "png-bytes" || meta.ContentType != "image/png" {
		t.Errorf("content = %q, type = %q", data, meta.ContentType)
	}
}

func TestUploadLogo_ReplacesPrevious(t *testing.T) {
	svc, _, blobs := newTestService()
	ctx := context.Background()

	first, err := svc.UploadLogo(ctx, "v1.png", "image/png", strings.NewReader("v1"))
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}
	firstBlob := *first.LogoBlobID

	if _, err := svc.UploadLogo(ctx, "v2.png", "image/png", strings.NewReader("v2")); err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}
	if _, err := blobs.GetMetadata(ctx, firstBlob); err != blobstore.ErrBlobNotFound {
		t.Errorf("old logo should be gone, got %v", err)
	}
}

func TestUploadLogo_KeepsClinicName(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	name := "Consultorio Norte"
	if _, err := svc.Update(ctx, &name); err != nil {
		t.Fatalf("Update: %v", err)
	}
	cfg, err := svc.UploadLogo(ctx, "logo.png", "image/png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}
	if cfg.ClinicName == nil || *cfg.ClinicName != name {
		t.Errorf("clinic_name = %v, want %q preserved", cfg.ClinicName, name)
	}
}

func TestOpenLogo_NoneConfigured(t *testing.T) {
	svc, _, _ := newTestService()
	if _, _, err := svc.OpenLogo(context.Background()); err != blobstore.ErrBlobNotFound {
		t.Errorf("got %v, want ErrBlobNotFound", err)
	}
}
