package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/jmcalloway/insuquote-backend/internal/documents"
	"github.com/jmcalloway/insuquote-backend/pkg/config"
)

type testDocumentsService struct {
	uploadFn func(ctx context.Context, userID uuid.UUID, inputs []documents.UploadInput) ([]documents.UploadResult, error)
	listFn   func(ctx context.Context, userID uuid.UUID, filter documents.FileFilter) ([]documents.DocumentFileDTO, error)
	moveFn   func(ctx context.Context, userID, fileID uuid.UUID, groupID *uuid.UUID) (documents.DocumentFileDTO, error)
}

func (s *testDocumentsService) CreateGroup(ctx context.Context, userID uuid.UUID, req documents.CreateGroupDTO) (documents.DocumentGroupDTO, error) {
	return documents.DocumentGroupDTO{ID: uuid.New(), Name: req.Name}, nil
}

func (s *testDocumentsService) ListGroups(ctx context.Context, userID uuid.UUID) ([]documents.DocumentGroupDTO, error) {
	return []documents.DocumentGroupDTO{}, nil
}

func (s *testDocumentsService) DeleteGroup(ctx context.Context, userID, id uuid.UUID) error {
	return nil
}

func (s *testDocumentsService) UploadBatch(ctx context.Context, userID uuid.UUID, inputs []documents.UploadInput) ([]documents.UploadResult, error) {
	if s.uploadFn != nil {
		return s.uploadFn(ctx, userID, inputs)
	}
	return nil, nil
}

func (s *testDocumentsService) ListFiles(ctx context.Context, userID uuid.UUID, filter documents.FileFilter) ([]documents.DocumentFileDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID, filter)
	}
	return []documents.DocumentFileDTO{}, nil
}

func (s *testDocumentsService) MoveToGroup(ctx context.Context, userID, fileID uuid.UUID, groupID *uuid.UUID) (documents.DocumentFileDTO, error) {
	if s.moveFn != nil {
		return s.moveFn(ctx, userID, fileID, groupID)
	}
	return documents.DocumentFileDTO{}, nil
}

func (s *testDocumentsService) DeleteFile(ctx context.Context, userID, id uuid.UUID) error {
	return nil
}

func multipartBody(t *testing.T, groupID string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if groupID != "" {
		if err := writer.WriteField("group_id", groupID); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := io.WriteString(part, content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestDocumentUploadForwardsAllParts(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()
	var got []documents.UploadInput
	svc := &testDocumentsService{
		uploadFn: func(ctx context.Context, uid uuid.UUID, inputs []documents.UploadInput) ([]documents.UploadResult, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			got = inputs
			results := make([]documents.UploadResult, len(inputs))
			for i, input := range inputs {
				results[i] = documents.UploadResult{Name: input.Name}
			}
			return results, nil
		},
	}

	body, contentType := multipartBody(t, groupID.String(), map[string]string{
		"estimate.pdf": "pdf bytes",
		"roof.jpg":     "jpg bytes",
	})
	req := authedRequest(http.MethodPost, "/api/v1/documents", body, userID)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()

	cfg := config.DocumentsConfig{MaxUploadMB: 20, MaxBatchFiles: 10}
	DocumentUpload(svc, cfg, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(got))
	}
	for _, input := range got {
		if input.GroupID == nil || *input.GroupID != groupID {
			t.Fatalf("expected group %s on %s", groupID, input.Name)
		}
		if input.Size <= 0 {
			t.Fatalf("expected positive size on %s", input.Name)
		}
	}
}

func TestDocumentUploadRejectsEmptyBatch(t *testing.T) {
	body, contentType := multipartBody(t, "", nil)
	req := authedRequest(http.MethodPost, "/api/v1/documents", body, uuid.New())
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()

	cfg := config.DocumentsConfig{MaxUploadMB: 20, MaxBatchFiles: 10}
	DocumentUpload(&testDocumentsService{}, cfg, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestDocumentUploadRejectsMalformedGroupID(t *testing.T) {
	body, contentType := multipartBody(t, "not-a-uuid", map[string]string{"a.txt": "x"})
	req := authedRequest(http.MethodPost, "/api/v1/documents", body, uuid.New())
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()

	cfg := config.DocumentsConfig{MaxUploadMB: 20, MaxBatchFiles: 10}
	DocumentUpload(&testDocumentsService{}, cfg, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestDocumentListParsesUngroupedFlag(t *testing.T) {
	var got documents.FileFilter
	svc := &testDocumentsService{
		listFn: func(ctx context.Context, uid uuid.UUID, filter documents.FileFilter) ([]documents.DocumentFileDTO, error) {
			got = filter
			return []documents.DocumentFileDTO{}, nil
		},
	}

	req := authedRequest(http.MethodGet, "/api/v1/documents?ungrouped=true", nil, uuid.New())
	resp := httptest.NewRecorder()
	DocumentList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !got.Ungrouped || got.GroupID != nil {
		t.Fatalf("unexpected filter %+v", got)
	}
}
