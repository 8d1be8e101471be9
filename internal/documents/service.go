package documents

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgdb "github.com/jmcalloway/insuquote-backend/pkg/db"
	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
	"github.com/jmcalloway/insuquote-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
	"github.com/jmcalloway/insuquote-backend/pkg/logger"
)

const (
	groupNotFoundMessage = "document group not found"
	fileNotFoundMessage  = "document not found"

	keySuffixBytes = 6
)

// Service exposes the document operations the API surface depends on.
type Service interface {
	CreateGroup(ctx context.Context, userID uuid.UUID, req CreateGroupDTO) (DocumentGroupDTO, error)
	ListGroups(ctx context.Context, userID uuid.UUID) ([]DocumentGroupDTO, error)
	DeleteGroup(ctx context.Context, userID, id uuid.UUID) error
	UploadBatch(ctx context.Context, userID uuid.UUID, inputs []UploadInput) ([]UploadResult, error)
	ListFiles(ctx context.Context, userID uuid.UUID, filter FileFilter) ([]DocumentFileDTO, error)
	MoveToGroup(ctx context.Context, userID, fileID uuid.UUID, groupID *uuid.UUID) (DocumentFileDTO, error)
	DeleteFile(ctx context.Context, userID, id uuid.UUID) error
}

type documentRepository interface {
	CreateGroup(ctx context.Context, group *models.DocumentGroup) (*models.DocumentGroup, error)
	ListGroups(ctx context.Context, userID uuid.UUID) ([]models.DocumentGroup, error)
	FindGroupByID(ctx context.Context, userID, id uuid.UUID) (*models.DocumentGroup, error)
	DeleteGroup(ctx context.Context, userID, id uuid.UUID) (int64, error)
	CreateFile(ctx context.Context, file *models.DocumentFile) (*models.DocumentFile, error)
	ListFiles(ctx context.Context, userID uuid.UUID, filter FileFilter) ([]models.DocumentFile, error)
	FindFileByID(ctx context.Context, userID, id uuid.UUID) (*models.DocumentFile, error)
	UpdateFileGroup(ctx context.Context, userID, id uuid.UUID, groupID *uuid.UUID) (int64, error)
	DeleteFile(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type objectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// Notifier records a fire-and-forget user notification.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationType, title, body string)
}

// ServiceParams groups dependencies for the documents service.
type ServiceParams struct {
	Repo  documentRepository
	Store objectStore
	// MaxUploadBytes caps one file's size; zero disables the cap.
	MaxUploadBytes int64
	// MaxBatchFiles caps the batch length; zero disables the cap.
	MaxBatchFiles int
	Notifier      Notifier
	Logger        *logger.Logger
}

type service struct {
	repo           documentRepository
	store          objectStore
	maxUploadBytes int64
	maxBatchFiles  int
	notifier       Notifier
	logg           *logger.Logger
}

// NewService builds a documents service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("document repository is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("object store is required")
	}
	return &service{
		repo:           params.Repo,
		store:          params.Store,
		maxUploadBytes: params.MaxUploadBytes,
		maxBatchFiles:  params.MaxBatchFiles,
		notifier:       params.Notifier,
		logg:           params.Logger,
	}, nil
}

func (s *service) CreateGroup(ctx context.Context, userID uuid.UUID, req CreateGroupDTO) (DocumentGroupDTO, error) {
	if userID == uuid.Nil {
		return DocumentGroupDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return DocumentGroupDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "group name is required")
	}

	group, err := s.repo.CreateGroup(ctx, &models.DocumentGroup{UserID: userID, Name: name})
	if err != nil {
		return DocumentGroupDTO{}, pkgdb.Classify(err, "create document group")
	}
	return groupFromModel(group), nil
}

func (s *service) ListGroups(ctx context.Context, userID uuid.UUID) ([]DocumentGroupDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	groups, err := s.repo.ListGroups(ctx, userID)
	if err != nil {
		classified := pkgdb.Classify(err, "list document groups")
		if pkgdb.IsSchemaAbsent(classified) {
			s.logDegrade(ctx, "document_groups")
			return []DocumentGroupDTO{}, nil
		}
		return nil, classified
	}

	dtos := make([]DocumentGroupDTO, 0, len(groups))
	for i := range groups {
		dtos = append(dtos, groupFromModel(&groups[i]))
	}
	return dtos, nil
}

// DeleteGroup cascades through member files sequentially, then removes the
// folder. The first failed child deletion aborts the cascade and keeps the
// folder, so nothing is silently orphaned.
func (s *service) DeleteGroup(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil || id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and group id are required")
	}

	if _, err := s.repo.FindGroupByID(ctx, userID, id); err != nil {
		classified := pkgdb.Classify(err, "load document group")
		if pkgdb.IsNotFound(classified) || pkgdb.IsSchemaAbsent(classified) {
			return pkgerrors.New(pkgerrors.CodeNotFound, groupNotFoundMessage)
		}
		return classified
	}

	files, err := s.repo.ListFiles(ctx, userID, FileFilter{GroupID: &id})
	if err != nil {
		return pkgdb.Classify(err, "list group files")
	}
	for i := range files {
		if err := s.removeFile(ctx, userID, &files[i]); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err,
				fmt.Sprintf("deleting file %q aborted the group deletion", files[i].Name))
		}
	}

	affected, err := s.repo.DeleteGroup(ctx, userID, id)
	if err != nil {
		return pkgdb.Classify(err, "delete document group")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, groupNotFoundMessage)
	}
	return nil
}

// UploadBatch processes each file independently and reports a per-file
// result; one file's failure never aborts the rest of the batch.
func (s *service) UploadBatch(ctx context.Context, userID uuid.UUID, inputs []UploadInput) ([]UploadResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if len(inputs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one file is required")
	}
	if s.maxBatchFiles > 0 && len(inputs) > s.maxBatchFiles {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("batch exceeds the %d-file limit", s.maxBatchFiles))
	}

	results := make([]UploadResult, 0, len(inputs))
	succeeded := 0
	for i := range inputs {
		result := s.uploadOne(ctx, userID, &inputs[i])
		if result.File != nil {
			succeeded++
		}
		results = append(results, result)
	}

	if succeeded > 0 {
		s.notify(ctx, userID, enums.NotificationTypeDocumentsUploaded,
			"Documents uploaded",
			fmt.Sprintf("%d of %d files uploaded.", succeeded, len(inputs)))
	}
	return results, nil
}

func (s *service) uploadOne(ctx context.Context, userID uuid.UUID, input *UploadInput) UploadResult {
	result := UploadResult{Name: input.Name}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		result.Error = "file name is required"
		return result
	}
	if input.Body == nil {
		result.Error = "file body is required"
		return result
	}
	if s.maxUploadBytes > 0 && input.Size > s.maxUploadBytes {
		result.Error = fmt.Sprintf("file exceeds the %d byte limit", s.maxUploadBytes)
		return result
	}
	if input.GroupID != nil {
		if _, err := s.repo.FindGroupByID(ctx, userID, *input.GroupID); err != nil {
			result.Error = groupNotFoundMessage
			return result
		}
	}

	key := storageKey(userID, name)
	url, err := s.store.Upload(ctx, key, input.ContentType, input.Body)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithField(ctx, "storage_key", key), "uploading document", err)
		}
		result.Error = "upload failed"
		return result
	}

	file, err := s.repo.CreateFile(ctx, &models.DocumentFile{
		UserID:     userID,
		GroupID:    input.GroupID,
		Name:       name,
		StorageKey: key,
		FileURL:    url,
		FileType:   input.ContentType,
		FileSize:   input.Size,
	})
	if err != nil {
		// the binary is orphaned otherwise
		if cleanupErr := s.store.Delete(ctx, key); cleanupErr != nil && s.logg != nil {
			s.logg.Error(s.logg.WithField(ctx, "storage_key", key), "cleaning up orphaned upload", cleanupErr)
		}
		result.Error = "saving file metadata failed"
		return result
	}

	dto := fileFromModel(file)
	result.File = &dto
	return result
}

func (s *service) ListFiles(ctx context.Context, userID uuid.UUID, filter FileFilter) ([]DocumentFileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	files, err := s.repo.ListFiles(ctx, userID, filter)
	if err != nil {
		classified := pkgdb.Classify(err, "list document files")
		if pkgdb.IsSchemaAbsent(classified) {
			s.logDegrade(ctx, "document_files")
			return []DocumentFileDTO{}, nil
		}
		return nil, classified
	}

	dtos := make([]DocumentFileDTO, 0, len(files))
	for i := range files {
		dtos = append(dtos, fileFromModel(&files[i]))
	}
	return dtos, nil
}

func (s *service) MoveToGroup(ctx context.Context, userID, fileID uuid.UUID, groupID *uuid.UUID) (DocumentFileDTO, error) {
	if userID == uuid.Nil || fileID == uuid.Nil {
		return DocumentFileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id and file id are required")
	}
	if groupID != nil {
		if _, err := s.repo.FindGroupByID(ctx, userID, *groupID); err != nil {
			classified := pkgdb.Classify(err, "load document group")
			if pkgdb.IsNotFound(classified) {
				return DocumentFileDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, groupNotFoundMessage)
			}
			return DocumentFileDTO{}, classified
		}
	}

	affected, err := s.repo.UpdateFileGroup(ctx, userID, fileID, groupID)
	if err != nil {
		return DocumentFileDTO{}, pkgdb.Classify(err, "move document file")
	}
	if affected == 0 {
		return DocumentFileDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, fileNotFoundMessage)
	}

	file, err := s.repo.FindFileByID(ctx, userID, fileID)
	if err != nil {
		return DocumentFileDTO{}, pkgdb.Classify(err, "reload document file")
	}
	return fileFromModel(file), nil
}

func (s *service) DeleteFile(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil || id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and file id are required")
	}

	file, err := s.repo.FindFileByID(ctx, userID, id)
	if err != nil {
		classified := pkgdb.Classify(err, "load document file")
		if pkgdb.IsNotFound(classified) || pkgdb.IsSchemaAbsent(classified) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fileNotFoundMessage)
		}
		return classified
	}
	return s.removeFile(ctx, userID, file)
}

// removeFile deletes the stored binary first, then the metadata row. The row
// only disappears once the object is gone, so a failure never leaves a row
// pointing at nothing.
func (s *service) removeFile(ctx context.Context, userID uuid.UUID, file *models.DocumentFile) error {
	if err := s.store.Delete(ctx, file.StorageKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing stored object")
	}

	affected, err := s.repo.DeleteFile(ctx, userID, file.ID)
	if err != nil {
		return pkgdb.Classify(err, "delete document file")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fileNotFoundMessage)
	}
	return nil
}

// storageKey derives a collision-resistant object key namespaced by user:
// documents/<userID>/<ts>-<rand>.<ext>.
func storageKey(userID uuid.UUID, name string) string {
	suffix := make([]byte, keySuffixBytes)
	_, _ = rand.Read(suffix)
	ext := strings.ToLower(filepath.Ext(name))
	return fmt.Sprintf("documents/%s/%d-%s%s", userID, time.Now().UnixMilli(), hex.EncodeToString(suffix), ext)
}

func (s *service) notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationType, title, body string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, userID, kind, title, body)
}

func (s *service) logDegrade(ctx context.Context, table string) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "table", table), "schema absent; degrading to empty result")
}
