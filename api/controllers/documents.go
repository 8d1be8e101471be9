package controllers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jmcalloway/insuquote-backend/api/responses"
	"github.com/jmcalloway/insuquote-backend/api/validators"
	"github.com/jmcalloway/insuquote-backend/internal/documents"
	"github.com/jmcalloway/insuquote-backend/pkg/config"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
	"github.com/jmcalloway/insuquote-backend/pkg/logger"
)

// DocumentGroupCreate creates a named folder for organizing documents.
func DocumentGroupCreate(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body documents.CreateGroupDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		group, err := svc.CreateGroup(ctx, userID, body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, group)
	}
}

// DocumentGroupList returns the contractor's folders.
func DocumentGroupList(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		groups, err := svc.ListGroups(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, groups)
	}
}

// DocumentGroupDelete removes a folder together with its member files.
func DocumentGroupDelete(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := parsePathID(r, "groupID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteGroup(ctx, userID, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// DocumentUpload ingests a multipart batch and reports a per-file outcome.
// The whole request body is capped so one oversized batch cannot exhaust
// the process; individual file limits are enforced by the service.
func DocumentUpload(svc documents.Service, cfg config.DocumentsConfig, logg *logger.Logger) http.HandlerFunc {
	maxBodyBytes := int64(cfg.MaxUploadMB) * 1024 * 1024 * int64(cfg.MaxBatchFiles)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart payload"))
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		var groupID *uuid.UUID
		if raw := strings.TrimSpace(r.FormValue("group_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid group_id"))
				return
			}
			groupID = &id
		}

		var headers []*multipart.FileHeader
		if r.MultipartForm != nil {
			headers = r.MultipartForm.File["files"]
		}
		if len(headers) == 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no files provided"))
			return
		}

		inputs := make([]documents.UploadInput, 0, len(headers))
		opened := make([]multipart.File, 0, len(headers))
		defer func() {
			for _, f := range opened {
				_ = f.Close()
			}
		}()

		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable file part"))
				return
			}
			opened = append(opened, file)
			inputs = append(inputs, documents.UploadInput{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Body:        file,
				GroupID:     groupID,
			})
		}

		results, err := svc.UploadBatch(ctx, userID, inputs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}

// DocumentList returns files, optionally scoped to one folder or to
// files outside every folder.
func DocumentList(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var filter documents.FileFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("group_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid group_id"))
				return
			}
			filter.GroupID = &id
		}
		if strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("ungrouped")), "true") {
			filter.Ungrouped = true
		}

		files, err := svc.ListFiles(ctx, userID, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, files)
	}
}

// DocumentMoveToGroup attaches a file to a folder, or detaches it when the
// payload carries a null group id.
func DocumentMoveToGroup(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		fileID, err := parsePathID(r, "fileID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body documents.MoveToGroupDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		file, err := svc.MoveToGroup(ctx, userID, fileID, body.GroupID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, file)
	}
}

// DocumentDelete removes a file and its stored object.
func DocumentDelete(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := parsePathID(r, "fileID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteFile(ctx, userID, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
