package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"fshare/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	usage, err := s.service.Info(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.InfoResponse{
		TotalFiles: usage.FileCount,
		TotalBytes: usage.TotalBytes,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// The body cap leaves headroom above the file limit for multipart
	// framing; oversized files are rejected precisely below.
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+s.opts.MultipartMaxMemory)

	if err := r.ParseMultipartForm(s.opts.MultipartMaxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeErrorReq(w, r, http.StatusRequestEntityTooLarge, requestTooLarge(fmt.Errorf("request body exceeds upload limit")))
			return
		}
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("invalid multipart request: %w", err), ErrCodeBadMultipart))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("file part is required"), ErrCodeMissingFile))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.opts.MaxUploadBytes+1))
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, err)
		return
	}
	if int64(len(data)) > s.opts.MaxUploadBytes {
		s.writeErrorReq(w, r, http.StatusRequestEntityTooLarge, requestTooLarge(fmt.Errorf("file exceeds %d byte upload limit", s.opts.MaxUploadBytes)))
		return
	}

	declaredType := header.Header.Get("Content-Type")
	id, err := s.service.Save(r.Context(), data, header.Filename, declaredType)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	location := "/api/v1/download/" + strconv.FormatInt(id, 10)
	w.Header().Set("Location", location)
	s.writeJSON(w, http.StatusCreated, api.UploadResponse{ID: id, URL: location})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	content, err := s.service.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	defer content.Reader.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": content.OriginalName})
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Type", content.MediaType)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, content.Reader); err != nil {
		s.log().Error("stream download", "path", r.URL.Path, "error", err)
	}
}
