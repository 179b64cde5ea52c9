package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"parentforum/internal/common"
	"parentforum/internal/dbmongo"
	"parentforum/internal/dbmysql"
)

// BlobStore is the GridFS side of media handling.
type BlobStore interface {
	UploadFile(ctx context.Context, filename, mimeType, uploaderID string, content io.Reader) (*dbmongo.MediaFile, error)
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *dbmongo.MediaFile, error)
	DeleteFile(ctx context.Context, fileID string) error
}

// RefStore records uploads in the relational store.
type RefStore interface {
	Create(ctx context.Context, ref *dbmysql.MediaRef) error
}

type HTTPServer struct {
	storage  BlobStore
	refs     RefStore
	baseURL  string
	maxBytes int64
}

func NewHTTPServer(storage BlobStore, refs RefStore, baseURL string, maxUploadMB int) *HTTPServer {
	if maxUploadMB <= 0 {
		maxUploadMB = 25
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPServer{
		storage:  storage,
		refs:     refs,
		baseURL:  baseURL,
		maxBytes: int64(maxUploadMB) << 20,
	}
}

type UploadResult struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// RegisterRoutes mounts downloads on the public router and uploads on the
// authenticated one.
func (s *HTTPServer) RegisterRoutes(public, authed *mux.Router) {
	public.HandleFunc("/media/{fileId}", s.serveFile).Methods("GET")
	authed.HandleFunc("/media", s.upload).Methods("POST")
}

func (s *HTTPServer) upload(w http.ResponseWriter, r *http.Request) {
	viewer, ok := common.RequireViewer(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			common.WriteJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "File too large"})
			return
		}
		common.WriteError(w, common.NewValidationError("file is required"))
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = s.getContentType(header.Filename)
	}

	stored, err := s.storage.UploadFile(r.Context(), filepath.Base(header.Filename), mimeType, viewer.ID, file)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	url := s.baseURL + stored.ID
	ref := &dbmysql.MediaRef{
		FileID:      stored.ID,
		Type:        stored.FileType.String(),
		FileName:    stored.Filename,
		ContentType: stored.MimeType,
		URL:         url,
		Size:        stored.Size,
		UploadedBy:  viewer.ID,
	}
	if err := s.refs.Create(r.Context(), ref); err != nil {
		if delErr := s.storage.DeleteFile(r.Context(), stored.ID); delErr != nil {
			log.Printf("Failed to remove orphaned upload %s: %v", stored.ID, delErr)
		}
		common.WriteError(w, err)
		return
	}

	log.Printf("Stored %s %s (%d bytes) for %s", stored.FileType, stored.ID, stored.Size, viewer.ID)
	common.WriteJSON(w, http.StatusCreated, UploadResult{ID: stored.ID, URL: url, Type: ref.Type})
}

func (s *HTTPServer) serveFile(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileId"]

	fileReader, mediaFile, err := s.storage.DownloadFile(r.Context(), fileID)
	if errors.Is(err, common.ErrNotFound) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("Error opening file %s: %v", fileID, err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	defer fileReader.Close()

	contentType := mediaFile.MimeType
	if contentType == "" {
		contentType = s.getContentType(mediaFile.Filename)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", mediaFile.Size))
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, fileReader); err != nil {
		log.Printf("Error streaming file: %v", err)
	}
}

func (s *HTTPServer) getContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	default:
		return "application/octet-stream"
	}
}
