package api

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/phrazzld/shelf-api/internal/api/shared"
	"github.com/phrazzld/shelf-api/internal/platform/logger"
)

const (
	// UploadField is the multipart field carrying the image.
	UploadField = "image"
	// UploadURLPrefix is the path stored images are served under.
	UploadURLPrefix = "/uploads/"

	// multipartOverhead is allowed on top of the image limit for boundaries
	// and part headers.
	multipartOverhead = 1 << 20

	// DefaultMaxPixels bounds width*height of an upload before it is decoded.
	DefaultMaxPixels = 40_000_000
)

var (
	allowedExtensions = map[string]bool{".jpeg": true, ".jpg": true, ".png": true}
	allowedMediaTypes = []string{"image/jpeg", "image/png"}
	unsafeNameChars   = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
)

// UploadOptions configure image processing.
type UploadOptions struct {
	Dir      string
	MaxBytes int64
	// Width is the maximum stored width; smaller images keep their size.
	Width   int
	Quality int
	// MaxPixels bounds the decoded image area; zero means DefaultMaxPixels.
	MaxPixels int64
}

// UploadHandler accepts, resizes and stores images.
type UploadHandler struct {
	opts   UploadOptions
	logger *slog.Logger
	now    func() time.Time
}

// NewUploadHandler creates an UploadHandler. The upload directory is
// created when missing.
func NewUploadHandler(opts UploadOptions, logger *slog.Logger) (*UploadHandler, error) {
	if opts.MaxBytes <= 0 || opts.Width <= 0 || opts.Quality < 1 || opts.Quality > 100 || opts.MaxPixels < 0 {
		return nil, fmt.Errorf("invalid upload options: %+v", opts)
	}
	if opts.MaxPixels == 0 {
		opts.MaxPixels = DefaultMaxPixels
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadHandler{
		opts:   opts,
		logger: logger.With("component", "upload_handler"),
		now:    time.Now,
	}, nil
}

// Upload handles POST /api/upload/image.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) error {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.opts.MaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errFileTooLarge(h.opts.MaxBytes)
		}
		log.Debug("unreadable multipart form", "error", err.Error())
		return errNoFileUploaded()
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		return errNoFileUploaded()
	}
	defer func() {
		_ = file.Close()
	}()

	if header.Size > h.opts.MaxBytes {
		return errFileTooLarge(h.opts.MaxBytes)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return errInvalidFileType()
	}

	data, err := io.ReadAll(io.LimitReader(file, h.opts.MaxBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > h.opts.MaxBytes {
		return errFileTooLarge(h.opts.MaxBytes)
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedMediaTypes...) {
		log.Debug("rejected upload content", "detected_type", mtype.String(), "extension", ext)
		return errInvalidFileType()
	}

	// The header alone gives the dimensions; refuse before allocating pixels.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		log.Debug("unreadable image header", "error", err.Error())
		return errInvalidFileType()
	}
	if int64(cfg.Width)*int64(cfg.Height) > h.opts.MaxPixels {
		log.Debug("rejected image dimensions", "width", cfg.Width, "height", cfg.Height)
		return errImageTooLarge(h.opts.MaxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		log.Debug("undecodable image", "error", err.Error())
		return errInvalidFileType()
	}
	if img.Bounds().Dx() > h.opts.Width {
		img = imaging.Resize(img, h.opts.Width, 0, imaging.Lanczos)
	}

	name := h.storedName(header.Filename)
	if err := imaging.Save(img, filepath.Join(h.opts.Dir, name), imaging.JPEGQuality(h.opts.Quality)); err != nil {
		return fmt.Errorf("failed to store image: %w", err)
	}

	log.Info("image stored",
		"filename", name,
		"original_bytes", len(data),
		"width", img.Bounds().Dx())

	shared.RespondWithJSON(w, r, http.StatusOK, UploadResponse{
		Message:  MessageImageUploaded,
		Filename: name,
		Filepath: path.Join(UploadURLPrefix, name),
	})
	return nil
}

// storedName builds "<unix-ms>-<base>.jpg" from the client file name.
// Characters outside [A-Za-z0-9_-] collapse to '-'.
func (h *UploadHandler) storedName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "-"), "-")
	if base == "" {
		base = uuid.NewString()
	}
	return fmt.Sprintf("%d-%s.jpg", h.now().UnixMilli(), base)
}
