package filemgr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"venuehub/db"
	"venuehub/mq"
	"venuehub/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const (
	maxUploadSize = 10 << 20
	thumbWidth    = 400
)

var (
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

var allowedMIMEs = []string{"image/jpeg", "image/png", "image/gif"}

// UploadRoot is where listing images land on disk; override with UPLOAD_DIR.
var UploadRoot = uploadRootFromEnv()

func uploadRootFromEnv() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return filepath.Join("static", "uploads")
}

func isExtensionAllowed(ext string) bool {
	return utils.Contains(allowedExtensions, ext)
}

func isMIMEAllowed(mimeType string) bool {
	return utils.Contains(allowedMIMEs, mimeType)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

func ensureSafeFilename(name, ext string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	if name == "" {
		return uuid.New().String() + ext
	}
	return name + ext
}

func stripEXIF(img image.Image) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
	return buf, err
}

// SaveImage validates, re-encodes and stores one uploaded image plus a
// thumbnail. Returns the relative paths of both files.
func SaveImage(file multipart.File, header *multipart.FileHeader, userID string) (string, string, error) {
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isExtensionAllowed(ext) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}
	if header.Size > maxUploadSize {
		return "", "", ErrFileTooLarge
	}

	buf, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}
	if len(buf) > maxUploadSize {
		return "", "", ErrFileTooLarge
	}

	mimeType := http.DetectContentType(buf)
	if !isMIMEAllowed(mimeType) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}
	if stripped, err := stripEXIF(img); err == nil {
		buf = stripped.Bytes()
		ext = ".jpg"
	}

	if err := utils.EnsureDir(UploadRoot); err != nil {
		return "", "", err
	}
	thumbDir := filepath.Join(UploadRoot, "thumbs")
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", "", err
	}

	filename := uuid.New().String() + ext
	fullPath := filepath.Join(UploadRoot, filename)
	if err := os.WriteFile(fullPath, buf, 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", fullPath, err)
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(thumbDir, filename)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", "", fmt.Errorf("save thumbnail: %w", err)
	}

	record := map[string]any{
		"filename":   filename,
		"path":       fullPath,
		"thumb":      thumbPath,
		"mime":       mimeType,
		"size":       len(buf),
		"uploadedBy": userID,
		"created_at": time.Now(),
	}
	if _, err := db.FilesCollection.InsertOne(context.Background(), record); err != nil {
		return "", "", fmt.Errorf("record upload: %w", err)
	}

	if err := mq.NotifyImageSaved(fullPath, "listing", filename, userID); err != nil {
		fmt.Println("image event publish failed:", err)
	}

	return fullPath, thumbPath, nil
}

// UploadFiles accepts multipart "files" and returns the public URLs of
// everything it stored.
func UploadFiles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	urls := make([]string, 0, len(headers))
	thumbs := make([]string, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Unable to open upload")
			return
		}
		fullPath, thumbPath, err := SaveImage(file, header, userID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		urls = append(urls, mq.ToPublicURL(fullPath))
		thumbs = append(thumbs, mq.ToPublicURL(thumbPath))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"urls": urls, "thumbnails": thumbs})
}
