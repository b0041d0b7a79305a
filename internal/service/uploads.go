package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/apperror"
)

const uploadsPrefix = "uploads"

// UploadService stores photos under <publicDir>/uploads and hands back the
// public URL of each file.
type UploadService struct {
	publicDir string
	now       func() time.Time
	log       *zap.SugaredLogger
}

func NewUploadService(publicDir string, log *zap.SugaredLogger) *UploadService {
	return &UploadService{publicDir: publicDir, now: time.Now, log: log}
}

func (u *UploadService) Dir() string {
	return filepath.Join(u.publicDir, uploadsPrefix)
}

func (u *UploadService) Save(files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, apperror.NewValidation("no files uploaded")
	}
	dir := u.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperror.NewUpstream("failed to prepare upload directory", err)
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		name, err := u.saveFile(dir, file)
		if err != nil {
			u.log.Errorw("upload failed", "filename", file.Filename, "error", err)
			return nil, apperror.NewUpstream("failed to store upload", err)
		}
		urls = append(urls, "/"+uploadsPrefix+"/"+name)
	}
	u.log.Infow("files uploaded", "count", len(urls))
	return urls, nil
}

// baseName strips any directory part a client put in the filename.
func baseName(filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return name
}

func (u *UploadService) saveFile(dir string, file *multipart.FileHeader) (string, error) {
	in, err := file.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	stamp := u.now().UnixMilli()
	base := baseName(file.Filename)
	name := fmt.Sprintf("%d-%s", stamp, base)
	var out *os.File
	for attempt := 1; ; attempt++ {
		out, err = os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) || attempt > 100 {
			return "", err
		}
		name = fmt.Sprintf("%d-%d-%s", stamp, attempt, base)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", err
	}
	return name, nil
}
