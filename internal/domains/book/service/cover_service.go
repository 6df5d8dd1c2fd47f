package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/internal/infrastructure/storage"
	"library-catalog/pkg/logger"
)

// CoverPrefix is the bucket folder covers live under.
const CoverPrefix = "covers/"

var (
	errCoverInvalid = validation.NewError("validation_cover_invalid",
		"Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	errCoverFormat = validation.NewError("validation_cover_format", "Only JPEG and PNG covers are accepted.")
	errCoverSize   = validation.NewError("validation_cover_size", "The cover must be at most 5MB.")
)

// CoverService stores book covers and their resized variants.
type CoverService interface {
	// Load reads and checks an uploaded cover. Returned errors are
	// validation errors meant for the "cover" field.
	Load(fh *multipart.FileHeader) (*model.CoverUpload, error)
	// Store uploads the original under covers/YYYY/MM/DD/<uuid>.<ext>.
	Store(ctx context.Context, up *model.CoverUpload) (string, error)
	// ProcessVariants renders medium and thumbnail JPEGs next to key.
	ProcessVariants(ctx context.Context, key string) error
	// Delete removes the original and its variants.
	Delete(ctx context.Context, key string) error
	// SweepOrphans removes cover objects older than grace that no book references.
	SweepOrphans(ctx context.Context, grace time.Duration) (int, error)
}

type coverService struct {
	store  storage.ObjectStore
	images *storage.ImageProcessor
	books  repository.RepositoryInterface
	now    func() time.Time
}

func NewCoverService(store storage.ObjectStore, images *storage.ImageProcessor, books repository.RepositoryInterface) CoverService {
	return &coverService{
		store:  store,
		images: images,
		books:  books,
		now:    time.Now,
	}
}

func (s *coverService) Load(fh *multipart.FileHeader) (*model.CoverUpload, error) {
	if fh.Size > s.images.MaxSize {
		return nil, errCoverSize
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errCoverInvalid
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.images.MaxSize+1))
	if err != nil {
		return nil, errCoverInvalid
	}

	format, err := s.images.ValidateImage(data)
	switch {
	case errors.Is(err, storage.ErrImageTooLarge):
		return nil, errCoverSize
	case errors.Is(err, storage.ErrFormatForbidden):
		return nil, errCoverFormat
	case err != nil:
		return nil, errCoverInvalid
	}

	up := &model.CoverUpload{Data: data, Ext: "png", ContentType: "image/png"}
	if format == "jpeg" {
		up.Ext, up.ContentType = "jpg", "image/jpeg"
	}
	return up, nil
}

func (s *coverService) Store(ctx context.Context, up *model.CoverUpload) (string, error) {
	key := CoverKey(s.now(), uuid.NewString(), up.Ext)
	if err := s.store.Upload(ctx, key, up.Data, up.ContentType); err != nil {
		return "", fmt.Errorf("store cover: %w", err)
	}
	return key, nil
}

func (s *coverService) ProcessVariants(ctx context.Context, key string) error {
	original, err := s.store.Download(ctx, key)
	if err != nil {
		return fmt.Errorf("download original: %w", err)
	}

	variants, err := s.images.ProcessImage(original)
	if err != nil {
		return fmt.Errorf("process cover: %w", err)
	}

	for name, data := range variants {
		if err := s.store.Upload(ctx, VariantKey(key, name), data, "image/jpeg"); err != nil {
			return fmt.Errorf("upload %s variant: %w", name, err)
		}
	}

	logger.Info("cover variants stored", map[string]interface{}{"key": key, "variants": len(variants)})
	return nil
}

func (s *coverService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.store.DeleteByPrefix(ctx, baseKey(key))
}

func (s *coverService) SweepOrphans(ctx context.Context, grace time.Duration) (int, error) {
	keys, err := s.books.CoverKeys(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]bool, len(keys))
	for _, k := range keys {
		referenced[baseKey(k)] = true
	}

	objects, err := s.store.List(ctx, CoverPrefix)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-grace)
	removed := 0
	for _, o := range objects {
		if o.LastModified.After(cutoff) || referenced[originalBase(o.Key)] {
			continue
		}
		if err := s.store.Delete(ctx, o.Key); err != nil {
			return removed, fmt.Errorf("delete orphan %s: %w", o.Key, err)
		}
		removed++
	}

	logger.Info("orphan covers swept", map[string]interface{}{"removed": removed, "scanned": len(objects)})
	return removed, nil
}

// CoverKey builds covers/YYYY/MM/DD/<id>.<ext>.
func CoverKey(t time.Time, id, ext string) string {
	return fmt.Sprintf("%s%s/%s.%s", CoverPrefix, t.UTC().Format("2006/01/02"), id, ext)
}

// VariantKey: covers/.../<id>.png -> covers/.../<id>_thumbnail.jpg
func VariantKey(key, variant string) string {
	return baseKey(key) + "_" + variant + ".jpg"
}

func baseKey(key string) string {
	return strings.TrimSuffix(key, path.Ext(key))
}

// originalBase strips the extension and any variant suffix.
func originalBase(key string) string {
	base := baseKey(key)
	for name := range storage.CoverVariants {
		if strings.HasSuffix(base, "_"+name) {
			return strings.TrimSuffix(base, "_"+name)
		}
	}
	return base
}
