package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var (
	ErrImageTooLarge     = errors.New("image exceeds maximum size")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrCropOutOfBounds   = errors.New("crop area is outside the image")
)

var allowedFormats = map[string]bool{"jpeg": true, "png": true, "gif": true, "webp": true}

// CropArea is a rectangle in source image pixels.
type CropArea struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ProcessedImage is a PNG ready to store.
type ProcessedImage struct {
	Data   []byte
	Width  int
	Height int
}

type ImageProcessor struct {
	MaxSize       int64
	ThumbnailSize int
}

func NewImageProcessor(maxSize int64, thumbnailSize int) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024
	}
	if thumbnailSize <= 0 {
		thumbnailSize = 300
	}
	return &ImageProcessor{MaxSize: maxSize, ThumbnailSize: thumbnailSize}
}

// ValidateImage checks size and that the payload decodes as an allowed format.
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(data), p.MaxSize)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if !allowedFormats[format] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return format, nil
}

// ToPNG decodes data, applies the optional crop and re-encodes as PNG.
func (p *ImageProcessor) ToPNG(data []byte, crop *CropArea) (*ProcessedImage, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	if crop != nil {
		rect := image.Rect(crop.X, crop.Y, crop.X+crop.Width, crop.Y+crop.Height)
		if crop.Width <= 0 || crop.Height <= 0 || !rect.In(img.Bounds()) {
			return nil, ErrCropOutOfBounds
		}
		img = imaging.Crop(img, rect)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	b := img.Bounds()
	return &ProcessedImage{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// Thumbnail fits the image into a ThumbnailSize square box.
func (p *ImageProcessor) Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	thumb := imaging.Fit(img, p.ThumbnailSize, p.ThumbnailSize, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
