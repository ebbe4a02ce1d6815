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
)

var (
	ErrImageTooLarge     = errors.New("image is too large")
	ErrNotAnImage        = errors.New("upload a valid image: the file is either not an image or a corrupted image")
	ErrFormatNotAllowed  = errors.New("image format not allowed")
	allowedImageFormats  = map[string]imaging.Format{"jpeg": imaging.JPEG, "png": imaging.PNG, "gif": imaging.GIF}
	imageFormatMimeTypes = map[string]string{"jpeg": "image/jpeg", "png": "image/png", "gif": "image/gif"}
)

// DefaultMaxPixels bounds the decoded size of an upload (40 MP, about 160 MB as RGBA)
const DefaultMaxPixels = 40_000_000

type ImageProcessor struct {
	MaxSize      int64 // bytes
	MaxDimension int   // pixels, longest side
	MaxPixels    int   // width * height, checked before decoding
}

func NewImageProcessor(maxSize int64, maxDimension int) *ImageProcessor {
	return &ImageProcessor{MaxSize: maxSize, MaxDimension: maxDimension, MaxPixels: DefaultMaxPixels}
}

// ProcessedImage is an image ready to be stored
type ProcessedImage struct {
	Data        []byte
	Format      string // jpeg, png, gif
	ContentType string
}

// ValidateImage checks size, format and pixel count and returns the detected format
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	_, format, err := p.inspect(data)
	return format, err
}

// inspect reads only the image header, so oversized images are rejected before decoding
func (p *ImageProcessor) inspect(data []byte) (image.Config, string, error) {
	if int64(len(data)) > p.MaxSize {
		return image.Config{}, "", fmt.Errorf("%w: exceeds %d bytes", ErrImageTooLarge, p.MaxSize)
	}
	if len(data) == 0 {
		return image.Config{}, "", ErrNotAnImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	if _, ok := allowedImageFormats[format]; !ok {
		return image.Config{}, "", fmt.Errorf("%w: %s", ErrFormatNotAllowed, format)
	}

	maxPixels := p.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	// int64 so hostile header dimensions cannot overflow the product
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return image.Config{}, "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}
	return cfg, format, nil
}

// Process validates the image and downscales it to fit MaxDimension.
// Images already within bounds are stored byte for byte.
func (p *ImageProcessor) Process(data []byte) (*ProcessedImage, error) {
	cfg, format, err := p.inspect(data)
	if err != nil {
		return nil, err
	}

	out := &ProcessedImage{Data: data, Format: format, ContentType: imageFormatMimeTypes[format]}
	if cfg.Width <= p.MaxDimension && cfg.Height <= p.MaxDimension {
		return out, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	resized := imaging.Fit(img, p.MaxDimension, p.MaxDimension, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, resized, allowedImageFormats[format], imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("cannot encode resized image: %w", err)
	}
	out.Data = buf.Bytes()
	return out, nil
}
