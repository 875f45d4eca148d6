package extract

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	_ "image/jpeg"

	"github.com/otiai10/gosseract/v2"

	"github.com/remitworks/remit-extract/constants"
)

// OCRClient lets us stub the tesseract binding in tests.
type OCRClient interface {
	Text(ctx context.Context, imagePath string) (string, error)
}

type tesseractClient struct {
	tessdataDir string
	lang        string
}

func (t *tesseractClient) Text(_ context.Context, imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if t.tessdataDir != "" {
		_ = client.SetTessdataPrefix(t.tessdataDir)
	}
	if err := client.SetLanguage(t.lang); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return text, nil
}

func (e *Extractor) extractImage(ctx context.Context, path string) (TextExtractionResult, error) {
	gray, cleanup, err := grayscaleToTemp(path)
	if err != nil {
		return TextExtractionResult{SourceType: constants.IMAGE}, err
	}
	defer cleanup()

	txt, err := e.ocr.Text(ctx, gray)
	if err != nil {
		return TextExtractionResult{SourceType: constants.IMAGE}, err
	}
	txt = Normalize(txt)

	return TextExtractionResult{
		Text:       txt,
		Pages:      1,
		SourceType: constants.IMAGE,
		Method:     "image-ocr",
	}, nil
}

// grayscaleToTemp decodes an image, converts it to grayscale and writes it to
// a temporary PNG for the OCR engine. Tesseract performs noticeably better on
// grayscale scans than on color ones.
func grayscaleToTemp(path string) (string, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer func() { _ = f.Close() }()

	src, _, err := image.Decode(f)
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, src, bounds.Min, draw.Src)

	out, err := os.CreateTemp("", "remit-gray-*.png")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.Remove(out.Name()) }

	if err := png.Encode(out, gray); err != nil {
		_ = out.Close()
		cleanup()
		return "", nil, fmt.Errorf("encode grayscale png: %w", err)
	}
	if err := out.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return out.Name(), cleanup, nil
}
