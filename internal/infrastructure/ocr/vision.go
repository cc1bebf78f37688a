// Package ocr implements text extraction with the Google Cloud Vision API.
// Vision reads the document straight from its retrieval URL, so the service
// never downloads the stored file itself.
package ocr

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// Config selects the Google credentials source. When both fields are empty
// the application default credentials are used.
type Config struct {
	CredentialsFile string
	CredentialsJSON string
}

// VisionExtractor implements ports.TextExtractor against Cloud Vision.
type VisionExtractor struct {
	client *vision.ImageAnnotatorClient
}

func NewVisionExtractor(ctx context.Context, cfg Config) (*VisionExtractor, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ocr: create vision client: %w", err)
	}
	return &VisionExtractor{client: client}, nil
}

// ExtractText runs TEXT_DETECTION on the document behind url. It returns ""
// with a nil error when Vision finds no text; errors mean the provider
// itself failed.
func (v *VisionExtractor) ExtractText(ctx context.Context, url string) (string, error) {
	req := &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{
			Source: &visionpb.ImageSource{ImageUri: url},
		},
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_TEXT_DETECTION},
		},
	}

	resp, err := v.client.AnnotateImage(ctx, req)
	if err != nil {
		return "", fmt.Errorf("ocr: annotate image: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("ocr: vision error: %s", resp.Error.Message)
	}

	// The first annotation carries the full detected text; the rest are
	// per-word boxes.
	if len(resp.TextAnnotations) == 0 {
		return "", nil
	}
	return resp.TextAnnotations[0].Description, nil
}

// Close releases the underlying gRPC connection.
func (v *VisionExtractor) Close() error {
	return v.client.Close()
}
