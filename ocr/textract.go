// Package ocr reads receipt text with AWS Textract.
package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"go.uber.org/zap"
)

// DetectDocumentTextAPI is the Textract operation used by TextractRecognizer.
type DetectDocumentTextAPI interface {
	DetectDocumentText(ctx context.Context, in *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// TextractRecognizer reads objects already stored in an S3 bucket.
type TextractRecognizer struct {
	client DetectDocumentTextAPI
	bucket string
	logger *zap.Logger
}

// NewTextractRecognizer creates a recognizer for objects in bucket.
func NewTextractRecognizer(awsCfg aws.Config, bucket string, logger *zap.Logger) *TextractRecognizer {
	return NewTextractRecognizerWithClient(textract.NewFromConfig(awsCfg), bucket, logger)
}

// NewTextractRecognizerWithClient creates a recognizer around an existing client.
func NewTextractRecognizerWithClient(client DetectDocumentTextAPI, bucket string, logger *zap.Logger) *TextractRecognizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextractRecognizer{client: client, bucket: bucket, logger: logger.Named("ocr")}
}

// Recognize returns the LINE blocks of the object at key, in reading order.
func (r *TextractRecognizer) Recognize(ctx context.Context, key string) ([]string, error) {
	if key == "" {
		return nil, errors.New("object key is required")
	}

	out, err := r.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(r.bucket),
				Name:   aws.String(key),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect document text: %w", err)
	}

	lines := Lines(out.Blocks)
	r.logger.Debug("document recognized",
		zap.String("key", key),
		zap.Int("blocks", len(out.Blocks)),
		zap.Int("lines", len(lines)),
	)
	return lines, nil
}

// Lines keeps the text of LINE blocks. WORD and PAGE blocks are dropped.
func Lines(blocks []types.Block) []string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.BlockType != types.BlockTypeLine || b.Text == nil {
			continue
		}
		lines = append(lines, *b.Text)
	}
	return lines
}
