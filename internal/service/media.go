package service

import (
	"bytes"
	"context"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/flavorinthejar/smakosz/backend/internal/apperr"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaService turns voice recordings and photos into recipe queries.
type MediaService struct {
	recipes     *RecipeService
	transcriber Transcriber
	describer   ImageDescriber
	// archive is optional; photos are not kept when it is nil.
	archive        ImageArchive
	maxUploadBytes int64
	log            *zap.Logger
}

// NewMediaService creates a new MediaService instance
func NewMediaService(recipes *RecipeService, transcriber Transcriber, describer ImageDescriber, archive ImageArchive, log *zap.Logger) *MediaService {
	return &MediaService{
		recipes:        recipes,
		transcriber:    transcriber,
		describer:      describer,
		archive:        archive,
		maxUploadBytes: recipes.Options().MaxUploadBytes,
		log:            log,
	}
}

// AnalyzeVoice transcribes a spoken query and answers it. The transcript is
// returned with the result.
func (s *MediaService) AnalyzeVoice(ctx context.Context, filename string, audio []byte) (*AnalyzeResult, error) {
	if len(audio) == 0 {
		return nil, apperr.MalformedInput("audio file is empty")
	}
	if int64(len(audio)) > s.maxUploadBytes {
		return nil, apperr.MalformedInput("audio file is too large")
	}
	if filename == "" {
		filename = "query.wav"
	}

	transcript, err := s.transcriber.Transcribe(ctx, filename, bytes.NewReader(audio))
	if err != nil {
		return nil, generationError(err)
	}
	s.log.Debug("voice query transcribed", zap.Int("bytes", len(audio)), zap.String("transcript", transcript))

	result, err := s.recipes.Analyze(ctx, AnalyzeRequest{Query: transcript})
	if err != nil {
		return nil, err
	}
	result.Transcript = transcript
	return result, nil
}

// AnalyzeImage describes a food photo and answers the description as a query.
func (s *MediaService) AnalyzeImage(ctx context.Context, contentType string, image []byte) (*AnalyzeResult, error) {
	if len(image) == 0 {
		return nil, apperr.MalformedInput("image file is empty")
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return nil, apperr.MalformedInput("file must be an image")
	}
	if int64(len(image)) > s.maxUploadBytes {
		return nil, apperr.MalformedInput("image file is too large")
	}

	var imageURL string
	if s.archive != nil {
		key := archiveKey(mediaType, time.Now())
		if imageURL, err = s.archive.Put(ctx, key, mediaType, image); err != nil {
			s.log.Warn("failed to archive query image", zap.String("key", key), zap.Error(err))
			imageURL = ""
		}
	}

	description, err := s.describer.DescribeImage(ctx, mediaType, image, visionPrompt)
	if err != nil {
		return nil, generationError(err)
	}
	s.log.Debug("image query described", zap.Int("bytes", len(image)), zap.String("content_type", mediaType))

	result, err := s.recipes.Analyze(ctx, AnalyzeRequest{Query: description})
	if err != nil {
		return nil, err
	}
	result.Analysis = description
	result.ImageURL = imageURL
	return result, nil
}

func archiveKey(mediaType string, now time.Time) string {
	ext := ".img"
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	return path.Join("queries", now.UTC().Format("2006/01/02"), uuid.NewString()+ext)
}
