package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"slidetext/internal/domain"
	"slidetext/internal/export"
	"slidetext/internal/port"
	"slidetext/internal/validator"
)

// ConvertInput is the DTO for conversion requests.
type ConvertInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// ConvertService defines the upload-to-text conversion contract.
type ConvertService interface {
	Convert(ctx context.Context, input ConvertInput) (*domain.ConversionResult, error)
}

type convertService struct {
	rules     *validator.Engine
	extractor port.TextExtractor
}

// NewConvertService creates a new ConvertService implementation.
func NewConvertService(rules *validator.Engine, extractor port.TextExtractor) ConvertService {
	return &convertService{
		rules:     rules,
		extractor: extractor,
	}
}

// Convert validates the upload, extracts its text, and assembles the
// download artifacts. Rejected uploads return a domain.ValidationError
// carrying every reason; extraction never runs for them. Nothing about the
// upload or its text outlives the call.
func (s *convertService) Convert(ctx context.Context, input ConvertInput) (*domain.ConversionResult, error) {
	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	upload := &domain.Upload{
		Name: input.Header.Filename,
		Size: input.Header.Size,
		Data: data,
	}

	if reasons := s.rules.Validate(upload); len(reasons) > 0 {
		log.Info().
			Str("file", upload.Name).
			Int64("size", upload.Size).
			Strs("reasons", reasons).
			Msg("convertService.Convert: upload rejected")
		return nil, &domain.ValidationError{Reasons: reasons}
	}

	log.Info().
		Str("file", upload.Name).
		Int64("size", upload.Size).
		Msg("convertService.Convert: extracting text")

	extraction, err := s.extractor.Extract(ctx, upload)
	if err != nil {
		log.Error().Err(err).Str("file", upload.Name).Msg("convertService.Convert: extraction failed")
		return nil, err
	}

	result := &domain.ConversionResult{
		Text:         extraction.Text,
		SlideCount:   extraction.SlideCount,
		CharCount:    utf8.RuneCountInString(extraction.Text),
		NoText:       extraction.SlideCount == 0,
		DownloadName: export.DownloadName(upload.Name),
	}
	if export.WantSummary(extraction.Text) {
		result.Summary = export.Summary(extraction.Text)
		result.SummaryName = export.SummaryName(upload.Name)
	}

	log.Info().
		Str("file", upload.Name).
		Int("slides", result.SlideCount).
		Int("chars", result.CharCount).
		Msg("convertService.Convert: conversion complete")

	return result, nil
}
