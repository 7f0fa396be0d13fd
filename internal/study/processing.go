package study

import (
	"context"
	"fmt"
	"strconv"
)

// ConversionKind names a document conversion.
type ConversionKind string

const (
	ConvertImageToPDF    ConversionKind = "image-to-pdf"
	ConvertSlidesToNotes ConversionKind = "slides-to-notes"
)

// ParseConversionKind validates s as a ConversionKind.
func ParseConversionKind(s string) (ConversionKind, error) {
	switch k := ConversionKind(s); k {
	case ConvertImageToPDF, ConvertSlidesToNotes:
		return k, nil
	}
	return "", fmt.Errorf("unknown conversion %q (want image-to-pdf or slides-to-notes)", s)
}

// ConvertedDocument is the output of a conversion.
type ConvertedDocument struct {
	MediaType string
	Payload   []byte
}

// Processor recognizes text and converts documents.
type Processor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
	Convert(ctx context.Context, kind ConversionKind, inputs [][]byte) (ConvertedDocument, error)
}

// RecognizedTextName is the file name used when saving extracted text.
const RecognizedTextName = "extracted_text.txt"

// RecognizeText extracts the text of image.
func (s *StudyService) RecognizeText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrNoPayload
	}
	text, err := s.processor.ExtractText(ctx, image)
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}
	s.logger.Info("text extracted", "chars", len(text))
	return text, nil
}

// SaveRecognizedText stores text as a plain text file in folderID.
func (s *StudyService) SaveRecognizedText(text, folderID string) (File, error) {
	return s.UploadFile(FileUpload{
		Name:      RecognizedTextName,
		MediaType: "text/plain",
		FolderID:  folderID,
		Payload:   []byte(text),
	})
}

// Convert runs the conversion over inputs and stores the result as a new
// file in folderID, named after the current time.
func (s *StudyService) Convert(ctx context.Context, kind ConversionKind, inputs [][]byte, folderID string) (File, error) {
	if len(inputs) == 0 {
		return File{}, ErrNoPayload
	}
	for _, in := range inputs {
		if len(in) == 0 {
			return File{}, ErrNoPayload
		}
	}

	doc, err := s.processor.Convert(ctx, kind, inputs)
	if err != nil {
		return File{}, fmt.Errorf("converting %s: %w", kind, err)
	}

	stamp := strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
	var name string
	switch kind {
	case ConvertImageToPDF:
		name = "converted_" + stamp + ".pdf"
	default:
		name = "notes_" + stamp + ".txt"
	}

	return s.UploadFile(FileUpload{
		Name:      name,
		MediaType: doc.MediaType,
		FolderID:  folderID,
		Payload:   doc.Payload,
	})
}
