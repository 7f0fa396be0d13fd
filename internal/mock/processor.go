// Package mock simulates text recognition and document conversion. Results
// arrive after an artificial delay and are always the same canned payload.
package mock

import (
	"context"
	"fmt"
	"time"

	"study-go/internal/study"
)

// RecognizedText is returned for every image.
const RecognizedText = `This is a sample of text extracted from the image.

Text recognition (OCR) is a technology that converts different kinds of
documents, such as scanned paper, PDF files or photos taken with a camera,
into editable and searchable data.

In a real application this text would be extracted from the submitted image
with OCR algorithms.`

// StudyNotes is returned for every slide conversion.
const StudyNotes = `Study notes

Topic 1: Introduction
- Key concept A
- Key concept B

Topic 2: Development
- Point 1
- Point 2
- Point 3

Topic 3: Conclusion
- Final summary
`

// Processor implements study.Processor with canned results.
type Processor struct {
	ocrDelay     time.Duration
	convertDelay time.Duration
}

var _ study.Processor = (*Processor)(nil)

func NewProcessor(ocrDelay, convertDelay time.Duration) *Processor {
	return &Processor{ocrDelay: ocrDelay, convertDelay: convertDelay}
}

func (p *Processor) ExtractText(ctx context.Context, image []byte) (string, error) {
	if err := wait(ctx, p.ocrDelay); err != nil {
		return "", err
	}
	return RecognizedText, nil
}

func (p *Processor) Convert(ctx context.Context, kind study.ConversionKind, inputs [][]byte) (study.ConvertedDocument, error) {
	if err := wait(ctx, p.convertDelay); err != nil {
		return study.ConvertedDocument{}, err
	}

	switch kind {
	case study.ConvertImageToPDF:
		return study.ConvertedDocument{MediaType: "application/pdf", Payload: placeholderPDF(len(inputs))}, nil
	case study.ConvertSlidesToNotes:
		return study.ConvertedDocument{MediaType: "text/plain", Payload: []byte(StudyNotes)}, nil
	default:
		return study.ConvertedDocument{}, fmt.Errorf("unsupported conversion %q", kind)
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// placeholderPDF renders a one-page PDF that only states how many images
// were submitted.
func placeholderPDF(images int) []byte {
	text := fmt.Sprintf("Converted from %d image(s)", images)
	stream := fmt.Sprintf("BT /F1 18 Tf 72 720 Td (%s) Tj ET", text)
	return []byte(fmt.Sprintf(`%%PDF-1.4
1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj
2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj
3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >> endobj
4 0 obj << /Length %d >> stream
%s
endstream endobj
5 0 obj << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> endobj
trailer << /Root 1 0 R >>
%%%%EOF
`, len(stream), stream))
}
