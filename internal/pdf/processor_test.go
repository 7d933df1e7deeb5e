package pdf_test

import (
	"context"
	"errors"
	"image"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	mock_ocr "github.com/at-ishikawa/estudazilla/internal/mocks/ocr"
	mock_pdf "github.com/at-ishikawa/estudazilla/internal/mocks/pdf"
	"github.com/at-ishikawa/estudazilla/internal/ocr"
	"github.com/at-ishikawa/estudazilla/internal/pdf"
)

var _ = Describe("Processor", func() {
	var (
		ctrl      *gomock.Controller
		extractor *mock_pdf.MockExtractor
		doc       *mock_pdf.MockDocument
		engine    *mock_ocr.MockEngine
		logger    *slog.Logger
		ctx       context.Context
		pageImage image.Image
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		extractor = mock_pdf.NewMockExtractor(ctrl)
		doc = mock_pdf.NewMockDocument(ctrl)
		engine = mock_ocr.NewMockEngine(ctrl)
		logger = slog.New(slog.NewTextHandler(GinkgoWriter, nil))
		ctx = context.Background()
		pageImage = image.NewGray(image.Rect(0, 0, 2, 2))

		extractor.EXPECT().Open("book.pdf").Return(doc, nil)
		doc.EXPECT().Close().Return(nil)
	})

	expectPages := func(texts ...string) {
		doc.EXPECT().NumPage().Return(len(texts)).AnyTimes()
		for i, text := range texts {
			doc.EXPECT().Text(i).Return(text, nil)
		}
	}

	It("tags every page with text and builds the structure", func() {
		expectPages("CAPÍTULO 1: Biologia\nA célula é a unidade.", "TEMA 1: Células\nMembrana.")

		result, err := pdf.NewProcessor(extractor, engine, logger).Process(ctx, "book.pdf")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Pages).To(Equal(2))
		Expect(result.OCRPages).To(BeEmpty())
		Expect(result.Blocks).To(HaveLen(2))
		Expect(result.Blocks[1].Chapter).To(Equal("Biologia"))
		Expect(result.Blocks[1].Theme).To(Equal("Células"))
		Expect(result.Structure.Chapters).To(HaveLen(1))
	})

	It("falls back to OCR for pages without extractable text", func() {
		expectPages("CAPÍTULO 1: Biologia", "   \n")
		doc.EXPECT().Image(1).Return(pageImage, nil)
		engine.EXPECT().Recognize(gomock.Any(), pageImage).Return("TEMA 1: Escaneado", nil)

		result, err := pdf.NewProcessor(extractor, engine, logger).Process(ctx, "book.pdf")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.OCRPages).To(Equal([]int{2}))
		Expect(result.Blocks).To(HaveLen(2))
		Expect(result.Blocks[1].Page).To(Equal(2))
		Expect(result.Blocks[1].Chapter).To(Equal("Biologia"))
		Expect(result.Blocks[1].Theme).To(Equal("Escaneado"))
	})

	It("drops pages that stay blank after OCR", func() {
		expectPages("", "texto")
		doc.EXPECT().Image(0).Return(pageImage, nil)
		engine.EXPECT().Recognize(gomock.Any(), pageImage).Return("  ", nil)

		result, err := pdf.NewProcessor(extractor, engine, logger).Process(ctx, "book.pdf")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Blocks).To(HaveLen(1))
		Expect(result.Blocks[0].Page).To(Equal(2))
	})

	It("degrades OCR errors to empty text", func() {
		expectPages("", "")
		doc.EXPECT().Image(0).Return(pageImage, nil)
		doc.EXPECT().Image(1).Return(nil, errors.New("render failed"))
		engine.EXPECT().Recognize(gomock.Any(), pageImage).Return("", errors.New("tesseract crashed"))

		result, err := pdf.NewProcessor(extractor, engine, logger).Process(ctx, "book.pdf")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Blocks).To(BeEmpty())
	})

	It("stops calling an unavailable OCR engine", func() {
		expectPages("", "", "")
		doc.EXPECT().Image(0).Return(pageImage, nil)
		engine.EXPECT().Recognize(gomock.Any(), pageImage).Return("", ocr.ErrUnavailable).Times(1)

		result, err := pdf.NewProcessor(extractor, engine, logger).Process(ctx, "book.pdf")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Blocks).To(BeEmpty())
	})

	It("returns the context error when cancelled", func() {
		doc.EXPECT().NumPage().Return(3).AnyTimes()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := pdf.NewProcessor(extractor, nil, logger).Process(cancelled, "book.pdf")
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Processor open failure", func() {
	It("wraps the extractor error", func() {
		ctrl := gomock.NewController(GinkgoT())
		extractor := mock_pdf.NewMockExtractor(ctrl)
		extractor.EXPECT().Open("missing.pdf").Return(nil, errors.New("no such file"))

		_, err := pdf.NewProcessor(extractor, nil, nil).Process(context.Background(), "missing.pdf")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("failed to open PDF"))
	})
})
