package pdf_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/at-ishikawa/estudazilla/internal/pdf"
)

var _ = Describe("Scanner", func() {
	var (
		testDir string
		scanner *pdf.Scanner
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		testDir, err = os.MkdirTemp("", "scanner-test-*")
		Expect(err).NotTo(HaveOccurred())

		scanner = pdf.NewScanner(slog.New(slog.NewTextHandler(GinkgoWriter, nil)))
		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(testDir)
	})

	Context("when scanning an empty directory", func() {
		It("should return an error", func() {
			_, err := scanner.FindPDFs(ctx, testDir)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no PDF files found"))
		})
	})

	Context("when scanning a directory with PDFs", func() {
		BeforeEach(func() {
			Expect(os.MkdirAll(filepath.Join(testDir, "sub"), 0755)).To(Succeed())
			for i := 1; i <= 2; i++ {
				Expect(os.WriteFile(filepath.Join(testDir, fmt.Sprintf("apostila%d.pdf", i)), []byte("dummy"), 0644)).To(Succeed())
			}
			Expect(os.WriteFile(filepath.Join(testDir, "sub", "RESUMO.PDF"), []byte("dummy"), 0644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(testDir, "notas.txt"), []byte("text"), 0644)).To(Succeed())
		})

		It("should find PDFs recursively and ignore other files", func() {
			paths, err := scanner.FindPDFs(ctx, testDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(paths).To(Equal([]string{
				filepath.Join(testDir, "apostila1.pdf"),
				filepath.Join(testDir, "apostila2.pdf"),
				filepath.Join(testDir, "sub", "RESUMO.PDF"),
			}))
		})

		It("should stop when the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := scanner.FindPDFs(cancelled, testDir)
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})
