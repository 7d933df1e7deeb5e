package ocr

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// MaxSide bounds the longest side of an image passed to the OCR engine.
const MaxSide = 4000

// Preprocess converts img to a black and white image using Otsu's threshold,
// downscaling it first when its longest side exceeds MaxSide.
func Preprocess(img image.Image) *image.Gray {
	gray := Grayscale(downscale(img, MaxSide))
	threshold := OtsuThreshold(gray)
	for i, v := range gray.Pix {
		if v > threshold {
			gray.Pix[i] = 255
		} else {
			gray.Pix[i] = 0
		}
	}
	return gray
}

// Grayscale returns a grayscale copy of img.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.SetGray(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(img.At(x, y)).(color.Gray))
		}
	}
	return gray
}

// OtsuThreshold returns the gray level that maximizes the between-class variance of img.
func OtsuThreshold(img *image.Gray) uint8 {
	var histogram [256]int
	for _, v := range img.Pix {
		histogram[v]++
	}
	total := len(img.Pix)
	if total == 0 {
		return 0
	}

	var sum float64
	for i, count := range histogram {
		sum += float64(i * count)
	}

	var (
		sumBackground    float64
		weightBackground int
		bestVariance     float64
		threshold        uint8
	)
	for i, count := range histogram {
		weightBackground += count
		if weightBackground == 0 {
			continue
		}
		weightForeground := total - weightBackground
		if weightForeground == 0 {
			break
		}
		sumBackground += float64(i * count)
		meanBackground := sumBackground / float64(weightBackground)
		meanForeground := (sum - sumBackground) / float64(weightForeground)
		diff := meanBackground - meanForeground
		variance := float64(weightBackground) * float64(weightForeground) * diff * diff
		if variance > bestVariance {
			bestVariance = variance
			threshold = uint8(i)
		}
	}
	return threshold
}

func downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := max(w, h)
	if longest <= maxSide {
		return img
	}
	scale := float64(maxSide) / float64(longest)
	dst := image.NewRGBA(image.Rect(0, 0, max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
