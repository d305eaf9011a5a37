package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Default Canny parameters.
const (
	DefaultLowThreshold  = 50
	DefaultHighThreshold = 150

	// BlurSigma is the standard deviation of the Gaussian applied before
	// gradient computation; it matches a 5x5 kernel at sigma 1.4.
	BlurSigma = 1.4
)

// DetectEdges performs Canny edge detection and returns a binary edge image.
//
// The result has the same dimensions as img with its origin at (0,0). Edge
// pixels are 255 and everything else is 0, so the result can be handed
// straight to mask.FromGray.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - thresholdLow: Low hysteresis threshold (0-255). Gradient magnitudes below
//     this are discarded. Typical value: 50.
//   - thresholdHigh: High hysteresis threshold (0-255). Magnitudes at or above
//     this seed edges. Typical value: 150.
//
// Swapped thresholds are reordered.
//
// # Algorithm
//
//  1. Grayscale conversion via imaging.Grayscale
//  2. Gaussian blur via imaging.Blur with sigma BlurSigma
//  3. Sobel gradients: magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx)
//  4. Non-maximum suppression along the quantized gradient direction
//  5. Hysteresis: strong pixels seed edges, and weak pixels are kept when
//     they are 8-connected to a seed through other weak pixels
func DetectEdges(img image.Image, thresholdLow, thresholdHigh int) *image.Gray {
	if thresholdLow > thresholdHigh {
		thresholdLow, thresholdHigh = thresholdHigh, thresholdLow
	}

	blurred := imaging.Blur(imaging.Grayscale(img), BlurSigma)
	bounds := blurred.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Intensity in [0,1]; after Grayscale R == G == B.
	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		row := blurred.Pix[y*blurred.Stride:]
		for x := 0; x < width; x++ {
			gray[y][x] = float64(row[x*4]) / 255.0
		}
	}

	magnitude, direction := sobel(gray, width, height)
	suppressed := nonMaxSuppression(magnitude, direction, width, height)

	return hysteresis(suppressed, width, height,
		float64(thresholdLow)/255.0, float64(thresholdHigh)/255.0)
}

// sobel computes gradient magnitude and direction with 3x3 Sobel kernels.
// Border pixels use clamped (replicated) neighbors.
func sobel(gray [][]float64, width, height int) (magnitude, direction [][]float64) {
	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude = make([][]float64, height)
	direction = make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := gray[clamp(y+ky, 0, height-1)][clamp(x+kx, 0, width-1)]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// nonMaxSuppression thins edges to 1-pixel width by keeping only local maxima
// in the gradient direction. The outermost ring of pixels is always zero.
func nonMaxSuppression(magnitude, direction [][]float64, width, height int) [][]float64 {
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		if y == 0 || y == height-1 {
			continue
		}
		for x := 1; x < width-1; x++ {
			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[y][x-1], magnitude[y][x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[y-1][x+1], magnitude[y+1][x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[y-1][x], magnitude[y+1][x]
			default:
				n1, n2 = magnitude[y-1][x-1], magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}
	return suppressed
}

// hysteresis keeps strong pixels (>= high) and every weak pixel (>= low) that
// is 8-connected to a strong one through other weak pixels. Suppressed
// (zero) pixels never pass, even with a zero threshold.
func hysteresis(suppressed [][]float64, width, height int, low, high float64) *image.Gray {
	result := image.NewGray(image.Rect(0, 0, width, height))
	stack := make([]image.Point, 0, 64)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if v := suppressed[y][x]; v > 0 && v >= high {
				result.Pix[y*result.Stride+x] = 255
				stack = append(stack, image.Point{X: x, Y: y})
			}
		}
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				i := ny*result.Stride + nx
				if v := suppressed[ny][nx]; result.Pix[i] == 0 && v > 0 && v >= low {
					result.Pix[i] = 255
					stack = append(stack, image.Point{X: nx, Y: ny})
				}
			}
		}
	}

	return result
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
