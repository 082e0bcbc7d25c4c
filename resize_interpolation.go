package framy

import (
	"image"
	"math"
	"sync"
	"sync/atomic"
)

type resampleWeights struct {
	coeffs       []float32
	start        []int
	filterLength int
}

type kernelDef struct {
	filter Filter
	taps   int
	kernel func(float64) float64
}

type weightsKey struct {
	src    int
	dst    int
	filter Filter
}

// maxCachedWeights bounds weightsCache, watch mode sees an open-ended set of source sizes.
const maxCachedWeights = 256

var (
	weightsCache    sync.Map
	weightsCacheLen atomic.Int64
)

var float32Pool = sync.Pool{
	New: func() any {
		buf := make([]float32, 0)
		return &buf
	},
}

func kernelForFilter(f Filter) kernelDef {
	switch f {
	case FilterBilinear:
		return kernelDef{filter: FilterBilinear, taps: 2, kernel: linearKernel}
	case FilterBicubic:
		return kernelDef{filter: FilterBicubic, taps: 4, kernel: cubicKernel}
	case FilterMitchellNetravali:
		return kernelDef{filter: FilterMitchellNetravali, taps: 4, kernel: mitchellNetravaliKernel}
	case FilterLanczos2:
		return kernelDef{filter: FilterLanczos2, taps: 4, kernel: lanczos2Kernel}
	default:
		return kernelDef{filter: FilterLanczos3, taps: 6, kernel: lanczos3Kernel}
	}
}

// resizeNRGBAInterpolated resamples src to w x h. Color channels are weighted by
// alpha so transparent pixels do not bleed their color into visible ones.
func resizeNRGBAInterpolated(src *image.NRGBA, w, h int, f Filter, workers int) *image.NRGBA {
	if f == FilterNearest {
		return resizeNRGBANearest(src, w, h)
	}
	def := kernelForFilter(f)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	srcW, srcH := src.Rect.Dx(), src.Rect.Dy()
	pix := resampleNRGBA8(src.Pix[src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y):], srcW, srcH, src.Stride, w, h, def, workers)
	copyRGBA8(dst.Pix, dst.Stride, w, h, pix)
	return dst
}

func resizeNRGBANearest(src *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	sb := src.Rect
	sw, sh := sb.Dx(), sb.Dy()
	for y := 0; y < h; y++ {
		sy := sb.Min.Y + y*sh/h
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			sx := sb.Min.X + x*sw/w
			si := src.PixOffset(sx, sy)
			copy(row[x*4:x*4+4], src.Pix[si:si+4])
		}
	}
	return dst
}

func resampleNRGBA8(src []uint8, srcW, srcH, srcStride, dstW, dstH int, def kernelDef, workers int) []uint8 {
	scaleX := float64(srcW) / float64(dstW)
	scaleY := float64(srcH) / float64(dstH)
	wx := getWeights(srcW, dstW, def, scaleX)
	wy := getWeights(srcH, dstH, def, scaleY)

	// Horizontal pass into premultiplied float rows.
	temp := getFloat32(dstW * srcH * 4)
	parallelFor(srcH, workers, func(start, end int) {
		for y := start; y < end; y++ {
			row := src[y*srcStride:]
			outRow := temp[y*dstW*4:]
			for x := 0; x < dstW; x++ {
				s := wx.start[x]
				base := x * wx.filterLength
				var r, g, b, a float32
				for i := 0; i < wx.filterLength; i++ {
					xi := s + i
					if xi < 0 {
						xi = 0
					} else if xi >= srcW {
						xi = srcW - 1
					}
					off := xi * 4
					pa := float32(row[off+3])
					w := wx.coeffs[base+i] * pa / 255
					r += float32(row[off+0]) * w
					g += float32(row[off+1]) * w
					b += float32(row[off+2]) * w
					a += pa * wx.coeffs[base+i]
				}
				outOff := x * 4
				outRow[outOff+0] = r
				outRow[outOff+1] = g
				outRow[outOff+2] = b
				outRow[outOff+3] = a
			}
		}
	})

	out := make([]uint8, dstW*dstH*4)
	parallelFor(dstH, workers, func(start, end int) {
		for y := start; y < end; y++ {
			s := wy.start[y]
			base := y * wy.filterLength
			row := out[y*dstW*4:]
			for x := 0; x < dstW; x++ {
				var r, g, b, a float32
				for i := 0; i < wy.filterLength; i++ {
					yi := s + i
					if yi < 0 {
						yi = 0
					} else if yi >= srcH {
						yi = srcH - 1
					}
					off := (yi*dstW + x) * 4
					w := wy.coeffs[base+i]
					r += temp[off+0] * w
					g += temp[off+1] * w
					b += temp[off+2] * w
					a += temp[off+3] * w
				}
				outOff := x * 4
				alpha := clampToByte(a)
				if alpha == 0 {
					row[outOff+0], row[outOff+1], row[outOff+2], row[outOff+3] = 0, 0, 0, 0
					continue
				}
				unpremul := 255 / a
				if a > 255 {
					unpremul = 1
				}
				row[outOff+0] = clampToByte(r * unpremul)
				row[outOff+1] = clampToByte(g * unpremul)
				row[outOff+2] = clampToByte(b * unpremul)
				row[outOff+3] = alpha
			}
		}
	})

	putFloat32(temp)
	return out
}

func getWeights(src, dst int, def kernelDef, scale float64) resampleWeights {
	if src <= 0 || dst <= 0 {
		return resampleWeights{}
	}
	key := weightsKey{src: src, dst: dst, filter: def.filter}
	if cached, ok := weightsCache.Load(key); ok {
		return cached.(resampleWeights)
	}
	filterLength := def.taps * int(math.Max(math.Ceil(scale), 1))
	filterFactor := math.Min(1.0/scale, 1.0)
	coeffs := make([]float32, dst*filterLength)
	start := make([]int, dst)
	for y := 0; y < dst; y++ {
		center := scale*(float64(y)+0.5) - 0.5
		start[y] = int(math.Floor(center)) - filterLength/2 + 1
		center -= float64(start[y])
		base := y * filterLength
		var sum float64
		for i := 0; i < filterLength; i++ {
			w := def.kernel((center - float64(i)) * filterFactor)
			coeffs[base+i] = float32(w)
			sum += w
		}
		if sum != 0 {
			inv := float32(1.0 / sum)
			for i := 0; i < filterLength; i++ {
				coeffs[base+i] *= inv
			}
		}
	}
	weights := resampleWeights{coeffs: coeffs, start: start, filterLength: filterLength}
	if _, loaded := weightsCache.LoadOrStore(key, weights); !loaded {
		if weightsCacheLen.Add(1) > maxCachedWeights {
			resetWeightsCache()
		}
	}
	return weights
}

func resetWeightsCache() {
	weightsCache.Range(func(k, _ any) bool {
		if _, ok := weightsCache.LoadAndDelete(k); ok {
			weightsCacheLen.Add(-1)
		}
		return true
	})
}

// parallelFor splits [0, total) into at most workers contiguous chunks.
// Every index is computed independently, so the output does not depend on workers.
func parallelFor(total, workers int, fn func(start, end int)) {
	if total <= 0 {
		return
	}
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		fn(0, total)
		return
	}
	step := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * step
		end := start + step
		if end > total {
			end = total
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

func getFloat32(n int) []float32 {
	bufPtr := float32Pool.Get().(*[]float32)
	buf := *bufPtr
	if cap(buf) < n {
		float32Pool.Put(bufPtr)
		return make([]float32, n)
	}
	return buf[:n]
}

func putFloat32(buf []float32) {
	if buf == nil {
		return
	}
	for i := range buf {
		buf[i] = 0
	}
	buf = buf[:0]
	float32Pool.Put(&buf)
}

func linearKernel(in float64) float64 {
	in = math.Abs(in)
	if in <= 1 {
		return 1 - in
	}
	return 0
}

// cubicKernel is Catmull-Rom.
func cubicKernel(in float64) float64 {
	in = math.Abs(in)
	if in <= 1 {
		return in*in*(1.5*in-2.5) + 1.0
	}
	if in <= 2 {
		return in*(in*(2.5-0.5*in)-4.0) + 2.0
	}
	return 0
}

func mitchellNetravaliKernel(in float64) float64 {
	in = math.Abs(in)
	if in <= 1 {
		return (7.0*in*in*in - 12.0*in*in + 5.33333333333) * 0.16666666666
	}
	if in <= 2 {
		return (-2.33333333333*in*in*in + 12.0*in*in - 20.0*in + 10.6666666667) * 0.16666666666
	}
	return 0
}

func sinc(x float64) float64 {
	x = math.Abs(x) * math.Pi
	if x >= 1.220703e-4 {
		return math.Sin(x) / x
	}
	return 1
}

func lanczos2Kernel(in float64) float64 {
	if in > -2 && in < 2 {
		return sinc(in) * sinc(in*0.5)
	}
	return 0
}

func lanczos3Kernel(in float64) float64 {
	if in > -3 && in < 3 {
		return sinc(in) * sinc(in*0.3333333333333333)
	}
	return 0
}

func clampToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func copyRGBA8(dst []uint8, dstStride, dstW, dstH int, src []uint8) {
	rowSize := dstW * 4
	for y := 0; y < dstH; y++ {
		copy(dst[y*dstStride:y*dstStride+rowSize], src[y*rowSize:(y+1)*rowSize])
	}
}
