package transform

import (
	"image"

	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/stat"
)

/*
Stats accumulates per-channel pixel statistics over a set of images.
It is used to produce the normalization constants of a dataset.
Samples are kept in memory, so it fits directories of images,
not unbounded streams.
*/
type Stats struct {
	samples [3][]float64
}

/*
Add accumulates the pixels of one image
*/
func (s *Stats) Add(img image.Image) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			s.samples[0] = append(s.samples[0], float64(r>>8)/255)
			s.samples[1] = append(s.samples[1], float64(g>>8)/255)
			s.samples[2] = append(s.samples[2], float64(bl>>8)/255)
		}
	}
}

/*
Channels returns the per-channel mean and standard deviation
of all accumulated pixels
*/
func (s *Stats) Channels() (mean, std []float64, err error) {
	if len(s.samples[0]) == 0 {
		return nil, nil, zorros.Errorf("no pixels accumulated")
	}
	mean = make([]float64, 3)
	std = make([]float64, 3)
	for c := 0; c < 3; c++ {
		m, sd := stat.MeanStdDev(s.samples[c], nil)
		mean[c], std[c] = m, sd
	}
	return
}
