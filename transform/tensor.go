package transform

import (
	"image"

	"go-ml.dev/pkg/zorros"
)

/*
Tensor is a float32 image tensor in CHW layout with values scaled to [0,1]
*/
type Tensor struct {
	Data          []float32
	Channels      int
	Height, Width int
}

/*
ToTensor converts an image to a 3xHxW float32 tensor scaled to [0,1]
*/
func ToTensor(img image.Image) *Tensor {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	t := &Tensor{
		Data:     make([]float32, 3*h*w),
		Channels: 3,
		Height:   h,
		Width:    w,
	}
	plane := h * w
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := y*w + x
			t.Data[i] = float32(r>>8) / 255
			t.Data[plane+i] = float32(g>>8) / 255
			t.Data[2*plane+i] = float32(bl>>8) / 255
		}
	}
	return t
}

/*
At returns the tensor value of channel c at row y and column x
*/
func (t *Tensor) At(c, y, x int) float32 {
	return t.Data[c*t.Height*t.Width+y*t.Width+x]
}

/*
Normalize scales tensor channels in place by (v-mean[c])/std[c]
*/
func (t *Tensor) Normalize(mean, std []float32) error {
	if len(mean) != t.Channels || len(std) != t.Channels {
		return zorros.Errorf("normalization has %d/%d values for %d channels",
			len(mean), len(std), t.Channels)
	}
	plane := t.Height * t.Width
	for c := 0; c < t.Channels; c++ {
		if std[c] == 0 {
			return zorros.Errorf("normalization std of channel %d is zero", c)
		}
		for i := c * plane; i < (c+1)*plane; i++ {
			t.Data[i] = (t.Data[i] - mean[c]) / std[c]
		}
	}
	return nil
}
