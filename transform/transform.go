/*
Package transform implements the image preprocessing pipelines used to feed
face-attribute models: resizing, rotation and crop augmentation for training,
deterministic center-crop for evaluation, and tensor conversion with
per-channel normalization.
*/
package transform

import (
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/disintegration/imaging"
	"go-ml.dev/pkg/zorros"
)

/*
Config defines the geometry and normalization of a pipeline
*/
type Config struct {
	Size      image.Point // resize target, e.g. 80x80
	Crop      image.Point // crop size, e.g. 64x64
	Rotation  float64     // max absolute rotation angle in degrees
	Mean, Std []float32   // per-channel normalization
	Seed      int64       // augmentation seed, 0 means time-based
}

// Step is a single image-to-image stage of a pipeline.
type Step func(img image.Image) image.Image

/*
Pipeline is a sequence of image steps followed by tensor
conversion and optional normalization
*/
type Pipeline struct {
	steps     []Step
	mean, std []float32
	normalize bool
}

/*
Apply runs an image through the pipeline
*/
func (p *Pipeline) Apply(img image.Image) (*Tensor, error) {
	if img == nil {
		return nil, zorros.Errorf("pipeline got a nil image")
	}
	for _, s := range p.steps {
		img = s(img)
	}
	t := ToTensor(img)
	if p.normalize {
		if err := t.Normalize(p.mean, p.std); err != nil {
			return nil, zorros.Trace(err)
		}
	}
	return t, nil
}

func (c Config) rng() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

/*
Train builds the augmenting pipeline:
resize, random rotation, random crop, random horizontal flip,
tensor conversion and normalization.
*/
func Train(c Config) (*Pipeline, error) {
	if len(c.Mean) == 0 || len(c.Std) == 0 {
		return nil, zorros.Errorf("train pipeline requires normalization")
	}
	rng := c.rng()
	return &Pipeline{
		steps: []Step{
			Resize(c.Size),
			RandomRotation(rng, c.Rotation),
			RandomCrop(rng, c.Crop),
			RandomHorizontalFlip(rng),
		},
		mean: c.Mean, std: c.Std,
		normalize: true,
	}, nil
}

/*
Test builds the evaluation pipeline: resize, center crop, tensor
conversion and, unless normalize is false, normalization.
*/
func Test(c Config, normalize bool) (*Pipeline, error) {
	if normalize && (len(c.Mean) == 0 || len(c.Std) == 0) {
		return nil, zorros.Errorf("normalized test pipeline requires mean/std")
	}
	return &Pipeline{
		steps: []Step{
			Resize(c.Size),
			CenterCrop(c.Crop),
		},
		mean: c.Mean, std: c.Std,
		normalize: normalize,
	}, nil
}

/*
Resize scales an image to the given size
*/
func Resize(size image.Point) Step {
	return func(img image.Image) image.Image {
		return imaging.Resize(img, size.X, size.Y, imaging.Lanczos)
	}
}

/*
RandomRotation rotates an image by a uniform random angle in
[-degrees, degrees], keeping the original size
*/
func RandomRotation(rng *rand.Rand, degrees float64) Step {
	return func(img image.Image) image.Image {
		if degrees == 0 {
			return img
		}
		b := img.Bounds()
		angle := (rng.Float64()*2 - 1) * degrees
		r := imaging.Rotate(img, angle, color.RGBA{R: 0, G: 0, B: 0, A: 255})
		// Rotate expands the canvas, crop back to the source size.
		return imaging.CropCenter(r, b.Dx(), b.Dy())
	}
}

/*
RandomCrop cuts a crop of the given size at a uniform random position
*/
func RandomCrop(rng *rand.Rand, size image.Point) Step {
	return func(img image.Image) image.Image {
		b := img.Bounds()
		dx, dy := b.Dx()-size.X, b.Dy()-size.Y
		if dx < 0 || dy < 0 {
			// The source is smaller than the crop: center it on a
			// size-sized canvas, cropping the larger dimension if any.
			c := imaging.CropCenter(img, size.X, size.Y)
			bg := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
			return imaging.PasteCenter(bg, c)
		}
		x0, y0 := 0, 0
		if dx > 0 {
			x0 = rng.Intn(dx + 1)
		}
		if dy > 0 {
			y0 = rng.Intn(dy + 1)
		}
		return imaging.Crop(img, image.Rect(b.Min.X+x0, b.Min.Y+y0, b.Min.X+x0+size.X, b.Min.Y+y0+size.Y))
	}
}

/*
CenterCrop cuts a crop of the given size from the image center
*/
func CenterCrop(size image.Point) Step {
	return func(img image.Image) image.Image {
		return imaging.CropCenter(img, size.X, size.Y)
	}
}

/*
RandomHorizontalFlip mirrors an image horizontally with probability 1/2
*/
func RandomHorizontalFlip(rng *rand.Rand) Step {
	return func(img image.Image) image.Image {
		if rng.Intn(2) == 1 {
			return imaging.FlipH(img)
		}
		return img
	}
}
