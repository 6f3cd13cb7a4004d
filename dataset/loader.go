package dataset

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"go-ml.dev/pkg/zorros"
)

// Loader reads and decodes a single image file.
type Loader func(path string) (image.Image, error)

/*
DefaultLoader opens and decodes a jpeg or png image
*/
func DefaultLoader(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open image `%v`: %v", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to decode image `%v`: %v", path, err)
	}
	return img, nil
}
