package texconv

import (
	"fmt"

	"github.com/soypat/geometry/ms2"
)

// UploadFunc hands out backend staging memory for shader constants. It is
// called with the destination constant slot and the number of 4-float
// vectors to upload, and returns a slice of at least 4*vec4Count floats
// that the backend flushes to the GPU after the caller fills it.
type UploadFunc func(slot, vec4Count int) []float32

// SetShaderParameters fills the generated shaders' constant block through
// upload. blk is the destination format's tile size in texels (see
// [TextureFormat.BlockWidth]), buf the dimensions of the source texture
// being sampled, and region the source rectangle being encoded: region.Min
// is the copy offset and region.Size() the copied width and height.
//
// The layout must match what the swizzler prologue reads:
//
//	vector 0: blkW, blkH, buffW, buffH
//	vector 1: width, height-1, offsetX, offsetY
func SetShaderParameters(upload UploadFunc, blk, buf ms2.Vec, region ms2.Box) error {
	dst := upload(UniformSlot, 2)
	if len(dst) < 8 {
		return fmt.Errorf("texconv: constant staging buffer too small: got %d floats, need 8", len(dst))
	}
	size := region.Size()
	dst[0] = blk.X
	dst[1] = blk.Y
	dst[2] = buf.X
	dst[3] = buf.Y
	dst[4] = size.X
	dst[5] = size.Y - 1
	dst[6] = region.Min.X
	dst[7] = region.Min.Y
	return nil
}
