package upyun

import "strconv"

// ThumbType enumerates the provider's server-side thumbnail modes.
type ThumbType int

const (
	// ThumbNone leaves the image untouched.
	ThumbNone ThumbType = iota
	ThumbFixWidth
	ThumbFixHeight
	ThumbFixWidthOrHeight
	ThumbFixBoth
	ThumbFixMax
	ThumbFixMin
	ThumbFixScale
)

var thumbTypeNames = map[ThumbType]string{
	ThumbFixWidth:         "fix_width",
	ThumbFixHeight:        "fix_height",
	ThumbFixWidthOrHeight: "fix_width_or_height",
	ThumbFixBoth:          "fix_both",
	ThumbFixMax:           "fix_max",
	ThumbFixMin:           "fix_min",
	ThumbFixScale:         "fix_scale",
}

func (t ThumbType) String() string {
	return thumbTypeNames[t]
}

// TransformOptions holds the image-processing parameters applied by the
// provider during an upload. Unset is structurally distinct from a zero
// value: nil pointers and empty strings emit no header at all.
type TransformOptions struct {
	// Type and Value select a thumbnail mode and its size argument.
	Type  ThumbType
	Value string
	// Quality is the JPEG compression quality (1-100).
	Quality *int
	// Unsharp toggles the provider's sharpening pass.
	Unsharp *bool
	// Thumbnail names a thumbnail version predefined on the bucket.
	Thumbnail string
	// Rotate is the clockwise rotation in degrees (90, 180, 270).
	Rotate *int
	// Crop is the crop rectangle as "x,y,width,height".
	Crop string
	// ExifSwitch keeps EXIF data through the transformation.
	ExifSwitch *bool
}

// transformHeaders maps each option field to its wire header. A field emits
// its header only when set.
var transformHeaders = []struct {
	name  string
	value func(*TransformOptions) (string, bool)
}{
	{"x-gmkerl-type", func(o *TransformOptions) (string, bool) {
		if o.Type == ThumbNone {
			return "", false
		}
		return o.Type.String(), true
	}},
	{"x-gmkerl-value", func(o *TransformOptions) (string, bool) {
		return o.Value, o.Value != ""
	}},
	{"x-gmkerl-quality", func(o *TransformOptions) (string, bool) {
		if o.Quality == nil {
			return "", false
		}
		return strconv.Itoa(*o.Quality), true
	}},
	{"x-gmkerl-unsharp", func(o *TransformOptions) (string, bool) {
		if o.Unsharp == nil {
			return "", false
		}
		return strconv.FormatBool(*o.Unsharp), true
	}},
	{"x-gmkerl-thumbnail", func(o *TransformOptions) (string, bool) {
		return o.Thumbnail, o.Thumbnail != ""
	}},
	{"x-gmkerl-rotate", func(o *TransformOptions) (string, bool) {
		if o.Rotate == nil {
			return "", false
		}
		return strconv.Itoa(*o.Rotate), true
	}},
	{"x-gmkerl-crop", func(o *TransformOptions) (string, bool) {
		return o.Crop, o.Crop != ""
	}},
	{"x-gmkerl-exif-switch", func(o *TransformOptions) (string, bool) {
		if o.ExifSwitch == nil {
			return "", false
		}
		return strconv.FormatBool(*o.ExifSwitch), true
	}},
}

// headers renders the set fields as wire headers.
func (o *TransformOptions) headers() map[string]string {
	out := make(map[string]string)
	if o == nil {
		return out
	}
	for _, h := range transformHeaders {
		if v, ok := h.value(o); ok {
			out[h.name] = v
		}
	}
	return out
}
