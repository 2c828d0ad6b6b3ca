//go:build gprsdk && cgo

package codec

/*
#cgo LDFLAGS: -lgpr -lvc5_decoder -lvc5_common -ldng_sdk -lxmp_core -lmd5 -lstdc++
#include <stdlib.h>
#include <string.h>

typedef struct {
    void*  buffer;
    size_t size;
} gpr_buffer;

typedef struct {
    void*  buffer;
    size_t size;
    size_t width;
    size_t height;
} gpr_rgb_buffer;

typedef struct {
    void* (*mem_alloc)(size_t size);
    void  (*mem_free)(void* p);
} gpr_allocator;

typedef enum {
    GPR_RGB_RESOLUTION_NONE    = 0,
    GPR_RGB_RESOLUTION_EIGHTH  = 1,
    GPR_RGB_RESOLUTION_QUARTER = 2,
    GPR_RGB_RESOLUTION_HALF    = 3,
    GPR_RGB_RESOLUTION_FULL    = 4
} GPR_RGB_RESOLUTION;

// gpr_parameters is larger than the fields we read; the library owns its
// layout. We only touch the leading dimension fields, matching gpr.h.
typedef struct {
    unsigned int input_width;
    unsigned int input_height;
    unsigned int input_pitch;
    char         _opaque[4096];
} gpr_parameters;

extern void gpr_parameters_set_defaults(gpr_parameters* p);
extern int  gpr_parse_metadata(const gpr_allocator* a, gpr_buffer* inp, gpr_parameters* p);
extern int  gpr_convert_gpr_to_rgb(const gpr_allocator* a, GPR_RGB_RESOLUTION res, int bits, gpr_buffer* inp, gpr_rgb_buffer* out);
extern int  gpr_convert_gpr_to_dng(const gpr_allocator* a, const gpr_parameters* p, gpr_buffer* inp, gpr_buffer* out);

static gpr_allocator stack_allocator(void) {
    gpr_allocator a;
    a.mem_alloc = malloc;
    a.mem_free  = free;
    return a;
}

static int go_gpr_parse_metadata(void* raw, size_t n, gpr_parameters* p) {
    gpr_allocator a = stack_allocator();
    gpr_buffer inp;
    inp.buffer = raw;
    inp.size   = n;
    gpr_parameters_set_defaults(p);
    return gpr_parse_metadata(&a, &inp, p);
}

static int go_gpr_decode_rgb(void* raw, size_t n, int res, int bits, gpr_rgb_buffer* out) {
    gpr_allocator a = stack_allocator();
    gpr_buffer inp;
    inp.buffer = raw;
    inp.size   = n;
    out->buffer = 0;
    out->size   = 0;
    out->width  = 0;
    out->height = 0;
    return gpr_convert_gpr_to_rgb(&a, (GPR_RGB_RESOLUTION)res, bits, &inp, out);
}

static int go_gpr_encode_dng(void* raw, size_t n, gpr_parameters* p, gpr_buffer* out) {
    gpr_allocator a = stack_allocator();
    gpr_buffer inp;
    inp.buffer = raw;
    inp.size   = n;
    out->buffer = 0;
    out->size   = 0;
    return gpr_convert_gpr_to_dng(&a, p, &inp, out);
}

static void go_gpr_release(void* p) {
    if (p) {
        free(p);
    }
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// NewDecoder returns the Decoder bound to the native GPR library.
func NewDecoder() Decoder {
	return &gprDecoder{}
}

type gprDecoder struct{}

func (d *gprDecoder) ParseMetadata(raw []byte) (Parameters, error) {
	if len(raw) == 0 {
		return Parameters{}, fmt.Errorf("empty input buffer")
	}
	var params C.gpr_parameters
	ok := C.go_gpr_parse_metadata(unsafe.Pointer(&raw[0]), C.size_t(len(raw)), &params)
	if ok == 0 {
		return Parameters{}, fmt.Errorf("gpr_parse_metadata reported failure")
	}
	return Parameters{
		InputWidth:  int(params.input_width),
		InputHeight: int(params.input_height),
		InputPitch:  int(params.input_pitch),
	}, nil
}

func (d *gprDecoder) DecodeRGB(raw []byte, res Resolution, bitDepth int) (RGBBuffer, error) {
	if len(raw) == 0 {
		return RGBBuffer{}, fmt.Errorf("empty input buffer")
	}
	var out C.gpr_rgb_buffer
	ok := C.go_gpr_decode_rgb(unsafe.Pointer(&raw[0]), C.size_t(len(raw)), C.int(res), C.int(bitDepth), &out)
	if ok == 0 || out.buffer == nil {
		return RGBBuffer{}, fmt.Errorf("gpr_convert_gpr_to_rgb reported failure")
	}
	// Copy out of the library-owned buffer, then release it exactly once.
	data := C.GoBytes(out.buffer, C.int(out.size))
	C.go_gpr_release(out.buffer)
	return RGBBuffer{
		Data:   data,
		Width:  int(out.width),
		Height: int(out.height),
	}, nil
}

func (d *gprDecoder) EncodeDNG(raw []byte, params Parameters) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty input buffer")
	}
	var cparams C.gpr_parameters
	C.gpr_parameters_set_defaults(&cparams)
	cparams.input_width = C.uint(params.InputWidth)
	cparams.input_height = C.uint(params.InputHeight)
	cparams.input_pitch = C.uint(params.InputPitch)

	var out C.gpr_buffer
	ok := C.go_gpr_encode_dng(unsafe.Pointer(&raw[0]), C.size_t(len(raw)), &cparams, &out)
	if ok == 0 || out.buffer == nil {
		return nil, fmt.Errorf("gpr_convert_gpr_to_dng reported failure")
	}
	data := C.GoBytes(out.buffer, C.int(out.size))
	C.go_gpr_release(out.buffer)
	return data, nil
}
