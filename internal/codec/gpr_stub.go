//go:build !gprsdk || !cgo

package codec

// NewDecoder returns a Decoder that reports ErrUnavailable for every
// operation. Used when the native GPR library is not linked in.
func NewDecoder() Decoder {
	return unavailableDecoder{}
}

type unavailableDecoder struct{}

func (unavailableDecoder) ParseMetadata(raw []byte) (Parameters, error) {
	return Parameters{}, ErrUnavailable
}

func (unavailableDecoder) DecodeRGB(raw []byte, res Resolution, bitDepth int) (RGBBuffer, error) {
	return RGBBuffer{}, ErrUnavailable
}

func (unavailableDecoder) EncodeDNG(raw []byte, params Parameters) ([]byte, error) {
	return nil, ErrUnavailable
}
