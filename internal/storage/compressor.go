package storage

import (
	"fmt"
	"paywall/internal/structures"

	"github.com/klauspost/compress/zstd"
)

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

type noopCompression struct{}

func (noopCompression) Compress(val []byte) ([]byte, error)   { return val, nil }
func (noopCompression) Decompress(val []byte) ([]byte, error) { return val, nil }
func (noopCompression) Close()                                {}

// NewCompressor returns a zstd compressor, or a pass-through one when
// value compression is disabled in the config.
func NewCompressor(conf *structures.Config) (CompressorInterface, error) {
	if !conf.Storage.Compression {
		return noopCompression{}, nil
	}
	return NewZstdCompressor()
}
