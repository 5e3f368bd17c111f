package storage

import (
	"bytes"
	"fmt"

	"github.com/cinevec/cinevec/core"
	"github.com/klauspost/compress/zstd"
)

// Cache container layout:
//
//	[magic: "CVEC"][version: 1 byte][zstd-compressed MUS payload]
//
// Version 2 payloads are CacheSnapshot (scope + ids + keys + vectors).
// Version 1 payloads predate cache keys and decode as LegacyCacheSnapshot.
const (
	containerMagic = "CVEC"

	// ContainerVersionLegacy is the pre-scope container format.
	ContainerVersionLegacy = 1
	// ContainerVersion is the current container format.
	ContainerVersion = 2
)

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	// EncodeAll/DecodeAll with nil writers never fail to construct
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
}

// EncodeContainer wraps a cache snapshot in the current container format.
func EncodeContainer(snapshot *core.CacheSnapshot) []byte {
	payload := MarshalCacheSnapshot(snapshot)

	out := make([]byte, 0, len(containerMagic)+1+len(payload)/2)
	out = append(out, containerMagic...)
	out = append(out, ContainerVersion)
	return zstdEncoder.EncodeAll(payload, out)
}

// DecodeContainer unwraps a cache container and normalizes its payload to
// the current snapshot shape. Legacy payloads come back with empty cache
// keys. The returned snapshot is validated for internal consistency.
func DecodeContainer(data []byte) (*core.CacheSnapshot, error) {
	if len(data) < len(containerMagic)+1 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedData, len(data))
	}
	if !bytes.Equal(data[:len(containerMagic)], []byte(containerMagic)) {
		return nil, ErrBadMagic
	}
	version := data[len(containerMagic)]

	payload, err := zstdDecoder.DecodeAll(data[len(containerMagic)+1:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}

	var snapshot *core.CacheSnapshot
	switch version {
	case ContainerVersion:
		snapshot, err = UnmarshalCacheSnapshot(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
		}
	case ContainerVersionLegacy:
		legacy, err := UnmarshalLegacyCacheSnapshot(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
		}
		snapshot = &core.CacheSnapshot{
			IDs:     legacy.IDs,
			Keys:    make([]string, len(legacy.IDs)),
			Vectors: legacy.Vectors,
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	if err := core.ValidateSnapshot(snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}
