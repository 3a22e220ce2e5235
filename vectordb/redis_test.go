package vectordb

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeVector(t *testing.T) {
	buf := encodeVector([]float64{1.5, -2.25})
	require.Len(t, buf, 8)

	first := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))
	second := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))

	require.Equal(t, float32(1.5), first)
	require.Equal(t, float32(-2.25), second)
}
