package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"total_in_line":42}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsTruncatedInput(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "text/plain")
	payload, err := encodePayload(http.StatusOK, hdr, []byte("ok"))
	require.NoError(t, err)

	// Shorter than the fixed prefix.
	_, _, _, ok := decodePayload(payload[:4])
	assert.False(t, ok)

	// Header length field points past the end.
	_, _, _, ok = decodePayload(payload[:10])
	assert.False(t, ok)
}
