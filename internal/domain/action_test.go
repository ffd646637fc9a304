package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepDiveActionRoundTrip(t *testing.T) {
	// '=' や '&' を含むURLでも破損しないこと
	original := NewSummarizeAction("aiops", "https://x.com/a?b=c&d=e")

	decoded, err := DecodeDeepDiveAction(original.Encode())
	require.NoError(t, err)

	assert.Equal(t, ActionSummarize, decoded.Action)
	assert.Equal(t, "aiops", decoded.DomainKey)
	assert.Equal(t, "https://x.com/a?b=c&d=e", decoded.URL)
}

func TestDeepDiveActionRoundTripSynthesizedKey(t *testing.T) {
	original := NewSummarizeAction("custom:quantum computing", "https://arxiv.org/abs/2602.00001")

	decoded, err := DecodeDeepDiveAction(original.Encode())
	require.NoError(t, err)

	assert.Equal(t, "custom:quantum computing", decoded.DomainKey)
	assert.Equal(t, "https://arxiv.org/abs/2602.00001", decoded.URL)
}

func TestDecodeDeepDiveActionMissingAction(t *testing.T) {
	_, err := DecodeDeepDiveAction("domain=aiops&url=https%3A%2F%2Farxiv.org")
	assert.Error(t, err)
}

func TestDecodeDeepDiveActionMalformed(t *testing.T) {
	_, err := DecodeDeepDiveAction("%zz")
	assert.Error(t, err)
}
