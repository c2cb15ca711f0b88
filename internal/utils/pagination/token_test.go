package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	createdAt := time.Date(2025, 7, 14, 8, 30, 45, 123456789, time.UTC)

	token := EncodeCursor(createdAt, "2b1e4c2e-placement")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedAt, "Created at time should match after decode")
	assert.Equal(t, "2b1e4c2e-placement", decodedID)

	// Non-UTC input is normalized
	jakarta := time.FixedZone("WIB", 7*60*60)
	local := time.Date(2025, 7, 14, 15, 30, 0, 0, jakarta)
	decodedLocal, _, err := DecodeCursor(EncodeCursor(local, "p"))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedLocal))
}

func TestDecodeCursorError(t *testing.T) {
	_, _, err := DecodeCursor("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	_, _, err = DecodeCursor(EncodeMultiFieldToken("2025-07-14T08:30:45Z"))
	assert.Error(t, err, "Should return an error for a missing id")
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeCursor(EncodeMultiFieldToken("yesterday", "p-1"))
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestAfter(t *testing.T) {
	cursor := time.Date(2025, 7, 14, 8, 0, 0, 0, time.UTC)

	assert.True(t, After(cursor.Add(-time.Second), "z", cursor, "m"), "older rows come later")
	assert.False(t, After(cursor.Add(time.Second), "a", cursor, "m"), "newer rows came earlier")
	assert.True(t, After(cursor, "a", cursor, "m"), "ties break on id descending")
	assert.False(t, After(cursor, "m", cursor, "m"), "the cursor row itself is excluded")
}

func TestEncodeMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decodedFields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, fields, decodedFields, "Fields should match after decode")

	// When splitting an empty string with strings.Split, we get a slice with one empty string
	decodedEmpty, err := DecodeMultiFieldToken(EncodeMultiFieldToken())
	assert.NoError(t, err)
	assert.Equal(t, []string{""}, decodedEmpty)
}
