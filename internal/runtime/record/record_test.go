package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() MetadataRecord {
	return MetadataRecord{
		Hostname:     "hcro-rpi-001",
		Timestamp:    time.Date(2024, 4, 2, 23, 14, 50, 9919000, time.UTC),
		SourcePath:   "/test/dummy_file_path.sc16",
		Serial:       "3227508",
		Organization: "hcro_db_test",
		GCS:          "43.1534N77.6044W",
		Group:        "snzfqW",
		Frequency:    915000000,
		Interval:     10,
		Length:       1.0,
		Gain:         35,
		SamplingRate: 26000000,
		BitDepth:     16,
		Checksum:     "abc",
	}
}

func TestToMapping(t *testing.T) {
	m := sampleRecord().ToMapping()

	assert.Equal(t, "2024-04-02T23:14:50.009919+00:00", m["timestamp"])
	assert.Equal(t, "/test/dummy_file_path.sc16", m["source_path"])
	assert.Equal(t, "hcro-rpi-001", m["hostname"])
	assert.Equal(t, int64(915000000), m["frequency"])
	assert.Equal(t, 1.0, m["length"])
	assert.Equal(t, "abc", m["checksum"])
	assert.Len(t, m, 14)
}

func TestMappingRoundTrip(t *testing.T) {
	original := sampleRecord()

	recreated, err := FromMapping(original.ToMapping())
	require.NoError(t, err)

	assert.True(t, recreated.Equal(original), "round trip record differs: %+v", recreated)
}

func TestMappingRoundTripNonUTCOffset(t *testing.T) {
	r := sampleRecord()
	r.Timestamp = time.Date(2024, 4, 2, 18, 14, 50, 9919000, time.FixedZone("", -5*3600))

	m := r.ToMapping()
	assert.Equal(t, "2024-04-02T18:14:50.009919-05:00", m["timestamp"])

	recreated, err := FromMapping(m)
	require.NoError(t, err)
	assert.True(t, recreated.Equal(r))
}

func TestFromMappingAfterJSON(t *testing.T) {
	// Numbers arrive as json.Number after a wire round trip; the record must
	// come back field-exact anyway.
	original := sampleRecord()
	data, err := json.Marshal(original.ToMapping())
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	require.NoError(t, dec.Decode(&m))

	recreated, err := FromMapping(m)
	require.NoError(t, err)
	assert.True(t, recreated.Equal(original))
}

func TestFromMappingMissingField(t *testing.T) {
	m := sampleRecord().ToMapping()
	delete(m, "timestamp")

	_, err := FromMapping(m)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "timestamp", parseErr.Field)
}

func TestFromMappingWrongShape(t *testing.T) {
	m := sampleRecord().ToMapping()
	m["frequency"] = "not-a-number"

	_, err := FromMapping(m)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "frequency", parseErr.Field)
}

func TestFromMappingBadTimestamp(t *testing.T) {
	m := sampleRecord().ToMapping()
	m["timestamp"] = "04/02/2024 23:14"

	_, err := FromMapping(m)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "timestamp", parseErr.Field)
	assert.Error(t, parseErr.Unwrap())
}

func TestFileRoundTrip(t *testing.T) {
	original := sampleRecord()
	path := filepath.Join(t.TempDir(), "metadata.json")

	require.NoError(t, original.WriteFile(path))

	// The sidecar file is human-readable, indented JSON with the expected
	// flat keys.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n    \"hostname\"")

	var onDisk map[string]any
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, "hcro-rpi-001", onDisk["hostname"])
	assert.Equal(t, float64(915000000), onDisk["frequency"])
	assert.Equal(t, "2024-04-02T23:14:50.009919+00:00", onDisk["timestamp"])

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(original))
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := ReadFile(path)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestValidateChecksum(t *testing.T) {
	r := sampleRecord()

	assert.NoError(t, r.ValidateChecksum("abc"))

	err := r.ValidateChecksum("ffffffffffffffff")
	var mismatch *ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "abc", mismatch.Expected)
	assert.Equal(t, "ffffffffffffffff", mismatch.Computed)
	assert.Contains(t, err.Error(), "abc")
	assert.Contains(t, err.Error(), "ffffffffffffffff")
}

func TestValidateChecksumOnlyMismatchFails(t *testing.T) {
	r := sampleRecord()
	for _, digest := range []string{"", "ABC", "abd"} {
		err := r.ValidateChecksum(digest)
		var mismatch *ChecksumMismatchError
		assert.True(t, errors.As(err, &mismatch), "digest %q should mismatch", digest)
	}
}
