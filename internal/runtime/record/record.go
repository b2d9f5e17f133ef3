// Package record defines the immutable metadata describing one IQ recording
// and its serialization to the flat JSON mapping used on the wire and in
// sidecar files.
package record

import (
	"fmt"
	"os"
	"time"

	"github.com/rfgrid/rfbus/internal/runtime/jsoncodec"
)

// TimestampLayout renders timestamps the way the edge nodes write them: six
// fractional digits and an explicit numeric offset, e.g.
// "2024-04-02T23:14:50.009919+00:00".
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// MetadataRecord describes a single IQ data recording. Values are never
// mutated after construction; any change yields a new instance.
type MetadataRecord struct {
	// Core identifying information.
	Hostname   string
	Timestamp  time.Time
	SourcePath string
	Serial     string

	// Grouping and location info.
	Organization string
	GCS          string
	Group        string

	// Radio settings.
	Frequency    int64
	Interval     int64
	Length       float64
	Gain         int64
	SamplingRate int64
	BitDepth     int64

	// Checksum is the digest of the bytes at SourcePath at recording time.
	Checksum string
}

// IQStatistics holds the power statistics computed from an IQ data file.
type IQStatistics struct {
	Average  float64 `json:"average"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Std      float64 `json:"std"`
	Kurtosis float64 `json:"kurtosis"`
}

// ToMapping produces the flat string-keyed mapping form of the record. The
// timestamp is rendered with its offset and microsecond precision intact.
func (r MetadataRecord) ToMapping() map[string]any {
	return map[string]any{
		"hostname":      r.Hostname,
		"timestamp":     r.Timestamp.Format(TimestampLayout),
		"source_path":   r.SourcePath,
		"serial":        r.Serial,
		"organization":  r.Organization,
		"gcs":           r.GCS,
		"group":         r.Group,
		"frequency":     r.Frequency,
		"interval":      r.Interval,
		"length":        r.Length,
		"gain":          r.Gain,
		"sampling_rate": r.SamplingRate,
		"bit_depth":     r.BitDepth,
		"checksum":      r.Checksum,
	}
}

// FromMapping reconstructs a record from its mapping form. Missing fields,
// wrong shapes, and unparseable timestamps surface as a *ParseError wrapping
// the underlying cause.
func FromMapping(m map[string]any) (MetadataRecord, error) {
	var r MetadataRecord
	var err error

	if r.Hostname, err = stringField(m, "hostname"); err != nil {
		return MetadataRecord{}, err
	}
	if r.Timestamp, err = timeField(m, "timestamp"); err != nil {
		return MetadataRecord{}, err
	}
	if r.SourcePath, err = stringField(m, "source_path"); err != nil {
		return MetadataRecord{}, err
	}
	if r.Serial, err = stringField(m, "serial"); err != nil {
		return MetadataRecord{}, err
	}
	if r.Organization, err = stringField(m, "organization"); err != nil {
		return MetadataRecord{}, err
	}
	if r.GCS, err = stringField(m, "gcs"); err != nil {
		return MetadataRecord{}, err
	}
	if r.Group, err = stringField(m, "group"); err != nil {
		return MetadataRecord{}, err
	}
	if r.Frequency, err = intField(m, "frequency"); err != nil {
		return MetadataRecord{}, err
	}
	if r.Interval, err = intField(m, "interval"); err != nil {
		return MetadataRecord{}, err
	}
	if r.Length, err = floatField(m, "length"); err != nil {
		return MetadataRecord{}, err
	}
	if r.Gain, err = intField(m, "gain"); err != nil {
		return MetadataRecord{}, err
	}
	if r.SamplingRate, err = intField(m, "sampling_rate"); err != nil {
		return MetadataRecord{}, err
	}
	if r.BitDepth, err = intField(m, "bit_depth"); err != nil {
		return MetadataRecord{}, err
	}
	if r.Checksum, err = stringField(m, "checksum"); err != nil {
		return MetadataRecord{}, err
	}

	return r, nil
}

// WriteFile serializes the record to an indented JSON sidecar file.
func (r MetadataRecord) WriteFile(path string) error {
	data, err := jsoncodec.MarshalIndent(r.ToMapping(), "", "    ")
	if err != nil {
		return fmt.Errorf("encoding metadata record: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a record from a JSON sidecar file.
func ReadFile(path string) (MetadataRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MetadataRecord{}, err
	}
	m, err := jsoncodec.UnmarshalMapping(data)
	if err != nil {
		return MetadataRecord{}, &ParseError{Field: "", Err: err}
	}
	return FromMapping(m)
}

// ValidateChecksum compares the record's declared checksum against an
// independently computed digest of the referenced source file. A mismatch is
// a data-integrity failure and is never retried.
func (r MetadataRecord) ValidateChecksum(computed string) error {
	if computed != r.Checksum {
		return &ChecksumMismatchError{Expected: r.Checksum, Computed: computed}
	}
	return nil
}

// Equal reports field-exact equality, including the timestamp's instant,
// offset, and sub-second precision.
func (r MetadataRecord) Equal(other MetadataRecord) bool {
	_, rOffset := r.Timestamp.Zone()
	_, otherOffset := other.Timestamp.Zone()

	return r.Hostname == other.Hostname &&
		r.Timestamp.Equal(other.Timestamp) &&
		rOffset == otherOffset &&
		r.SourcePath == other.SourcePath &&
		r.Serial == other.Serial &&
		r.Organization == other.Organization &&
		r.GCS == other.GCS &&
		r.Group == other.Group &&
		r.Frequency == other.Frequency &&
		r.Interval == other.Interval &&
		r.Length == other.Length &&
		r.Gain == other.Gain &&
		r.SamplingRate == other.SamplingRate &&
		r.BitDepth == other.BitDepth &&
		r.Checksum == other.Checksum
}
