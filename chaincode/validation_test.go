package chaincode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want bool
	}{
		{name: "single character", tag: "x", want: true},
		{name: "at the 32 byte ceiling", tag: strings.Repeat("t", 32), want: true},
		{name: "empty", tag: "", want: false},
		{name: "one past the ceiling", tag: strings.Repeat("t", 33), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validTag(tt.tag))
		})
	}
}

func TestValidTagCollection(t *testing.T) {
	tenTags := make([]string, 10)
	for i := range tenTags {
		tenTags[i] = "tag"
	}

	tests := []struct {
		name string
		tags []string
		want bool
	}{
		{name: "single tag", tags: []string{"cardiology"}, want: true},
		{name: "at the 10 entry ceiling", tags: tenTags, want: true},
		{name: "empty collection", tags: []string{}, want: false},
		{name: "nil collection", tags: nil, want: false},
		{name: "one past the ceiling", tags: append([]string{"tag"}, tenTags...), want: false},
		{name: "valid count with one oversized tag", tags: []string{"ok", strings.Repeat("t", 33)}, want: false},
		{name: "valid count with one empty tag", tags: []string{"ok", ""}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validTagCollection(tt.tags))
		})
	}
}

func TestValidateRecordFieldsBounds(t *testing.T) {
	tests := []struct {
		name        string
		patientCode string
		dataSize    uint64
		notes       string
		tags        []string
		wantErr     error
	}{
		{
			name:        "all at the ceilings",
			patientCode: strings.Repeat("p", 64),
			dataSize:    999_999_999,
			notes:       strings.Repeat("n", 128),
			tags:        []string{strings.Repeat("t", 32)},
		},
		{
			name:        "all at the floors",
			patientCode: "p",
			dataSize:    1,
			notes:       "n",
			tags:        []string{"t"},
		},
		{
			name:        "empty patient code",
			patientCode: "",
			dataSize:    1, notes: "n", tags: []string{"t"},
			wantErr: ErrInvalidField,
		},
		{
			name:        "patient code past 64",
			patientCode: strings.Repeat("p", 65),
			dataSize:    1, notes: "n", tags: []string{"t"},
			wantErr: ErrInvalidField,
		},
		{
			name:        "zero data size",
			patientCode: "p", dataSize: 0, notes: "n", tags: []string{"t"},
			wantErr: ErrInvalidField,
		},
		{
			name:        "data size at the exclusive bound",
			patientCode: "p", dataSize: 1_000_000_000, notes: "n", tags: []string{"t"},
			wantErr: ErrInvalidField,
		},
		{
			name:        "empty notes",
			patientCode: "p", dataSize: 1, notes: "", tags: []string{"t"},
			wantErr: ErrInvalidField,
		},
		{
			name:        "notes past 128",
			patientCode: "p", dataSize: 1, notes: strings.Repeat("n", 129), tags: []string{"t"},
			wantErr: ErrInvalidField,
		},
		{
			name:        "empty tag collection",
			patientCode: "p", dataSize: 1, notes: "n", tags: []string{},
			wantErr: ErrInvalidTagCollection,
		},
		{
			name:        "oversized tag inside the collection",
			patientCode: "p", dataSize: 1, notes: "n", tags: []string{strings.Repeat("t", 33)},
			wantErr: ErrInvalidTagCollection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRecordFields(tt.patientCode, tt.dataSize, tt.notes, tt.tags)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// The first failing check wins: a call with several bad fields reports
// the earliest one in the patientCode, dataSize, notes, tags order.
func TestValidateRecordFieldsOrder(t *testing.T) {
	err := validateRecordFields("", 0, "", nil)
	require.ErrorIs(t, err, ErrInvalidField)
	assert.Contains(t, err.Error(), "patient code")

	err = validateRecordFields("p", 0, "", nil)
	require.ErrorIs(t, err, ErrInvalidField)
	assert.Contains(t, err.Error(), "data size")

	err = validateRecordFields("p", 1, "", nil)
	require.ErrorIs(t, err, ErrInvalidField)
	assert.Contains(t, err.Error(), "medical notes")

	err = validateRecordFields("p", 1, "n", nil)
	require.ErrorIs(t, err, ErrInvalidTagCollection)
}
