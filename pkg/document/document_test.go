package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{name: "valid", doc: "52998224725"},
		{name: "valid with leading zeros", doc: "00000000191"},
		{name: "valid second sample", doc: "12345678909"},
		{name: "wrong second check digit", doc: "52998224724", wantErr: ErrChecksum},
		{name: "wrong first check digit", doc: "52998224715", wantErr: ErrChecksum},
		{name: "repeated digits", doc: "11111111111", wantErr: ErrRepeated},
		{name: "too short", doc: "1234567890", wantErr: ErrLength},
		{name: "too long", doc: "529982247250", wantErr: ErrLength},
		{name: "empty", doc: "", wantErr: ErrLength},
		{name: "formatted", doc: "529.982.247-25", wantErr: ErrLength},
		{name: "letters", doc: "5299822472a", wantErr: ErrNonDigit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.doc)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.True(t, IsValid(tt.doc))
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, IsValid(tt.doc))
		})
	}
}

func TestAnonymize(t *testing.T) {
	tests := map[string]string{
		"12345678901": "123.xxx.xxx-01",
		"52998224725": "529.xxx.xxx-25",
		"12345":       "123.xxx.xxx-45",
		"1234":        "1234",
		"123":         "123",
		"":            "",
	}

	for in, want := range tests {
		assert.Equal(t, want, Anonymize(in), "Anonymize(%q)", in)
	}
}

func TestAnonymize_MaskedInputKeepsShape(t *testing.T) {
	once := Anonymize("12345678901")
	assert.Equal(t, once, Anonymize(once))
	assert.False(t, IsValid(once))
}
