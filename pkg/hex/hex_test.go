package hex

import (
	"bytes"
	"testing"
)

func TestEncodeToString(t *testing.T) {
	for _, table := range []struct {
		desc  string
		input []byte
		want  string
	}{
		{
			desc:  "valid",
			input: []byte{0, 9, 10, 15, 16, 17, 254, 255},
			want:  "00090a0f1011feff",
		},
	} {
		str := EncodeToString(table.input)
		if got, want := str, table.want; got != want {
			t.Errorf("got %q but wanted %q in test %q", got, want, table.desc)
		}
	}
}

func TestDecodeString(t *testing.T) {
	for _, table := range []struct {
		desc  string
		input string
		want  []byte
		err   bool
	}{
		{
			desc:  "invalid: length is odd",
			input: "0",
			err:   true,
		},
		{
			desc:  "invalid: non-hex character",
			input: "zz",
			err:   true,
		},
		{
			desc:  "valid: lower case",
			input: "00090a0f1011feff",
			want:  []byte{0, 9, 10, 15, 16, 17, 254, 255},
		},
		{
			desc:  "valid: upper case",
			input: "00090A0F1011FEFF",
			want:  []byte{0, 9, 10, 15, 16, 17, 254, 255},
		},
		{
			desc:  "valid: mixed case",
			input: "00090A0f1011FEff",
			want:  []byte{0, 9, 10, 15, 16, 17, 254, 255},
		},
	} {
		buf, err := DecodeString(table.input)
		if got, want := err != nil, table.err; got != want {
			t.Errorf("got error %v but wanted %v in test %q: %v", got, want, table.desc, err)
		}
		if err != nil {
			continue
		}
		if got, want := buf, table.want; !bytes.Equal(got, want) {
			t.Errorf("got %v but wanted %v in test %q", got, want, table.desc)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	buf := []byte{0, 1, 2, 3, 4, 5, 250, 251, 252, 253, 254, 255}
	str := EncodeToString(buf)
	got, err := DecodeString(str)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, buf) {
		t.Errorf("round trip mismatch: got %v, want %v", got, buf)
	}
}
