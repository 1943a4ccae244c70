package obfuscate

import (
	"bytes"
	"errors"
	"testing"
)

const testUUID = "urn:uuid:045b2e97-e281-4e00-a4d3-5a9a23a6f1b4"

func testPayload(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func TestSelfInverse(t *testing.T) {
	data := testPayload(3000)
	for _, scheme := range []Scheme{IDPF, Adobe} {
		once, err := Transform(data, testUUID, scheme)
		if err != nil {
			t.Fatalf("%s: %s", scheme, err)
		}
		if bytes.Equal(once[:1024], data[:1024]) {
			t.Errorf("%s: leading bytes unchanged", scheme)
		}
		twice, err := Transform(once, testUUID, scheme)
		if err != nil {
			t.Fatalf("%s: %s", scheme, err)
		}
		if !bytes.Equal(twice, data) {
			t.Errorf("%s: double transform does not restore the payload", scheme)
		}
	}
}

func TestRegionBounds(t *testing.T) {
	data := testPayload(3000)
	idpf, err := Transform(data, testUUID, IDPF)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(idpf[1040:], data[1040:]) {
		t.Error("IDPF touched bytes past 1040")
	}
	adobe, err := Transform(data, testUUID, Adobe)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(adobe[1024:], data[1024:]) {
		t.Error("Adobe touched bytes past 1024")
	}
}

func TestShortPayload(t *testing.T) {
	data := testPayload(10)
	for _, scheme := range []Scheme{IDPF, Adobe} {
		once, err := Transform(data, testUUID, scheme)
		if err != nil {
			t.Fatalf("%s: %s", scheme, err)
		}
		if got, want := len(once), len(data); got != want {
			t.Fatalf("%s: len = %d, want %d", scheme, got, want)
		}
		twice, err := Transform(once, testUUID, scheme)
		if err != nil {
			t.Fatalf("%s: %s", scheme, err)
		}
		if !bytes.Equal(twice, data) {
			t.Errorf("%s: short payload does not round-trip", scheme)
		}
	}
}

func TestIDPFKeyIgnoresWhitespace(t *testing.T) {
	a, err := Key(testUUID, IDPF)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Key(" urn:uuid:045b2e97-e281-4e00\t-a4d3-5a9a23a6f1b4\n", IDPF)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("whitespace changed the IDPF key")
	}
	if got, want := len(a), 20; got != want {
		t.Errorf("len(key) = %d, want %d", got, want)
	}
}

func TestAdobeKey(t *testing.T) {
	key, err := Key(testUUID, Adobe)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x04, 0x5b, 0x2e, 0x97, 0xe2, 0x81, 0x4e, 0x00, 0xa4, 0xd3, 0x5a, 0x9a, 0x23, 0xa6, 0xf1, 0xb4}
	if !bytes.Equal(key, want) {
		t.Errorf("Key() = % x, want % x", key, want)
	}
	// the prefix is optional
	bare, err := Key("045b2e97-e281-4e00-a4d3-5a9a23a6f1b4", Adobe)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bare, want) {
		t.Errorf("Key() without prefix = % x, want % x", bare, want)
	}
}

func TestAdobeKeyErrors(t *testing.T) {
	for _, id := range []string{"urn:uuid:1234", "not hex at all!", "045b2e97e2814e00a4d35a9a23a6f1b400"} {
		_, err := Key(id, Adobe)
		if !errors.Is(err, ErrIdentifierLength) {
			t.Errorf("Key(%q) err = %v, want ErrIdentifierLength", id, err)
		}
	}
}
