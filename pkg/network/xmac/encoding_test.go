package xmac

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAddr_JSON(t *testing.T) {
	type nic struct {
		MAC Addr `json:"MacAddress"`
	}

	data, err := json.Marshal(nic{MAC: MustParse("02:42:ac:11:00:02")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"MacAddress":"02:42:AC:11:00:02"}` {
		t.Errorf("Marshal = %s", data)
	}

	var n nic
	if err := json.Unmarshal([]byte(`{"MacAddress":"00:1a:2b:3c:4d:5e"}`), &n); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if n.MAC.String() != "00:1A:2B:3C:4D:5E" {
		t.Errorf("Unmarshal = %v", n.MAC)
	}

	if err := json.Unmarshal([]byte(`{"MacAddress":""}`), &n); err != nil {
		t.Fatalf("Unmarshal empty: %v", err)
	}
	if n.MAC.IsValid() {
		t.Error("empty string must decode to unset addr")
	}

	err = json.Unmarshal([]byte(`{"MacAddress":"00-1a-2b-3c-4d-5e"}`), &n)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Unmarshal dash form err = %v, want ErrInvalidFormat", err)
	}
}

func TestAddr_MarshalTextUnset(t *testing.T) {
	b, err := Addr{}.MarshalText()
	if err != nil || len(b) != 0 {
		t.Errorf("MarshalText() = %q, %v", b, err)
	}
}
