package backend

import (
	"errors"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	d, ok := Lookup(LocalSmall)
	if !ok {
		t.Fatalf("local-small should exist")
	}
	if d.Model != "smollm3-3b" || d.Gen.MaxTokens != 128 || !d.Gen.Sample {
		t.Fatalf("unexpected local descriptor: %+v", d)
	}
	if !strings.HasPrefix(d.System, "/no_think") {
		t.Fatalf("local system prompt should carry the /no_think directive")
	}

	d, ok = Lookup(RemoteLarge)
	if !ok {
		t.Fatalf("remote-large should exist")
	}
	if d.Model != "gpt-oss:20b" || d.Gen.MaxTokens != 100 || d.Gen.Sample {
		t.Fatalf("unexpected remote descriptor: %+v", d)
	}
	if d.Gen.Temperature != 0.7 || d.Gen.TopP != 0.9 {
		t.Fatalf("unexpected remote sampling params: %+v", d.Gen)
	}

	if _, ok := Lookup("gpt-5"); ok {
		t.Fatalf("lookup of an unconfigured name should fail")
	}
}

func TestNamesStableOrder(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "local-small" || names[1] != "remote-large" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Model = "mutated"
	if b := All(); b[0].Model == "mutated" {
		t.Fatalf("All must return a copy, not the backing array")
	}
}

func TestErrUnknown(t *testing.T) {
	err := ErrUnknown("gpt-5")
	if !IsUnknown(err) {
		t.Fatalf("IsUnknown should match")
	}
	msg := err.Error()
	if !strings.Contains(msg, "gpt-5") {
		t.Fatalf("error should name the offending identifier: %s", msg)
	}
	for _, want := range Names() {
		if !strings.Contains(msg, want) {
			t.Fatalf("error should list valid backend %s: %s", want, msg)
		}
	}
	if IsUnknown(errors.New("boom")) {
		t.Fatalf("IsUnknown should not match unrelated errors")
	}
}
