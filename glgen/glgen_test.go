package glgen

import "testing"

func TestCodeBufferWrite(t *testing.T) {
	var buf CodeBuffer
	storage := make([]byte, 64)
	buf.Bind(storage)
	buf.Writef("uniform float4 ")
	buf.Writef("%s[%d];\n", "cTexConv", 2)
	const want = "uniform float4 cTexConv[2];\n"
	if got := string(buf.Buffer()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if buf.Len() != len(want) {
		t.Errorf("Len=%d, want %d", buf.Len(), len(want))
	}
	buf.Bind(storage)
	if buf.Len() != 0 {
		t.Error("Bind did not reset cursor")
	}
}

func TestCodeBufferTruncates(t *testing.T) {
	var buf CodeBuffer
	storage := make([]byte, 8)
	const canary = 0xAA
	storage[len(storage)-1] = canary
	buf.Bind(storage)
	buf.Writef("0123456") // exactly fills storage minus the canary
	if storage[len(storage)-1] != canary {
		t.Fatal("canary overwritten by a fitting write")
	}
	buf.Writef("%d", 789) // must spill into the canary byte and stop there
	if storage[len(storage)-1] == canary {
		t.Error("canary survived an overflowing write")
	}
	if buf.Len() != len(storage) {
		t.Errorf("cursor ran past storage: Len=%d, cap=%d", buf.Len(), len(storage))
	}
}

func TestCodeBufferWriteBeforeBindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic writing to unbound buffer")
		}
	}()
	var buf CodeBuffer
	buf.Writef("x")
}

func TestAppendFloat(t *testing.T) {
	for _, tc := range []struct {
		v    float32
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{8, "8.0"},
		{0.5, "0.5"},
		{0.0625, "0.0625"},
		{15.9375, "15.9375"},
		{31.875, "31.875"},
		{63.75, "63.75"},
		{255, "255.0"},
		{16777215, "16777215.0"},
		{-2.5, "-2.5"},
	} {
		if got := string(AppendFloat(nil, tc.v)); got != tc.want {
			t.Errorf("AppendFloat(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestFormatFloatSuffix(t *testing.T) {
	if got := FormatFloat(16, "f"); got != "16.0f" {
		t.Errorf("got %q, want 16.0f", got)
	}
	if got := FormatFloat(16, ""); got != "16.0" {
		t.Errorf("got %q, want 16.0", got)
	}
}
