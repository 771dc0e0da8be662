package template

import (
	"testing"

	"tapewriter/render"
)

const sampleTemplate = `
[[op]]
kind = "pad"
columns = 16

[[op]]
kind = "qr"
value = "https://example.com"

[[op]]
kind = "text"
value = "hello world"
font = "gomono"
size = 24

[[op]]
kind = "pad"
columns = 16
`

func TestParseTemplate(t *testing.T) {
	ops, err := Parse(sampleTemplate)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ops) != 4 {
		t.Fatalf("parsed %d ops, expected 4", len(ops))
	}

	if pad, ok := ops[0].(*render.Pad); !ok || pad.Columns != 16 {
		t.Errorf("op 0 = %#v, expected 16-column pad", ops[0])
	}
	if qr, ok := ops[1].(*render.QR); !ok || qr.Value != "https://example.com" {
		t.Errorf("op 1 = %#v, expected qr", ops[1])
	}
	text, ok := ops[2].(*render.Text)
	if !ok {
		t.Fatalf("op 2 = %#v, expected text", ops[2])
	}
	if text.Value != "hello world" || text.Font != "gomono" || text.Size != 24 {
		t.Errorf("text op = %#v", text)
	}
}

func TestParseRejectsBadTemplates(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"no ops", `title = "nothing"`},
		{"unknown kind", "[[op]]\nkind = \"sparkles\""},
		{"text without value", "[[op]]\nkind = \"text\""},
		{"image without path", "[[op]]\nkind = \"image\""},
		{"not toml", "{]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.source); err == nil {
				t.Error("bad template accepted")
			}
		})
	}
}
