package latex_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/treex/go-latex"
)

func TestKeyValue(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output map[string]string
	}{
		{
			name:   "single pair",
			input:  "scale=1.5",
			output: map[string]string{"scale": "1.5"},
		},
		{
			name:   "multiple pairs",
			input:  "width=5cm, height=3cm",
			output: map[string]string{"width": "5cm", "height": "3cm"},
		},
		{
			name:   "flag without value",
			input:  "draft",
			output: map[string]string{"draft": ""},
		},
		{
			name:   "keys are lowercased",
			input:  "Width=5cm",
			output: map[string]string{"width": "5cm"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.output, latex.KeyValue(tc.input)); diff != "" {
				t.Errorf("key-value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	root, _ := latex.Parse("\\includegraphics[scale=1.5,angle=90]{plot.png}")

	cmd := root.FindCommand("includegraphics")
	if cmd == nil {
		t.Fatal("expected to find \\includegraphics")
	}

	want := map[string]string{"scale": "1.5", "angle": "90"}
	if diff := cmp.Diff(want, latex.Options(cmd)); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}

	if got := latex.Options(&latex.Node{Kind: latex.CommandKind, Name: "item"}); len(got) != 0 {
		t.Errorf("expected no options, got %v", got)
	}
}

func TestMeasure(t *testing.T) {
	tt := []struct {
		name  string
		input string
		value float32
		unit  string
		fails bool
	}{
		{name: "centimeters", input: "5.1cm", value: 5.1, unit: "cm"},
		{name: "ems", input: "6em", value: 6, unit: "em"},
		{name: "negative", input: "-2pt", value: -2, unit: "pt"},
		{name: "macro unit", input: "0.25\\textwidth", value: 0.25, unit: "\\textwidth"},
		{name: "percent", input: "50%", value: 50, unit: "%"},
		{name: "padded", input: " 12 mm ", value: 12, unit: "mm"},
		{name: "garbage", input: "wide", fails: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			value, unit, err := latex.Measure(tc.input)
			if tc.fails {
				if err == nil {
					t.Fatalf("expected an error, got %v%v", value, unit)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if value != tc.value || unit != tc.unit {
				t.Errorf("expected %v%v, got %v%v", tc.value, tc.unit, value, unit)
			}
		})
	}
}
