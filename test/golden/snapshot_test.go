package golden

import (
	"bytes"
	"testing"

	"github.com/codewithboateng/codegate/internal/lang"
	"github.com/codewithboateng/codegate/internal/reporting"
)

const sampleInsecurePy = `import os
# TODO: move credentials to the environment
password = "hunter2-prod"
def deploy(target):
    os.system(f"scp build.tar.gz {target}:/srv")
    cur.execute(f"UPDATE releases SET host = '{target}'")
    try:
        notify(target)
    except:
        print("notify failed")
`

const sampleSloppyTS = `// TODO: split this widget up
export function render(data: any) {
  console.log("rendering", data);
  return data.items.map((i: any) => i.label);
}
`

const sampleCleanGo = `package mathutil

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
`

// The JSON verdict document is the host-facing contract; identical input
// must produce byte-identical output across invocations.
func TestSnapshot_VerdictJSONIsByteStable(t *testing.T) {
	render := func() []byte {
		v := checkText(t, "deploy.py", sampleInsecurePy)
		var buf bytes.Buffer
		if err := reporting.WriteVerdictJSON(&buf, "deploy.py", lang.Classify("deploy.py"), v); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}
	a, b := render(), render()
	if !bytes.Equal(a, b) {
		t.Fatalf("verdict JSON not stable:\n--- first\n%s\n--- second\n%s", a, b)
	}
}

func TestSnapshot_TextReportIsByteStable(t *testing.T) {
	render := func() []byte {
		v := checkText(t, "widget.ts", sampleSloppyTS)
		var buf bytes.Buffer
		reporting.RenderVerdict(&buf, "widget.ts", lang.Classify("widget.ts"), v)
		return buf.Bytes()
	}
	if a, b := render(), render(); !bytes.Equal(a, b) {
		t.Fatal("text report not stable across identical verdicts")
	}
}
