package build

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// Fingerprint identifies what went into one rendered page.
type Fingerprint struct {
	ContentHash string
	Template    string
	OutputHash  string
	RenderHash  string
}

// ContentHash fingerprints a document from its decoded header and body.
// yaml.v3 emits map keys sorted, so equal headers hash equally regardless
// of the order they were written in.
func ContentHash(raw map[string]any, body []byte) (string, error) {
	header := ""
	if len(raw) > 0 {
		b, err := yaml.Marshal(raw)
		if err != nil {
			return "", err
		}
		header = strings.TrimSuffix(string(b), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(header, string(body)), nil
}

func OutputHash(out []byte) string {
	sum := sha256.Sum256(out)
	return hex.EncodeToString(sum[:])
}

func (f *Fingerprint) ComputeRenderHash() {
	h := sha256.New()
	h.Write([]byte(f.ContentHash))
	h.Write([]byte(f.Template))
	h.Write([]byte(f.OutputHash))
	f.RenderHash = hex.EncodeToString(h.Sum(nil))
}
