package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Pipeline stages that own a key namespace.
const (
	StageLayout   = "layout"
	StageArtifact = "artifact"
)

// Hash returns the hex SHA-256 digest of a definition or layout document.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// stageKey derives "<stage>:<digest>" from the upstream document hash and
// the stage options. Options are JSON-encoded through their tags, so two
// option sets that serialize identically share a key.
func stageKey(stage, upstream string, opts any) string {
	h := sha256.New()
	h.Write([]byte(upstream))
	h.Write([]byte{0})
	// Key option structs hold only plain fields; encoding cannot fail.
	_ = json.NewEncoder(h).Encode(opts)
	return stage + ":" + hex.EncodeToString(h.Sum(nil))
}

// KeyStage returns the stage a key was derived for, looking past any scope
// prefix. It returns "" for keys no keyer produced.
func KeyStage(key string) string {
	for _, stage := range []string{StageLayout, StageArtifact} {
		i := strings.LastIndex(key, stage+":")
		if i >= 0 && len(key)-i-len(stage)-1 == sha256.Size*2 {
			return stage
		}
	}
	return ""
}
