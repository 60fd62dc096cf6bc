// Package gradle discovers build variants from the external build tool.
package gradle

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"go.trai.ch/decide/internal/core/domain"
	"go.trai.ch/decide/internal/core/ports"
	"go.trai.ch/zerr"
)

// variantPrefix marks the single output line of the printBuildVariants task
// that carries the JSON variant list.
const variantPrefix = "variants: "

// VariantSource implements ports.VariantSource by invoking the gradle
// printBuildVariants task and parsing its marker line.
type VariantSource struct {
	// Dir is the repository checkout to run gradle in. Empty means the
	// working directory.
	Dir    string
	logger ports.Logger
}

// NewVariantSource creates a VariantSource running gradle in the working directory.
func NewVariantSource(logger ports.Logger) *VariantSource {
	return &VariantSource{logger: logger}
}

// ListBuildVariants runs gradle once and returns the discovered variant tokens.
func (s *VariantSource) ListBuildVariants(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, "./gradlew", "--no-daemon", "--quiet", "printBuildVariants")
	cmd.Dir = s.Dir

	out, err := cmd.Output()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to run gradle printBuildVariants")
	}

	variants, err := parseVariants(out)
	if err != nil {
		return nil, err
	}

	s.logger.Info("discovered build variants: " + strings.Join(variants, ", "))
	return variants, nil
}

// parseVariants extracts the variant list from the gradle output. The task
// prints a single line "variants: [...]" with a JSON array of tokens.
func parseVariants(out []byte) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, variantPrefix) {
			continue
		}

		var variants []string
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, variantPrefix)), &variants); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse variant list"), "line", line)
		}
		return variants, nil
	}

	return nil, zerr.With(domain.ErrVariantDiscovery, "reason", "no variant marker line in gradle output")
}
