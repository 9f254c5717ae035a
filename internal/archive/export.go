// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deep-research/pkg/types"
)

// ExportEntry is the YAML shape of one exported run.
type ExportEntry struct {
	Topic           string                `yaml:"topic"`
	CreatedAt       time.Time             `yaml:"created_at"`
	Plan            *types.SearchPlan     `yaml:"plan,omitempty"`
	Report          *types.ResearchReport `yaml:"report"`
	APICalls        int                   `yaml:"api_calls"`
	CostUSD         float64               `yaml:"cost_usd"`
	DurationSeconds float64               `yaml:"duration_seconds"`
}

// ExportYAML writes one archived run to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, id int64, w io.Writer) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	entry := ExportEntry{
		Topic:           r.Topic,
		CreatedAt:       r.CreatedAt,
		Plan:            r.Plan,
		Report:          r.Report,
		APICalls:        r.APICalls,
		CostUSD:         r.CostUSD,
		DurationSeconds: r.DurationSeconds,
	}

	data, err := yaml.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
