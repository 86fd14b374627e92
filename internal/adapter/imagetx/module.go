package imagetx

import (
	"go.uber.org/fx"

	"github.com/lithoprint/printdesk/internal/config"
)

// Module wires the filesystem-backed image transformer.
var Module = fx.Provide(func(cfg *config.Config) (Transformer, error) {
	return NewFileTransformer(cfg.ProcessedDir, cfg.FinalizedDir)
})
