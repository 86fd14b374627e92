package printbed

import (
	"go.uber.org/fx"

	"github.com/lithoprint/printdesk/internal/config"
)

// Module wires the artifact publisher: SFTP when a print-bed address is
// configured, a local spool directory otherwise.
var Module = fx.Provide(func(cfg *config.Config) (Publisher, error) {
	if cfg.PrintBedAddr != "" {
		return NewSFTPPublisher(cfg.PrintBedAddr, cfg.PrintBedUser, cfg.PrintBedPassword, cfg.PrintBedDir), nil
	}
	return NewLocalPublisher(cfg.PrintBedDir)
})
