//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Lesliedc339/linux-terminal/pkg/config"
	"github.com/Lesliedc339/linux-terminal/pkg/logging"
	"github.com/Lesliedc339/linux-terminal/pkg/surface"
	"github.com/Lesliedc339/linux-terminal/pkg/terminal"
)

// InitializeTerminal is an injector function - Wire will generate the implementation
func InitializeTerminal(s surface.Surface, cfg *config.Config, opts HostOptions, logger logging.Logger) (*terminal.Terminal, error) {
	wire.Build(TerminalSet)
	return nil, nil
}
