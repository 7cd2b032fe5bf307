package app

import (
	"github.com/gajzzs/usbprep/internal/config"
	"github.com/gajzzs/usbprep/internal/device"
	"github.com/gajzzs/usbprep/internal/platform"
	"github.com/gajzzs/usbprep/internal/system"
	"github.com/gajzzs/usbprep/internal/ui"
)

// Env holds the resources shared by all commands. The root command fills it
// in once flags are parsed.
type Env struct {
	Config     *config.Config
	ConfigPath string
	Logger     *ui.Logger
	Executor   *system.Executor
	Inventory  platform.Inventory
}

// NewEnv wires the platform inventory to an executor that traces through
// logger.
func NewEnv(cfg *config.Config, configPath string, logger *ui.Logger) *Env {
	executor := system.NewExecutor(logger)
	return &Env{
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
		Executor:   executor,
		Inventory:  platform.NewInventory(executor),
	}
}

// Scanner returns a device scanner bound to the environment.
func (e *Env) Scanner() *device.Scanner {
	return device.NewScanner(e.Inventory, device.WithLogger(e.Logger))
}
