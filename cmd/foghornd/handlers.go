package main

import (
	"go.uber.org/zap"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/config"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/handlers/corosync"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/handlers/fence"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/handlers/rgmanager"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/plugin"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/registry"
)

// registerHandlers registers the enabled handlers in their fixed order:
// corosync, fence, rgmanager.
func registerHandlers(reg *registry.Registry, cfg config.HandlersConfig, emitter plugin.Emitter, logger *zap.Logger) error {
	builders := []struct {
		cfg config.HandlerConfig
		new func(string, plugin.Emitter, *zap.Logger) *plugin.Plugin
	}{
		{cfg.Corosync, corosync.New},
		{cfg.Fence, fence.New},
		{cfg.RGManager, rgmanager.New},
	}

	for _, b := range builders {
		if b.cfg.Disabled {
			continue
		}
		if err := reg.Register(b.new(b.cfg.Interface, emitter, logger)); err != nil {
			return err
		}
	}
	return nil
}
