package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/service"
)

// VersionsCmd implements the 'versions' command.
type VersionsCmd struct{}

func (v *VersionsCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	svc := service.New(cfg, metrics.NoopRecorder{})
	defer svc.Close()

	versions, err := svc.Versions(context.Background())
	if err != nil {
		return fmt.Errorf("list versions: %w", err)
	}
	for _, version := range versions {
		fmt.Println(version)
	}
	return nil
}
