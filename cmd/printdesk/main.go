package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"github.com/lithoprint/printdesk/internal/config"
	"github.com/lithoprint/printdesk/internal/di"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "issue-staff-token" {
		cfg, err := config.Load()
		if err == nil {
			err = issueStaffToken(os.Stdout, cfg.StaffTokenSecret, "staff")
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fx.New(
		fx.Provide(func() context.Context { return ctx }),
		di.Module(),
	)

	run(ctx, app)
}
