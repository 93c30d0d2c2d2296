package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/trezcool/schooladmin/core"
	logsvc "github.com/trezcool/schooladmin/services/logger"
	"github.com/trezcool/schooladmin/storage/statefile"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(os.Stderr, "CONSOLE", conf)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli := newCommandLine(conf, logger, statefile.New(conf.State.Path), os.Stdin, os.Stdout)
	defer cli.close()

	if err := cli.run(ctx, os.Args[1:]); err != nil {
		if _, ok := core.AsAPIError(err); !ok && !core.IsValidation(err) {
			logger.Debug("command failed", err)
		}
		stop()
		cli.close()
		os.Exit(1)
	}
}
