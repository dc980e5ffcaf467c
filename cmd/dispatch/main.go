// Command dispatch simulates sending notifications or emails to a fixed
// list of recipients, each with its own delay, all at once.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"librarycatalog/internal/dispatch"
	"librarycatalog/internal/platform/logger"
)

func main() {
	var (
		kind = flag.String("kind", "notification", "What to send: notification or email")
		unit = flag.Duration("unit", time.Second, "Length of one delay step")
	)
	flag.Parse()

	log := logger.New().Console().FromWriter(os.Stderr).MustMake().Logger

	k, err := dispatch.ParseKind(*kind)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -kind")
	}

	start := time.Now()
	if err := dispatch.NewBatch(k, os.Stdout).Run(context.Background(), dispatch.DefaultRecipients(*unit)); err != nil {
		log.Fatal().Err(err).Msg("batch failed")
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("batch finished")
}
