package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	coreconfig "github.com/socialcraft/content-agent/core/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the execution agent headless, without the HTTP surface",
	Run:   runAgent,
}

func init() {
	runCmd.Flags().Bool("once", false, "Execute a single cycle and exit")
	runCmd.Flags().Bool("memory", false, "Use in-memory stores instead of the configured database")
	rootCmd.AddCommand(runCmd)
}

func runAgent(cmd *cobra.Command, _ []string) {
	cfg := coreconfig.Global
	once, _ := cmd.Flags().GetBool("once")
	useMemory, _ := cmd.Flags().GetBool("memory")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stack, err := buildAgent(ctx, cfg, useMemory)
	if err != nil {
		logrus.WithError(err).Fatalln("Failed to build execution agent")
	}

	if once {
		results := stack.Scheduler.ExecuteNow(ctx)
		out, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(out))
		return
	}

	stack.Scheduler.Start(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logrus.Info("[AGENT] Shutting down...")
	stack.Scheduler.Stop()
}
