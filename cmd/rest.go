package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	coreconfig "github.com/socialcraft/content-agent/core/config"
	uiRest "github.com/socialcraft/content-agent/ui/rest"
	"github.com/socialcraft/content-agent/ui/rest/middleware"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Run the execution agent with its HTTP control surface",
	Run:   restServer,
}

func init() {
	restCmd.Flags().String("basic-auth", "", "Basic auth for API (format: user:pass,user2:pass2)")
	restCmd.Flags().Bool("memory", false, "Use in-memory stores instead of the configured database")
	rootCmd.AddCommand(restCmd)
}

func restServer(cmd *cobra.Command, _ []string) {
	cfg := coreconfig.Global

	if baFlag, _ := cmd.Flags().GetString("basic-auth"); baFlag != "" {
		cfg.App.BasicAuth = strings.Split(baFlag, ",")
	}
	useMemory, _ := cmd.Flags().GetBool("memory")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stack, err := buildAgent(ctx, cfg, useMemory)
	if err != nil {
		logrus.WithError(err).Fatalln("Failed to build execution agent")
	}

	fiberConfig := fiber.Config{
		Network:               "tcp",
		AppName:               "Content Execution Agent",
		DisableStartupMessage: false,
		ServerHeader:          "Hidden",
	}
	if len(cfg.App.TrustedProxies) > 0 {
		fiberConfig.EnableTrustedProxyCheck = true
		fiberConfig.TrustedProxies = cfg.App.TrustedProxies
		fiberConfig.ProxyHeader = fiber.HeaderXForwardedHost
	}

	app := fiber.New(fiberConfig)

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.App.CorsAllowedOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.Recovery())
	app.Use(limiter.New(limiter.Config{
		Max:        1000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	if cfg.App.Debug {
		app.Use(logger.New())
	}

	if len(cfg.App.BasicAuth) > 0 {
		account := make(map[string]string)
		for _, credential := range cfg.App.BasicAuth {
			parts := strings.Split(credential, ":")
			if len(parts) != 2 {
				logrus.Fatalln("Basic auth is not valid, please use the format <user>:<secret>")
			}
			account[parts[0]] = parts[1]
		}
		app.Use(basicauth.New(basicauth.Config{Users: account}))
	}

	uiRest.InitRestApp(app)
	uiRest.InitRestAgent(app, stack.Scheduler)
	uiRest.InitRestPlan(app, stack.PlanUC)

	// The agent starts with the server; operators can stop/start it over HTTP.
	stack.Scheduler.Start(ctx)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logrus.Info("[AGENT] Shutting down...")
		stack.Scheduler.Stop()
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logrus.WithError(err).Fatalln("HTTP server stopped")
	}
}
