package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	gateway "github.com/Animesh-Parashar/Basis-Zero"
	"github.com/Animesh-Parashar/Basis-Zero/config"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name: "gateway",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "gateway_url", Value: "https://gateway-api.circle.com/v1", Usage: "attestation gateway api url", EnvVars: []string{"GATEWAY_URL"}},
			&cli.StringFlag{Name: "clob_url", Value: "https://clob.polymarket.com", Usage: "clob price feed url", EnvVars: []string{"CLOB_URL"}},
			&cli.StringFlag{Name: "token", Value: "USDC", Usage: "stable token symbol", EnvVars: []string{"TOKEN"}},
			&cli.StringFlag{Name: "vault_address", Usage: "vault destination address, required", EnvVars: []string{"VAULT_ADDRESS"}},
			&cli.UintFlag{Name: "vault_domain", Value: 7, Usage: "vault destination domain id", EnvVars: []string{"VAULT_DOMAIN"}},
			&cli.StringFlag{Name: "kafka_uri", Value: "", Usage: "kafka broker for transfer events, empty disables", EnvVars: []string{"KAFKA_URI"}},
			&cli.StringFlag{Name: "markets", Value: "", Usage: "comma separated clob token ids to watch", EnvVars: []string{"MARKETS"}},

			&cli.StringFlag{Name: "port", Value: ":8080", EnvVars: []string{"PORT"}},
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	cfg, err := config.New(
		c.String("gateway_url"), c.String("clob_url"), c.String("token"),
		c.String("vault_address"), uint32(c.Uint("vault_domain")),
		c.String("kafka_uri"), c.String("markets"),
	)
	if err != nil {
		return err
	}

	g := gateway.New(cfg)
	g.Run(c.String("port"))

	<-signals
	g.Close()

	return nil
}
