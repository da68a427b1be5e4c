package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"amlsubmit/pkg/app"
	"amlsubmit/pkg/azure"
	"amlsubmit/pkg/pipeline"
)

func main() {
	env, err := app.LoadEnv()
	if err != nil {
		log.Fatalln(err.Error())
	}

	err = app.LoadConfig(&env.ConfigPath)
	if err != nil {
		log.Fatalln(err.Error())
	}
	if env.TenantID != "" {
		app.Config.Azure.TenantID = env.TenantID
	}

	identity, err := app.LoadIdentity(env.IdentityPath)
	if err != nil {
		log.Fatalln(err.Error())
	}

	client, err := azure.New(&azure.Opts{
		SubscriptionID: identity.SubscriptionID,
	})
	if err != nil {
		log.Fatalln(err.Error())
	}

	root, err := os.Getwd()
	if err != nil {
		log.Fatalln(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = pipeline.Run(ctx, identity, &app.Config, root, client)
	if err != nil {
		stop()
		log.Fatalln(err.Error())
	}
}
