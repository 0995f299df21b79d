package cmd

import (
	"context"
	"log"
	"os"

	"github.com/ckendallart/storefront/app/configs"
	"github.com/ckendallart/storefront/app/db/seeders"
	"github.com/ckendallart/storefront/app/models/migrations"
	"github.com/ckendallart/storefront/app/repositories"
	"github.com/ckendallart/storefront/app/services"
	"github.com/urfave/cli/v3"
)

func RunCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "sync-catalog",
				Usage: "Replace the local catalog cache with the commerce API's products",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}

					env := configs.LoadENV
					fetcher := services.NewStorefrontService(env.STOREFRONT_API_URL, env.STOREFRONT_TOKEN)
					repo := repositories.NewCatalogRepository(db)

					if err := services.SyncCatalog(ctx, fetcher, repo); err != nil {
						return err
					}
					log.Println("✅ Catalog sync complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed the catalog with fake products for local development",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(db); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
